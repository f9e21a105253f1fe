package handlers

import (
	"net"
	"net/http"
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
)

// captureRequestContext extracts the click metadata the tracking core
// stores alongside a redirect tag. Usecases never see *http.Request.
func captureRequestContext(r *http.Request) *domain.RequestContext {
	referrer := r.Header.Get("Referer")
	if referrer == "" {
		referrer = r.Header.Get("Referrer")
	}

	return &domain.RequestContext{
		ClientIP:       clientIP(r),
		UserAgent:      r.UserAgent(),
		Referrer:       referrer,
		AcceptLanguage: r.Header.Get("Accept-Language"),
		AcceptEncoding: r.Header.Get("Accept-Encoding"),
		RequestURI:     r.RequestURI,
		Method:         r.Method,
		RequestTime:    time.Now(),
		Query:          r.URL.Query(),
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware has
// already rewritten RemoteAddr from X-Forwarded-For / X-Real-IP when the
// request came through a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
