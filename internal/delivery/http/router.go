package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tourze/ganet-tracking-service/internal/delivery/http/handlers"
)

// NewRouter assembles the service routes: the public redirect entry point,
// the back-office API and the metrics endpoint.
func NewRouter(tracking *handlers.TrackingHandler, stats *handlers.StatsHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/r", tracking.Redirect)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/tracking-urls", tracking.CreateTrackingURL)
		r.Post("/tags/cleanup", tracking.Cleanup)
		r.Get("/tags/{tag}", tracking.GetTag)
		r.Post("/tags/{tag}/user", tracking.AttachUser)

		r.Get("/publishers/{id}/clicks", stats.ClickStats)
		r.Get("/publishers/{id}/campaign-clicks", stats.CampaignClickStats)
		r.Get("/publishers/{id}/conversions", stats.PublisherConversionStats)
		r.Get("/users/{id}/conversions", stats.UserConversionStats)
	})

	return r
}
