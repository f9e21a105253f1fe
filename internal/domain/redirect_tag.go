package domain

import (
	"net/url"
	"time"
)

// ContextData holds arbitrary request metadata captured at click time.
// Values are whatever the web layer supplied (strings, string slices,
// numbers); nil values are dropped before storage.
type ContextData map[string]any

// RedirectTag is one tracked click. The tag value is assigned once at
// creation and never changes afterwards.
type RedirectTag struct {
	ID          string
	Tag         string
	PublisherID string
	CampaignID  *string
	UserID      *string
	ClickTime   time.Time
	ExpireTime  *time.Time
	ClientIP    string
	UserAgent   string
	Referrer    string
	Context     ContextData
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActiveAt reports whether the tag may still be used for attribution
// at the given instant. A tag without an expire time never expires.
func (t *RedirectTag) IsActiveAt(now time.Time) bool {
	return t.ExpireTime == nil || t.ExpireTime.After(now)
}

func (t *RedirectTag) IsExpiredAt(now time.Time) bool {
	return t.ExpireTime != nil && !t.ExpireTime.After(now)
}

// MergeContext merges extra entries into the context map. Later keys
// overwrite earlier ones; nil values are skipped.
func (t *RedirectTag) MergeContext(extra ContextData) {
	if len(extra) == 0 {
		return
	}
	if t.Context == nil {
		t.Context = make(ContextData, len(extra))
	}
	for k, v := range extra {
		if v == nil {
			continue
		}
		t.Context[k] = v
	}
}

// RequestContext is what the web layer extracted from the inbound HTTP
// request. Usecases never see *http.Request directly.
type RequestContext struct {
	ClientIP       string
	UserAgent      string
	Referrer       string
	AcceptLanguage string
	AcceptEncoding string
	RequestURI     string
	Method         string
	RequestTime    time.Time
	Query          url.Values
}

// ClickStat is a per-date click count for one publisher.
type ClickStat struct {
	ClickDate  string
	ClickCount int64
}

// CampaignClickStat is a per-campaign click count for one publisher.
type CampaignClickStat struct {
	CampaignID   string
	CampaignName string
	ClickCount   int64
}
