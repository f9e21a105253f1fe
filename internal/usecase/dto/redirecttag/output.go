package redirecttagdto

import "github.com/tourze/ganet-tracking-service/internal/domain"

type TrackingURLOutput struct {
	Tag         string
	TrackingURL string
	RedirectTag *domain.RedirectTag
}
