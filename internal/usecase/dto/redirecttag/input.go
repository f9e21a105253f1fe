package redirecttagdto

import (
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
)

type CreateRedirectTagInput struct {
	PublisherID string
	CampaignID  *string
	UserID      *string
	ExpireTime  *time.Time
	Request     *domain.RequestContext
}

type GenerateTrackingURLInput struct {
	CreateRedirectTagInput
	TargetURL string
}
