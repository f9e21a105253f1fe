package models

import "time"

type RedirectTagModel struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	Tag         string     `gorm:"size:64;not null;uniqueIndex:idx_redirect_tag_value"`
	PublisherID string     `gorm:"type:uuid;not null;index:idx_redirect_tag_publisher"`
	Publisher   PublisherModel `gorm:"foreignKey:PublisherID;references:ID"`
	CampaignID  *string    `gorm:"type:uuid;index:idx_redirect_tag_campaign"`
	UserID      *string    `gorm:"index:idx_redirect_tag_user"`
	ClickTime   time.Time  `gorm:"not null;index:idx_redirect_tag_click_time"`
	ExpireTime  *time.Time `gorm:"index:idx_redirect_tag_expire_time"`
	ClientIP    string     `gorm:"size:64"`
	UserAgent   string     `gorm:"size:1024"`
	Referrer    string     `gorm:"size:1024"`
	ContextData JSONMap    `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
