package models

import (
	"time"
)

// FeedItem is a caption attached to a media object in the feed bucket.
// URL holds the object key as stored; handlers may replace it with a signed
// URL on the response copy.
type FeedItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Caption   string    `gorm:"not null" json:"caption"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

// TableName overrides the default table name to match the existing schema
func (FeedItem) TableName() string {
	return "FeedItem"
}
