package model

import (
	"strings"
	"time"
)

// News is a feed item. Thumbnail is a path relative to the public storage root.
type News struct {
	ID         uint      `gorm:"primaryKey"                 json:"id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    *string   `gorm:"type:text"                  json:"content"`
	Thumbnail  *string   `gorm:"type:varchar(255)"          json:"thumbnail"`
	Regions    string    `gorm:"type:text;not null"         json:"regions"` // comma separated
	PostedBy   string    `gorm:"type:varchar(255);not null" json:"posted_by"`
	DatePosted time.Time `gorm:"not null"                   json:"date_posted"`
	IsActive   bool      `gorm:"not null"                   json:"is_active"`
	Timestamps
}

// TableName overrides the table name.
func (News) TableName() string { return "news" }

// RegionList splits Regions on commas, dropping blanks.
func (n *News) RegionList() []string {
	parts := strings.Split(n.Regions, ",")
	regions := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			regions = append(regions, p)
		}
	}
	return regions
}
