package model

import "time"

// PersonalAccessToken is the stored half of a bearer token. Its ID is the
// token's jti; deleting the row revokes the token.
type PersonalAccessToken struct {
	ID         string     `gorm:"type:uuid;primaryKey"       json:"id"`
	UserID     uint       `gorm:"not null;index"             json:"user_id"`
	DeviceName string     `gorm:"type:varchar(255);not null" json:"device_name"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `gorm:"index"                      json:"expires_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null"                   json:"created_at"`
}

// TableName overrides the table name.
func (PersonalAccessToken) TableName() string { return "personal_access_tokens" }

// Expired reports whether the token has passed its expiry at now.
func (t *PersonalAccessToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
