package model

import "time"

// Timestamps is embedded in every table.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// AuditFields records which user created or last changed a row.
// Rows written by the seeder leave both nil.
type AuditFields struct {
	CreatedBy *uint `json:"created_by,omitempty"`
	UpdatedBy *uint `json:"updated_by,omitempty"`
}
