package model

// Terms is a versioned terms and conditions document. At most one row is active.
type Terms struct {
	ID       uint   `gorm:"primaryKey"                json:"id"`
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Content  string `gorm:"type:text;not null"        json:"content"`
	Version  string `gorm:"type:varchar(20);not null" json:"version"`
	IsActive bool   `gorm:"not null"                  json:"is_active"`
	Timestamps
}

// TableName overrides the table name.
func (Terms) TableName() string { return "terms" }
