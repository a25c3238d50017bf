package model

// User is an account. IsActive stays false until an administrator approves it.
type User struct {
	ID           uint   `gorm:"primaryKey"                                json:"id"`
	Name         string `gorm:"type:varchar(255);not null"                json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"    json:"email"`
	Telephone    string `gorm:"type:varchar(20);not null"                 json:"telephone"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	IsActive     bool   `gorm:"not null"                                  json:"is_active"`
	Timestamps
}

// TableName overrides the table name.
func (User) TableName() string { return "users" }
