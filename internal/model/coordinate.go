package model

// Coordinate is an entry in the reference catalog of named locations.
// Coordinate holds the raw "N01 23.456 E036 54.321" text it was parsed from.
type Coordinate struct {
	ID           uint    `gorm:"primaryKey"                          json:"id"`
	LocationName string  `gorm:"type:varchar(255);not null;index"    json:"location_name"`
	Coordinate   string  `gorm:"type:varchar(100);not null"          json:"coordinate"`
	Latitude     float64 `gorm:"type:numeric(10,7);not null"         json:"latitude"`
	Longitude    float64 `gorm:"type:numeric(10,7);not null"         json:"longitude"`
	IsActive     bool    `gorm:"not null"                            json:"is_active"`
	AuditFields
	Timestamps
}

// TableName overrides the table name.
func (Coordinate) TableName() string { return "coordinates" }
