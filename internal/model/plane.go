package model

// Plane is an aircraft in the reference catalog.
type Plane struct {
	ID           uint    `gorm:"primaryKey"                 json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Model        string  `gorm:"type:varchar(255);not null" json:"model"`
	Capacity     string  `gorm:"type:varchar(50);not null"  json:"capacity"`
	Speed        float64 `gorm:"type:numeric(8,2);not null" json:"speed"`
	FuelBurnRate float64 `gorm:"type:numeric(8,2);not null" json:"fuel_burn_rate"` // gallons per hour
	Timestamps
}

// TableName overrides the table name.
func (Plane) TableName() string { return "planes" }
