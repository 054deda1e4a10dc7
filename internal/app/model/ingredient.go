package model

// Ingredient is a catalog entry. Name is intentionally not unique: the same
// name with a different measurement unit is a distinct row.
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"type:varchar(150);index;not null" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(150);not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
