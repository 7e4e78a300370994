package model

// PropertyType represents a listing type available in the public filter.
// Value is a stable slug derived from the label.
type PropertyType struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	Label  string `json:"label" gorm:"type:varchar(100);not null"`
	Value  string `json:"value" gorm:"type:varchar(100);uniqueIndex;not null"`
	Active bool   `json:"active" gorm:"default:true"`
}

// PriceRange represents a price bracket available in the public filter.
// A nil bound is unbounded on that side.
type PriceRange struct {
	ID       string   `json:"id" gorm:"type:uuid;primaryKey"`
	Label    string   `json:"label" gorm:"type:varchar(100);not null"`
	Value    string   `json:"value" gorm:"type:varchar(100);uniqueIndex;not null"`
	MinPrice *float64 `json:"min_price" gorm:"column:min_price"`
	MaxPrice *float64 `json:"max_price" gorm:"column:max_price"`
	Active   bool     `json:"active" gorm:"default:true"`
}

// Validate rejects a range whose bounds are inverted
func (r *PriceRange) Validate() error {
	if r.Label == "" {
		return ErrEmptyName
	}
	if r.MinPrice != nil && r.MaxPrice != nil && *r.MinPrice > *r.MaxPrice {
		return ErrInvalidRange
	}
	return nil
}
