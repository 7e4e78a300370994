package model

// City represents a city available in the public search filter.
// Toggling active only hides the row from public filters, it is never deleted.
type City struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	Name   string `json:"name" gorm:"type:varchar(100);not null"`
	State  string `json:"state" gorm:"type:varchar(2);not null"`
	Active bool   `json:"active" gorm:"default:true"`
}
