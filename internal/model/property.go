package model

import "time"

// Property statuses
const (
	StatusSale   = "venda"
	StatusRental = "aluguel"
)

// Property represents a real-estate listing
type Property struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Code        int       `json:"code" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	Type        string    `json:"type" gorm:"type:varchar(50);not null;index"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;index"`
	Bedrooms    int       `json:"bedrooms" gorm:"default:0"`
	Bathrooms   int       `json:"bathrooms" gorm:"default:0"`
	Parking     int       `json:"parking" gorm:"default:0"`
	Area        float64   `json:"area" gorm:"default:0"`
	Address     string    `json:"address" gorm:"type:varchar(255)"`
	City        string    `json:"city" gorm:"type:varchar(100);index"`
	State       string    `json:"state" gorm:"type:varchar(2)"`
	Images      []string  `json:"images" gorm:"serializer:json;type:jsonb"`
	VideoURL    string    `json:"videoUrl,omitempty" gorm:"type:varchar(255)"`
	Featured    bool      `json:"featured" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the numeric invariants on a listing
func (p *Property) Validate() error {
	if p.Title == "" {
		return ErrEmptyName
	}
	if p.Price < 0 || p.Bedrooms < 0 || p.Bathrooms < 0 || p.Parking < 0 || p.Area < 0 {
		return ErrNegativeValue
	}
	return nil
}

// PropertyUpdate carries a partial field replacement for a listing.
// Nil fields are left untouched; the merged row is written in full.
type PropertyUpdate struct {
	Code        *int     `json:"code,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	Parking     *int     `json:"parking,omitempty"`
	Area        *float64 `json:"area,omitempty"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	State       *string  `json:"state,omitempty"`
	Images      []string `json:"images,omitempty"`
	VideoURL    *string  `json:"videoUrl,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
}

// ApplyTo merges the update onto an existing listing
func (u *PropertyUpdate) ApplyTo(p *Property) {
	if u.Code != nil {
		p.Code = *u.Code
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.Parking != nil {
		p.Parking = *u.Parking
	}
	if u.Area != nil {
		p.Area = *u.Area
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.State != nil {
		p.State = *u.State
	}
	if u.Images != nil {
		p.Images = u.Images
	}
	if u.VideoURL != nil {
		p.VideoURL = *u.VideoURL
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
}
