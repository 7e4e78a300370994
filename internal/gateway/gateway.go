// Package gateway is the data access layer: typed query and mutation calls
// scoped to one table each. Mutations that replace rows are upsert-shaped
// (conflict key = id) and always carry the full row, so omitted columns can
// never be nulled out by a partial payload.
package gateway

import (
	"context"

	"imovel-service/internal/model"
)

// PropertyGateway provides access to the properties table
type PropertyGateway interface {
	ListProperties(ctx context.Context) ([]model.Property, error)
	InsertProperty(ctx context.Context, p *model.Property) error
	UpsertProperties(ctx context.Context, rows []model.Property) error
	DeleteProperty(ctx context.Context, id string) error
	MaxPropertyCode(ctx context.Context) (int, error)
}

// CityGateway provides access to the cities table
type CityGateway interface {
	ListCities(ctx context.Context) ([]model.City, error)
	InsertCity(ctx context.Context, c *model.City) error
	UpsertCities(ctx context.Context, rows []model.City) error
	DeleteCity(ctx context.Context, id string) error
}

// PropertyTypeGateway provides access to the property_types table
type PropertyTypeGateway interface {
	ListPropertyTypes(ctx context.Context) ([]model.PropertyType, error)
	InsertPropertyType(ctx context.Context, t *model.PropertyType) error
	UpsertPropertyTypes(ctx context.Context, rows []model.PropertyType) error
	DeletePropertyType(ctx context.Context, id string) error
}

// PriceRangeGateway provides access to the price_ranges table
type PriceRangeGateway interface {
	ListPriceRanges(ctx context.Context) ([]model.PriceRange, error)
	InsertPriceRange(ctx context.Context, r *model.PriceRange) error
	UpsertPriceRanges(ctx context.Context, rows []model.PriceRange) error
	DeletePriceRange(ctx context.Context, id string) error
}
