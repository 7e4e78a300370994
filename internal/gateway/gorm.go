package gateway

import (
	"context"
	"time"

	"imovel-service/internal/model"
	"imovel-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the GORM-backed implementation of all entity gateways
type Store struct {
	db *gorm.DB
}

// NewStore wraps a database handle into a gateway store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// upsertByID replaces rows by primary key, writing every column
var upsertByID = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	UpdateAll: true,
}

func (s *Store) ListProperties(ctx context.Context) ([]model.Property, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []model.Property
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (s *Store) InsertProperty(ctx context.Context, p *model.Property) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) UpsertProperties(ctx context.Context, rows []model.Property) error {
	defer prometheus.TrackDBOperation("upsert")(time.Now())
	return s.db.WithContext(ctx).Clauses(upsertByID).Create(&rows).Error
}

func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.Property{}, "id = ?", id).Error
}

func (s *Store) MaxPropertyCode(ctx context.Context) (int, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var maxCode int
	err := s.db.WithContext(ctx).Model(&model.Property{}).
		Select("COALESCE(MAX(code), 0)").Scan(&maxCode).Error
	return maxCode, err
}

func (s *Store) ListCities(ctx context.Context) ([]model.City, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []model.City
	err := s.db.WithContext(ctx).Order("name").Find(&rows).Error
	return rows, err
}

func (s *Store) InsertCity(ctx context.Context, c *model.City) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) UpsertCities(ctx context.Context, rows []model.City) error {
	defer prometheus.TrackDBOperation("upsert")(time.Now())
	return s.db.WithContext(ctx).Clauses(upsertByID).Create(&rows).Error
}

func (s *Store) DeleteCity(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.City{}, "id = ?", id).Error
}

func (s *Store) ListPropertyTypes(ctx context.Context) ([]model.PropertyType, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []model.PropertyType
	err := s.db.WithContext(ctx).Order("label").Find(&rows).Error
	return rows, err
}

func (s *Store) InsertPropertyType(ctx context.Context, t *model.PropertyType) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Store) UpsertPropertyTypes(ctx context.Context, rows []model.PropertyType) error {
	defer prometheus.TrackDBOperation("upsert")(time.Now())
	return s.db.WithContext(ctx).Clauses(upsertByID).Create(&rows).Error
}

func (s *Store) DeletePropertyType(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.PropertyType{}, "id = ?", id).Error
}

func (s *Store) ListPriceRanges(ctx context.Context) ([]model.PriceRange, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []model.PriceRange
	err := s.db.WithContext(ctx).Order("min_price").Find(&rows).Error
	return rows, err
}

func (s *Store) InsertPriceRange(ctx context.Context, r *model.PriceRange) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *Store) UpsertPriceRanges(ctx context.Context, rows []model.PriceRange) error {
	defer prometheus.TrackDBOperation("upsert")(time.Now())
	return s.db.WithContext(ctx).Clauses(upsertByID).Create(&rows).Error
}

func (s *Store) DeletePriceRange(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.PriceRange{}, "id = ?", id).Error
}
