package catalog

import (
	"context"
	"sync"
	"time"

	"imovel-service/internal/gateway"
	"imovel-service/internal/model"
	"imovel-service/prometheus"

	"github.com/google/uuid"
)

// PropertyCatalog caches the properties table, newest first. Create and
// update are pessimistic: the cache only changes after the store confirms.
type PropertyCatalog struct {
	gw gateway.PropertyGateway

	mu         sync.Mutex
	properties []model.Property
}

// NewPropertyCatalog creates an empty catalog; call Refresh before serving
func NewPropertyCatalog(gw gateway.PropertyGateway) *PropertyCatalog {
	return &PropertyCatalog{gw: gw}
}

// Refresh replaces the cache with a fresh fetch, ordered by createdAt descending
func (c *PropertyCatalog) Refresh(ctx context.Context) error {
	rows, err := c.gw.ListProperties(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.properties = rows
	c.mu.Unlock()
	return nil
}

// All returns a copy of every cached listing
func (c *PropertyCatalog) All() []model.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// Featured returns the listings promoted to the homepage carousel
func (c *PropertyCatalog) Featured() []model.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Property, 0)
	for _, p := range c.properties {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the cached listing with the given id
func (c *PropertyCatalog) Get(id string) (model.Property, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.properties {
		if p.ID == id {
			return p, true
		}
	}
	return model.Property{}, false
}

// Add validates and inserts a new listing, assigning id, display code and
// creation time, and prepends it to the cache.
func (c *PropertyCatalog) Add(ctx context.Context, p model.Property) (model.Property, error) {
	if err := p.Validate(); err != nil {
		return model.Property{}, err
	}

	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()
	if p.Code == 0 {
		maxCode, err := c.gw.MaxPropertyCode(ctx)
		if err != nil {
			return model.Property{}, err
		}
		p.Code = maxCode + 1
	}

	if err := c.gw.InsertProperty(ctx, &p); err != nil {
		return model.Property{}, err
	}

	c.mu.Lock()
	c.properties = append([]model.Property{p}, c.properties...)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("property", "add")
	return p, nil
}

// Update merges a partial change onto the cached row and upserts the full
// merged row, so an omitted field can never null out its column. The cache
// is only updated after the store confirms.
func (c *PropertyCatalog) Update(ctx context.Context, id string, upd model.PropertyUpdate) (model.Property, error) {
	c.mu.Lock()
	idx := indexOfProperty(c.properties, id)
	if idx < 0 {
		c.mu.Unlock()
		return model.Property{}, ErrNotFound
	}
	merged := c.properties[idx]
	c.mu.Unlock()

	upd.ApplyTo(&merged)
	if err := merged.Validate(); err != nil {
		return model.Property{}, err
	}

	if err := c.gw.UpsertProperties(ctx, []model.Property{merged}); err != nil {
		return model.Property{}, err
	}

	c.mu.Lock()
	if i := indexOfProperty(c.properties, id); i >= 0 {
		c.properties[i] = merged
	}
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("property", "update")
	return merged, nil
}

// Delete removes the listing remotely, then drops it from the cache by id
func (c *PropertyCatalog) Delete(ctx context.Context, id string) error {
	if err := c.gw.DeleteProperty(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	out := c.properties[:0]
	for _, p := range c.properties {
		if p.ID != id {
			out = append(out, p)
		}
	}
	c.properties = out
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("property", "delete")
	return nil
}

func indexOfProperty(properties []model.Property, id string) int {
	for i := range properties {
		if properties[i].ID == id {
			return i
		}
	}
	return -1
}
