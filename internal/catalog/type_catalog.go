package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"imovel-service/internal/gateway"
	"imovel-service/internal/model"
	"imovel-service/internal/slug"
	"imovel-service/prometheus"

	"github.com/google/uuid"
)

// TypeCatalog caches the property_types table
type TypeCatalog struct {
	gw gateway.PropertyTypeGateway

	mu     sync.Mutex
	types  []model.PropertyType
	states map[string]rowState
}

// NewTypeCatalog creates an empty catalog; call Refresh before serving
func NewTypeCatalog(gw gateway.PropertyTypeGateway) *TypeCatalog {
	return &TypeCatalog{gw: gw, states: make(map[string]rowState)}
}

// Refresh replaces the cache with a fresh fetch, sorted by label
func (c *TypeCatalog) Refresh(ctx context.Context) error {
	rows, err := c.gw.ListPropertyTypes(ctx)
	if err != nil {
		return err
	}
	sortTypes(rows)

	c.mu.Lock()
	c.types = rows
	c.states = make(map[string]rowState)
	c.mu.Unlock()
	return nil
}

// All returns a copy of every cached type
func (c *TypeCatalog) All() []model.PropertyType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.PropertyType, len(c.types))
	copy(out, c.types)
	return out
}

// Active returns the types visible in public filters
func (c *TypeCatalog) Active() []model.PropertyType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.PropertyType, 0, len(c.types))
	for _, t := range c.types {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}

// Add inserts a new type with a slug derived from its label. A duplicate
// slug surfaces as a unique-constraint error from the store, not up front.
func (c *TypeCatalog) Add(ctx context.Context, label string) (model.PropertyType, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.PropertyType{}, model.ErrEmptyName
	}

	t := model.PropertyType{
		ID:     uuid.New().String(),
		Label:  label,
		Value:  slug.Make(label),
		Active: true,
	}
	if err := c.gw.InsertPropertyType(ctx, &t); err != nil {
		return model.PropertyType{}, err
	}

	c.mu.Lock()
	c.types = append(c.types, t)
	sortTypes(c.types)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("property_type", "add")
	return t, nil
}

// Delete removes the type remotely, then drops it from the cache by id
func (c *TypeCatalog) Delete(ctx context.Context, id string) error {
	if err := c.gw.DeletePropertyType(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	out := c.types[:0]
	for _, t := range c.types {
		if t.ID != id {
			out = append(out, t)
		}
	}
	c.types = out
	delete(c.states, id)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("property_type", "delete")
	return nil
}

// ToggleActive flips the active flag optimistically and reverts on failure
func (c *TypeCatalog) ToggleActive(ctx context.Context, id string, active bool) error {
	c.mu.Lock()
	idx := indexOfType(c.types, id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	if c.states[id].state == statePendingWrite {
		c.mu.Unlock()
		return ErrWriteInFlight
	}
	prev := c.types[idx].Active
	c.types[idx].Active = active
	c.states[id] = rowState{state: statePendingWrite, prevActive: prev}
	row := c.types[idx]
	c.mu.Unlock()

	err := c.gw.UpsertPropertyTypes(ctx, []model.PropertyType{row})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if i := indexOfType(c.types, id); i >= 0 {
			c.types[i].Active = prev
		}
		c.states[id] = rowState{state: stateFailed, prevActive: prev}
		prometheus.RecordRollback("property_type")
		return err
	}
	c.states[id] = rowState{state: stateSynced}
	prometheus.RecordCatalogOperation("property_type", "toggle")
	return nil
}

// ToggleAll sets every type's active flag in one bulk upsert, re-fetching on failure
func (c *TypeCatalog) ToggleAll(ctx context.Context, active bool) error {
	c.mu.Lock()
	for i := range c.types {
		c.types[i].Active = active
	}
	rows := make([]model.PropertyType, len(c.types))
	copy(rows, c.types)
	c.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}
	if err := c.gw.UpsertPropertyTypes(ctx, rows); err != nil {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return err
	}

	prometheus.RecordCatalogOperation("property_type", "toggle_all")
	return nil
}

func sortTypes(types []model.PropertyType) {
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Label < types[j].Label
	})
}

func indexOfType(types []model.PropertyType, id string) int {
	for i := range types {
		if types[i].ID == id {
			return i
		}
	}
	return -1
}
