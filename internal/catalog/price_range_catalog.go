package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"imovel-service/internal/gateway"
	"imovel-service/internal/model"
	"imovel-service/prometheus"

	"github.com/google/uuid"
)

// PriceRangeCatalog caches the price_ranges table
type PriceRangeCatalog struct {
	gw gateway.PriceRangeGateway

	mu     sync.Mutex
	ranges []model.PriceRange
	states map[string]rowState
}

// NewPriceRangeCatalog creates an empty catalog; call Refresh before serving
func NewPriceRangeCatalog(gw gateway.PriceRangeGateway) *PriceRangeCatalog {
	return &PriceRangeCatalog{gw: gw, states: make(map[string]rowState)}
}

// Refresh replaces the cache with a fresh fetch, sorted by min_price
func (c *PriceRangeCatalog) Refresh(ctx context.Context) error {
	rows, err := c.gw.ListPriceRanges(ctx)
	if err != nil {
		return err
	}
	sortRanges(rows)

	c.mu.Lock()
	c.ranges = rows
	c.states = make(map[string]rowState)
	c.mu.Unlock()
	return nil
}

// All returns a copy of every cached range
func (c *PriceRangeCatalog) All() []model.PriceRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.PriceRange, len(c.ranges))
	copy(out, c.ranges)
	return out
}

// Active returns the ranges visible in public filters
func (c *PriceRangeCatalog) Active() []model.PriceRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.PriceRange, 0, len(c.ranges))
	for _, r := range c.ranges {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// Add inserts a new range and keeps the cache sorted by min_price.
// Inverted bounds are rejected before any remote call.
func (c *PriceRangeCatalog) Add(ctx context.Context, label string, min, max *float64) (model.PriceRange, error) {
	r := model.PriceRange{
		ID:       uuid.New().String(),
		Label:    strings.TrimSpace(label),
		Value:    fmt.Sprintf("range-%d", time.Now().UnixMilli()),
		MinPrice: min,
		MaxPrice: max,
		Active:   true,
	}
	if err := r.Validate(); err != nil {
		return model.PriceRange{}, err
	}
	if err := c.gw.InsertPriceRange(ctx, &r); err != nil {
		return model.PriceRange{}, err
	}

	c.mu.Lock()
	c.ranges = append(c.ranges, r)
	sortRanges(c.ranges)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("price_range", "add")
	return r, nil
}

// Delete removes the range remotely, then drops it from the cache by id
func (c *PriceRangeCatalog) Delete(ctx context.Context, id string) error {
	if err := c.gw.DeletePriceRange(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	out := c.ranges[:0]
	for _, r := range c.ranges {
		if r.ID != id {
			out = append(out, r)
		}
	}
	c.ranges = out
	delete(c.states, id)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("price_range", "delete")
	return nil
}

// ToggleActive flips the active flag optimistically and reverts on failure
func (c *PriceRangeCatalog) ToggleActive(ctx context.Context, id string, active bool) error {
	c.mu.Lock()
	idx := indexOfRange(c.ranges, id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	if c.states[id].state == statePendingWrite {
		c.mu.Unlock()
		return ErrWriteInFlight
	}
	prev := c.ranges[idx].Active
	c.ranges[idx].Active = active
	c.states[id] = rowState{state: statePendingWrite, prevActive: prev}
	row := c.ranges[idx]
	c.mu.Unlock()

	err := c.gw.UpsertPriceRanges(ctx, []model.PriceRange{row})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if i := indexOfRange(c.ranges, id); i >= 0 {
			c.ranges[i].Active = prev
		}
		c.states[id] = rowState{state: stateFailed, prevActive: prev}
		prometheus.RecordRollback("price_range")
		return err
	}
	c.states[id] = rowState{state: stateSynced}
	prometheus.RecordCatalogOperation("price_range", "toggle")
	return nil
}

// ToggleAll sets every range's active flag in one bulk upsert, re-fetching on failure
func (c *PriceRangeCatalog) ToggleAll(ctx context.Context, active bool) error {
	c.mu.Lock()
	for i := range c.ranges {
		c.ranges[i].Active = active
	}
	rows := make([]model.PriceRange, len(c.ranges))
	copy(rows, c.ranges)
	c.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}
	if err := c.gw.UpsertPriceRanges(ctx, rows); err != nil {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return err
	}

	prometheus.RecordCatalogOperation("price_range", "toggle_all")
	return nil
}

func sortRanges(ranges []model.PriceRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		return boundOrZero(ranges[i].MinPrice) < boundOrZero(ranges[j].MinPrice)
	})
}

func boundOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func indexOfRange(ranges []model.PriceRange, id string) int {
	for i := range ranges {
		if ranges[i].ID == id {
			return i
		}
	}
	return -1
}
