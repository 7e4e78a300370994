package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"imovel-service/internal/gateway"
	"imovel-service/internal/model"
	"imovel-service/prometheus"

	"github.com/google/uuid"
)

// CityCatalog caches the cities table for the public filter and the admin screen
type CityCatalog struct {
	gw gateway.CityGateway

	mu     sync.Mutex
	cities []model.City
	states map[string]rowState
}

// NewCityCatalog creates an empty catalog; call Refresh before serving
func NewCityCatalog(gw gateway.CityGateway) *CityCatalog {
	return &CityCatalog{gw: gw, states: make(map[string]rowState)}
}

// Refresh replaces the cache with a fresh fetch, sorted by name
func (c *CityCatalog) Refresh(ctx context.Context) error {
	rows, err := c.gw.ListCities(ctx)
	if err != nil {
		return err
	}
	sortCities(rows)

	c.mu.Lock()
	c.cities = rows
	c.states = make(map[string]rowState)
	c.mu.Unlock()
	return nil
}

// All returns a copy of every cached city
func (c *CityCatalog) All() []model.City {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.City, len(c.cities))
	copy(out, c.cities)
	return out
}

// Active returns the cities visible in public filters
func (c *CityCatalog) Active() []model.City {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.City, 0, len(c.cities))
	for _, city := range c.cities {
		if city.Active {
			out = append(out, city)
		}
	}
	return out
}

// Add inserts a new city and keeps the cache sorted by name
func (c *CityCatalog) Add(ctx context.Context, name, state string) (model.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.City{}, model.ErrEmptyName
	}

	city := model.City{ID: uuid.New().String(), Name: name, State: state, Active: true}
	if err := c.gw.InsertCity(ctx, &city); err != nil {
		return model.City{}, err
	}

	c.mu.Lock()
	c.cities = append(c.cities, city)
	sortCities(c.cities)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("city", "add")
	return city, nil
}

// Delete removes the city remotely, then drops it from the cache by id.
// Listings still referencing the city are left untouched.
func (c *CityCatalog) Delete(ctx context.Context, id string) error {
	if err := c.gw.DeleteCity(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	c.cities = removeCity(c.cities, id)
	delete(c.states, id)
	c.mu.Unlock()

	prometheus.RecordCatalogOperation("city", "delete")
	return nil
}

// ToggleActive flips the active flag optimistically: the cached row changes
// first, then the full row is upserted. On failure only this row is reverted.
func (c *CityCatalog) ToggleActive(ctx context.Context, id string, active bool) error {
	c.mu.Lock()
	idx := indexOfCity(c.cities, id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	if c.states[id].state == statePendingWrite {
		c.mu.Unlock()
		return ErrWriteInFlight
	}
	prev := c.cities[idx].Active
	c.cities[idx].Active = active
	c.states[id] = rowState{state: statePendingWrite, prevActive: prev}
	row := c.cities[idx]
	c.mu.Unlock()

	err := c.gw.UpsertCities(ctx, []model.City{row})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if i := indexOfCity(c.cities, id); i >= 0 {
			c.cities[i].Active = prev
		}
		c.states[id] = rowState{state: stateFailed, prevActive: prev}
		prometheus.RecordRollback("city")
		return err
	}
	c.states[id] = rowState{state: stateSynced}
	prometheus.RecordCatalogOperation("city", "toggle")
	return nil
}

// ToggleAll sets every city's active flag and submits one bulk upsert. On
// failure the optimistic state is abandoned in favor of a full re-fetch.
func (c *CityCatalog) ToggleAll(ctx context.Context, active bool) error {
	c.mu.Lock()
	for i := range c.cities {
		c.cities[i].Active = active
	}
	rows := make([]model.City, len(c.cities))
	copy(rows, c.cities)
	c.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}
	if err := c.gw.UpsertCities(ctx, rows); err != nil {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return err
	}

	prometheus.RecordCatalogOperation("city", "toggle_all")
	return nil
}

func sortCities(cities []model.City) {
	sort.SliceStable(cities, func(i, j int) bool {
		return cities[i].Name < cities[j].Name
	})
}

func indexOfCity(cities []model.City, id string) int {
	for i := range cities {
		if cities[i].ID == id {
			return i
		}
	}
	return -1
}

func removeCity(cities []model.City, id string) []model.City {
	out := cities[:0]
	for _, c := range cities {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
