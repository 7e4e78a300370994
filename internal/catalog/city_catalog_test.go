package catalog

import (
	"context"
	"errors"
	"testing"

	"imovel-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("remote store unavailable")

// fakeCityGateway is an in-memory stand-in for the store. Setting fail makes
// every mutation return an error while reads keep serving the stored rows.
type fakeCityGateway struct {
	rows    []model.City
	fail    bool
	upserts int
}

func (f *fakeCityGateway) ListCities(ctx context.Context) ([]model.City, error) {
	out := make([]model.City, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeCityGateway) InsertCity(ctx context.Context, c *model.City) error {
	if f.fail {
		return errRemote
	}
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeCityGateway) UpsertCities(ctx context.Context, rows []model.City) error {
	f.upserts++
	if f.fail {
		return errRemote
	}
	for _, r := range rows {
		replaced := false
		for i := range f.rows {
			if f.rows[i].ID == r.ID {
				f.rows[i] = r
				replaced = true
			}
		}
		if !replaced {
			f.rows = append(f.rows, r)
		}
	}
	return nil
}

func (f *fakeCityGateway) DeleteCity(ctx context.Context, id string) error {
	if f.fail {
		return errRemote
	}
	out := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	f.rows = out
	return nil
}

func newCityCatalogWith(t *testing.T, rows []model.City) (*CityCatalog, *fakeCityGateway) {
	t.Helper()
	gw := &fakeCityGateway{rows: rows}
	c := NewCityCatalog(gw)
	require.NoError(t, c.Refresh(context.Background()))
	return c, gw
}

func TestCityToggleActivePersists(t *testing.T) {
	c, gw := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: true},
	})

	require.NoError(t, c.ToggleActive(context.Background(), "a", false))

	assert.False(t, c.All()[0].Active)
	assert.False(t, gw.rows[0].Active, "the full row must reach the store")
}

func TestCityToggleActiveRollsBackOnFailure(t *testing.T) {
	c, gw := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: true},
	})
	gw.fail = true

	err := c.ToggleActive(context.Background(), "a", false)

	require.ErrorIs(t, err, errRemote)
	assert.True(t, c.All()[0].Active, "failed toggle must restore the pre-toggle value")
}

func TestCityToggleActiveUnknownID(t *testing.T) {
	c, _ := newCityCatalogWith(t, nil)
	assert.ErrorIs(t, c.ToggleActive(context.Background(), "nope", true), ErrNotFound)
}

func TestCityToggleAllBulkUpsert(t *testing.T) {
	c, gw := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: true},
		{ID: "b", Name: "Gramado", State: "RS", Active: true},
	})

	require.NoError(t, c.ToggleAll(context.Background(), false))

	for _, city := range c.All() {
		assert.False(t, city.Active)
	}
	assert.Equal(t, 1, gw.upserts, "bulk toggle submits a single upsert call")
}

func TestCityToggleAllRefetchesOnFailure(t *testing.T) {
	c, gw := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: true},
		{ID: "b", Name: "Gramado", State: "RS", Active: true},
	})
	gw.fail = true

	err := c.ToggleAll(context.Background(), false)

	require.ErrorIs(t, err, errRemote)
	fresh, listErr := gw.ListCities(context.Background())
	require.NoError(t, listErr)
	assert.Equal(t, fresh, c.All(), "after a failed bulk toggle the cache equals a fresh fetch")
	for _, city := range c.All() {
		assert.True(t, city.Active)
	}
}

func TestCityAddKeepsNameOrder(t *testing.T) {
	c, _ := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: true},
		{ID: "b", Name: "Nova Petrópolis", State: "RS", Active: true},
	})

	added, err := c.Add(context.Background(), "Gramado", "RS")
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.Active)

	names := []string{}
	for _, city := range c.All() {
		names = append(names, city.Name)
	}
	assert.Equal(t, []string{"Canela", "Gramado", "Nova Petrópolis"}, names)
}

func TestCityAddRejectsBlankName(t *testing.T) {
	c, _ := newCityCatalogWith(t, nil)
	_, err := c.Add(context.Background(), "   ", "RS")
	assert.ErrorIs(t, err, model.ErrEmptyName)
}

func TestCityDeleteRemovesByID(t *testing.T) {
	c, gw := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: true},
		{ID: "b", Name: "Gramado", State: "RS", Active: true},
	})

	require.NoError(t, c.Delete(context.Background(), "a"))

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
	assert.Len(t, gw.rows, 1)
}

func TestCityActiveHidesToggledOff(t *testing.T) {
	c, _ := newCityCatalogWith(t, []model.City{
		{ID: "a", Name: "Canela", State: "RS", Active: false},
		{ID: "b", Name: "Gramado", State: "RS", Active: true},
	})

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Gramado", active[0].Name)
}
