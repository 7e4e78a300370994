package catalog

import (
	"context"
	"testing"

	"imovel-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRangeGateway struct {
	rows []model.PriceRange
	fail bool
}

func (f *fakeRangeGateway) ListPriceRanges(ctx context.Context) ([]model.PriceRange, error) {
	out := make([]model.PriceRange, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeRangeGateway) InsertPriceRange(ctx context.Context, r *model.PriceRange) error {
	if f.fail {
		return errRemote
	}
	f.rows = append(f.rows, *r)
	return nil
}

func (f *fakeRangeGateway) UpsertPriceRanges(ctx context.Context, rows []model.PriceRange) error {
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

func (f *fakeRangeGateway) DeletePriceRange(ctx context.Context, id string) error {
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

func pf(v float64) *float64 { return &v }

func newRangeCatalogWith(t *testing.T, rows []model.PriceRange) (*PriceRangeCatalog, *fakeRangeGateway) {
	t.Helper()
	gw := &fakeRangeGateway{rows: rows}
	c := NewPriceRangeCatalog(gw)
	require.NoError(t, c.Refresh(context.Background()))
	return c, gw
}

func TestRangeAddRejectsInvertedBounds(t *testing.T) {
	c, gw := newRangeCatalogWith(t, nil)

	_, err := c.Add(context.Background(), "Faixa ruim", pf(1000000), pf(500000))

	assert.ErrorIs(t, err, model.ErrInvalidRange)
	assert.Empty(t, gw.rows, "invalid ranges never reach the store")
}

func TestRangeAddAcceptsOpenBounds(t *testing.T) {
	c, _ := newRangeCatalogWith(t, nil)

	r, err := c.Add(context.Background(), "Acima de R$ 1M", pf(1000000), nil)

	require.NoError(t, err)
	assert.Nil(t, r.MaxPrice)
	assert.NotEmpty(t, r.Value)
	assert.True(t, r.Active)
}

func TestRangeAddKeepsMinPriceOrder(t *testing.T) {
	c, _ := newRangeCatalogWith(t, []model.PriceRange{
		{ID: "1", Label: "Até R$ 500k", Value: "low", MinPrice: pf(0), MaxPrice: pf(500000), Active: true},
		{ID: "3", Label: "Acima de R$ 1M", Value: "high", MinPrice: pf(1000000), Active: true},
	})

	_, err := c.Add(context.Background(), "R$ 500k - R$ 1M", pf(500000), pf(1000000))
	require.NoError(t, err)

	labels := []string{}
	for _, r := range c.All() {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"Até R$ 500k", "R$ 500k - R$ 1M", "Acima de R$ 1M"}, labels)
}

func TestRangeToggleRollsBackOnFailure(t *testing.T) {
	c, gw := newRangeCatalogWith(t, []model.PriceRange{
		{ID: "1", Label: "Até R$ 500k", Value: "low", MinPrice: pf(0), MaxPrice: pf(500000), Active: true},
	})
	gw.fail = true

	err := c.ToggleActive(context.Background(), "1", false)

	require.ErrorIs(t, err, errRemote)
	assert.True(t, c.All()[0].Active)
}

func TestRangeToggleAllDeactivatesEverything(t *testing.T) {
	c, _ := newRangeCatalogWith(t, []model.PriceRange{
		{ID: "1", Value: "low", Label: "a", Active: true},
		{ID: "2", Value: "mid", Label: "b", Active: true},
	})

	require.NoError(t, c.ToggleAll(context.Background(), false))
	assert.Empty(t, c.Active())
}
