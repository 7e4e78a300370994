package catalog

import (
	"context"
	"testing"

	"imovel-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTypeGateway struct {
	rows []model.PropertyType
	fail bool
}

func (f *fakeTypeGateway) ListPropertyTypes(ctx context.Context) ([]model.PropertyType, error) {
	out := make([]model.PropertyType, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeTypeGateway) InsertPropertyType(ctx context.Context, t *model.PropertyType) error {
	if f.fail {
		return errRemote
	}
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeTypeGateway) UpsertPropertyTypes(ctx context.Context, rows []model.PropertyType) error {
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

func (f *fakeTypeGateway) DeletePropertyType(ctx context.Context, id string) error {
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

func newTypeCatalogWith(t *testing.T, rows []model.PropertyType) (*TypeCatalog, *fakeTypeGateway) {
	t.Helper()
	gw := &fakeTypeGateway{rows: rows}
	c := NewTypeCatalog(gw)
	require.NoError(t, c.Refresh(context.Background()))
	return c, gw
}

func TestTypeAddDerivesSlug(t *testing.T) {
	c, gw := newTypeCatalogWith(t, nil)

	added, err := c.Add(context.Background(), "Apartamento na Praia")
	require.NoError(t, err)

	assert.Equal(t, "apartamento-na-praia", added.Value)
	assert.True(t, added.Active)
	require.Len(t, gw.rows, 1)
	assert.Equal(t, added, gw.rows[0])
}

func TestTypeAddStripsAccentsInSlug(t *testing.T) {
	c, _ := newTypeCatalogWith(t, nil)

	added, err := c.Add(context.Background(), "Sítio")
	require.NoError(t, err)
	assert.Equal(t, "sitio", added.Value)
}

func TestTypeAddKeepsLabelOrder(t *testing.T) {
	c, _ := newTypeCatalogWith(t, []model.PropertyType{
		{ID: "a", Label: "Apartamento", Value: "apartamento", Active: true},
		{ID: "c", Label: "Terreno", Value: "terreno", Active: true},
	})

	_, err := c.Add(context.Background(), "Casa")
	require.NoError(t, err)

	labels := []string{}
	for _, pt := range c.All() {
		labels = append(labels, pt.Label)
	}
	assert.Equal(t, []string{"Apartamento", "Casa", "Terreno"}, labels)
}

func TestTypeToggleActiveRollsBackOnFailure(t *testing.T) {
	c, gw := newTypeCatalogWith(t, []model.PropertyType{
		{ID: "a", Label: "Casa", Value: "casa", Active: true},
	})
	gw.fail = true

	err := c.ToggleActive(context.Background(), "a", false)

	require.ErrorIs(t, err, errRemote)
	assert.True(t, c.All()[0].Active)
}

func TestTypeDeleteRemovesByID(t *testing.T) {
	c, gw := newTypeCatalogWith(t, []model.PropertyType{
		{ID: "a", Label: "Casa", Value: "casa", Active: true},
		{ID: "b", Label: "Terreno", Value: "terreno", Active: true},
	})

	require.NoError(t, c.Delete(context.Background(), "a"))

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
	assert.Len(t, gw.rows, 1)
}
