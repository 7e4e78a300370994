package catalog

import (
	"context"
	"testing"

	"imovel-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePropertyGateway struct {
	rows       []model.Property
	fail       bool
	lastUpsert []model.Property
}

func (f *fakePropertyGateway) ListProperties(ctx context.Context) ([]model.Property, error) {
	out := make([]model.Property, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakePropertyGateway) InsertProperty(ctx context.Context, p *model.Property) error {
	if f.fail {
		return errRemote
	}
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePropertyGateway) UpsertProperties(ctx context.Context, rows []model.Property) error {
	f.lastUpsert = rows
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

func (f *fakePropertyGateway) DeleteProperty(ctx context.Context, id string) error {
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

func (f *fakePropertyGateway) MaxPropertyCode(ctx context.Context) (int, error) {
	maxCode := 0
	for _, r := range f.rows {
		if r.Code > maxCode {
			maxCode = r.Code
		}
	}
	return maxCode, nil
}

func validProperty() model.Property {
	return model.Property{
		Title:   "Casa no Centro",
		Price:   400000,
		Type:    "casa",
		Status:  model.StatusSale,
		City:    "Gramado",
		State:   "RS",
		Address: "Rua das Flores, 10",
		Images:  []string{"http://storage.local/property-images/a.jpg"},
	}
}

func newPropertyCatalogWith(t *testing.T, rows []model.Property) (*PropertyCatalog, *fakePropertyGateway) {
	t.Helper()
	gw := &fakePropertyGateway{rows: rows}
	c := NewPropertyCatalog(gw)
	require.NoError(t, c.Refresh(context.Background()))
	return c, gw
}

func TestPropertyAddAssignsIDAndNextCode(t *testing.T) {
	c, _ := newPropertyCatalogWith(t, []model.Property{
		{ID: "x", Code: 41, Title: "Antigo", Status: model.StatusSale},
	})

	added, err := c.Add(context.Background(), validProperty())

	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, 42, added.Code)
	assert.False(t, added.CreatedAt.IsZero())

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, added.ID, all[0].ID, "new listings are prepended, newest first")
}

func TestPropertyAddRejectsNegativePrice(t *testing.T) {
	c, gw := newPropertyCatalogWith(t, nil)

	p := validProperty()
	p.Price = -1

	_, err := c.Add(context.Background(), p)
	assert.ErrorIs(t, err, model.ErrNegativeValue)
	assert.Empty(t, gw.rows)
}

func TestPropertyUpdateMergesAndWritesFullRow(t *testing.T) {
	existing := validProperty()
	existing.ID = "p1"
	existing.Code = 7
	existing.Description = "Aconchegante"
	c, gw := newPropertyCatalogWith(t, []model.Property{existing})

	newPrice := 450000.0
	updated, err := c.Update(context.Background(), "p1", model.PropertyUpdate{Price: &newPrice})

	require.NoError(t, err)
	assert.Equal(t, 450000.0, updated.Price)
	assert.Equal(t, "Aconchegante", updated.Description, "untouched fields survive the merge")

	require.Len(t, gw.lastUpsert, 1)
	row := gw.lastUpsert[0]
	assert.Equal(t, "Casa no Centro", row.Title, "every column rides along so the upsert cannot null it out")
	assert.Equal(t, existing.Images, row.Images)
}

func TestPropertyUpdateFailureLeavesCacheUntouched(t *testing.T) {
	existing := validProperty()
	existing.ID = "p1"
	c, gw := newPropertyCatalogWith(t, []model.Property{existing})
	gw.fail = true

	newPrice := 999999.0
	_, err := c.Update(context.Background(), "p1", model.PropertyUpdate{Price: &newPrice})

	require.ErrorIs(t, err, errRemote)
	cached, ok := c.Get("p1")
	require.True(t, ok)
	assert.Equal(t, 400000.0, cached.Price)
}

func TestPropertyUpdateUnknownID(t *testing.T) {
	c, _ := newPropertyCatalogWith(t, nil)
	_, err := c.Update(context.Background(), "nope", model.PropertyUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyDeleteRemovesByID(t *testing.T) {
	a := validProperty()
	a.ID = "a"
	b := validProperty()
	b.ID = "b"
	c, gw := newPropertyCatalogWith(t, []model.Property{a, b})

	require.NoError(t, c.Delete(context.Background(), "a"))

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
	assert.Len(t, gw.rows, 1)
}

func TestPropertyFeatured(t *testing.T) {
	a := validProperty()
	a.ID = "a"
	a.Featured = true
	b := validProperty()
	b.ID = "b"
	c, _ := newPropertyCatalogWith(t, []model.Property{a, b})

	featured := c.Featured()
	require.Len(t, featured, 1)
	assert.Equal(t, "a", featured[0].ID)
}
