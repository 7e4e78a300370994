package catalog

import (
	"context"
	"testing"

	"imovel-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingCityGateway parks upserts until released, to exercise the
// same-row in-flight guard.
type blockingCityGateway struct {
	fakeCityGateway
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCityGateway) UpsertCities(ctx context.Context, rows []model.City) error {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeCityGateway.UpsertCities(ctx, rows)
}

func TestCityToggleSameRowWhileWritePending(t *testing.T) {
	gw := &blockingCityGateway{
		fakeCityGateway: fakeCityGateway{rows: []model.City{
			{ID: "a", Name: "Canela", State: "RS", Active: true},
		}},
		entered: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	c := NewCityCatalog(&gw.fakeCityGateway)
	require.NoError(t, c.Refresh(context.Background()))
	c.gw = gw

	done := make(chan error, 1)
	go func() {
		done <- c.ToggleActive(context.Background(), "a", false)
	}()
	<-gw.entered

	// A second toggle on the same row is rejected while the first is in flight
	err := c.ToggleActive(context.Background(), "a", true)
	assert.ErrorIs(t, err, ErrWriteInFlight)

	close(gw.release)
	require.NoError(t, <-done)
	assert.False(t, c.All()[0].Active, "the first toggle's outcome wins")

	// Once the write resolves the row accepts toggles again
	require.NoError(t, c.ToggleActive(context.Background(), "a", true))
	assert.True(t, c.All()[0].Active)
}
