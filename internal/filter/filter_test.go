package filter

import (
	"testing"

	"imovel-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func sampleRanges() []model.PriceRange {
	return []model.PriceRange{
		{ID: "1", Label: "Até R$ 500k", Value: "low", MinPrice: f(0), MaxPrice: f(500000), Active: true},
		{ID: "2", Label: "R$ 500k - R$ 1M", Value: "mid", MinPrice: f(500000), MaxPrice: f(1000000), Active: true},
		{ID: "3", Label: "Acima de R$ 1M", Value: "high", MinPrice: f(1000000), MaxPrice: nil, Active: true},
	}
}

func sampleProperties() []model.Property {
	return []model.Property{
		{ID: "1", Code: 123, Title: "Casa no Centro", Address: "Rua das Flores, 10", City: "Gramado", Type: "casa", Status: "venda", Price: 400000},
		{ID: "2", Code: 1234, Title: "Apartamento Vista Lago", Address: "Av. Beira Lago, 55", City: "Canela", Type: "apartamento", Status: "venda", Price: 800000},
		{ID: "3", Code: 9123, Title: "Sobrado Amplo", Address: "Rua Coberta, 7", City: "Gramado", Type: "sobrado", Status: "aluguel", Price: 1500000},
		{ID: "4", Code: 456, Title: "Terreno Plano", Address: "Linha Bonita, s/n", City: "Canela", Type: "terreno", Status: "venda", Price: 250000},
	}
}

func ids(props []model.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyNoPredicatesReturnsInputInOrder(t *testing.T) {
	props := sampleProperties()

	got := Apply(props, Criteria{}, sampleRanges())
	assert.Equal(t, ids(props), ids(got))

	// The sentinel select value behaves the same as unset
	got = Apply(props, Criteria{City: All, Type: All, Status: All, PriceRange: All}, sampleRanges())
	assert.Equal(t, ids(props), ids(got))
}

func TestApplyCodeSubstring(t *testing.T) {
	props := sampleProperties()

	got := Apply(props, Criteria{Code: "123"}, nil)
	assert.Equal(t, []string{"1", "2", "3"}, ids(got), "123, 1234 and 9123 all contain the digit substring")

	// Non-digit characters are stripped before matching
	got = Apply(props, Criteria{Code: "#123"}, nil)
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))

	// An input with no digits at all applies no predicate
	got = Apply(props, Criteria{Code: "#"}, nil)
	assert.Len(t, got, 4)
}

func TestApplyCity(t *testing.T) {
	got := Apply(sampleProperties(), Criteria{City: "Gramado"}, nil)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestApplyTextMatchesTitleOrAddress(t *testing.T) {
	props := sampleProperties()

	got := Apply(props, Criteria{Text: "casa"}, nil)
	assert.Equal(t, []string{"1"}, ids(got))

	got = Apply(props, Criteria{Text: "LAGO"}, nil)
	assert.Equal(t, []string{"2"}, ids(got), "text search is case-insensitive and covers the address")

	got = Apply(props, Criteria{Text: "piscina"}, nil)
	assert.Empty(t, got)
}

func TestApplyTypeAndStatus(t *testing.T) {
	props := sampleProperties()

	got := Apply(props, Criteria{Type: "sobrado"}, nil)
	assert.Equal(t, []string{"3"}, ids(got))

	got = Apply(props, Criteria{Status: "venda"}, nil)
	assert.Equal(t, []string{"1", "2", "4"}, ids(got))
}

func TestApplyPriceRangeBothBoundsInclusive(t *testing.T) {
	props := []model.Property{
		{ID: "below", Price: 499999},
		{ID: "atmin", Price: 500000},
		{ID: "inside", Price: 750000},
		{ID: "atmax", Price: 1000000},
		{ID: "above", Price: 1000001},
	}

	got := Apply(props, Criteria{PriceRange: "mid"}, sampleRanges())
	assert.Equal(t, []string{"atmin", "inside", "atmax"}, ids(got))
}

func TestApplyPriceRangeOpenEnded(t *testing.T) {
	props := []model.Property{
		{ID: "low", Price: 999999},
		{ID: "edge", Price: 1000000},
		{ID: "high", Price: 5000000},
	}

	got := Apply(props, Criteria{PriceRange: "high"}, sampleRanges())
	assert.Equal(t, []string{"edge", "high"}, ids(got))
}

func TestApplyPriceRangeUnboundedMatchesEverything(t *testing.T) {
	ranges := []model.PriceRange{{ID: "x", Value: "any", MinPrice: nil, MaxPrice: nil}}
	props := sampleProperties()

	got := Apply(props, Criteria{PriceRange: "any"}, ranges)
	assert.Len(t, got, len(props))
}

func TestApplyUnknownPriceRangeDisablesPredicate(t *testing.T) {
	got := Apply(sampleProperties(), Criteria{PriceRange: "missing"}, sampleRanges())
	assert.Len(t, got, 4)
}

func TestApplyPredicatesAreAnded(t *testing.T) {
	got := Apply(sampleProperties(), Criteria{City: "Gramado", Status: "venda"}, sampleRanges())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApplyMidRangeScenario(t *testing.T) {
	props := []model.Property{
		{ID: "1", Price: 400000},
		{ID: "2", Price: 800000},
		{ID: "3", Price: 1500000},
	}

	got := Apply(props, Criteria{PriceRange: "mid"}, sampleRanges())
	assert.Equal(t, []string{"2"}, ids(got))
}
