package services

import (
	"context"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

// pricedFixture: accommodation 5000, transport 2000, two travelers.
func pricedFixture() *memStore {
	store := newMemStore()
	store.itineraries[1] = models.Itinerary{ID: 1, Name: "Goa Escape", Duration: 2, Adults: 2, StartDate: startDate()}
	store.seedDay(models.Day{ItineraryID: 1, DayNumber: 2,
		Room: &models.RoomSelection{RoomType: "Deluxe", Quantity: 1, UnitPrice: d(2000), Price: dp(2000)},
	})
	store.seedDay(models.Day{ItineraryID: 1, DayNumber: 1,
		Room: &models.RoomSelection{RoomType: "Suite", Quantity: 1, UnitPrice: d(3000), Price: dp(3000)},
		Cab:  &models.CabSelection{Type: "Sedan", Quantity: 1, UnitPrice: d(2000), Price: dp(2000)},
	})
	store.options[1] = models.PricingOptions{
		TaxPercentage:      d(10),
		AgentCharges:       d(500),
		AdditionalServices: []models.AdditionalService{{Name: "Guide", Price: d(1000)}},
		ShowPerPersonPrice: true,
	}
	return store
}

func TestSummaryEndToEnd(t *testing.T) {
	store := pricedFixture()
	svc := PricingService{Itineraries: store, Activities: store, Options: store, Settings: NewFixedSettings(models.DefaultAgencySettings())}

	sum, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, sum.Subtotal.Equal(d(8000)), "subtotal %s", sum.Subtotal)
	assert.True(t, sum.Tax.Equal(d(800)), "tax %s", sum.Tax)
	assert.True(t, sum.Total.Equal(d(9300)), "total %s", sum.Total)
	require.NotNil(t, sum.PerPersonTotal)
	assert.True(t, sum.PerPersonTotal.Equal(d(4650)))
	assert.Equal(t, "Rs.", sum.Currency)
}

func TestItineraryViewOrdersDaysByNumber(t *testing.T) {
	store := pricedFixture()
	view, err := PricingService{Itineraries: store, Activities: store, Options: store}.ItineraryView(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, view.Days, 2)
	assert.Equal(t, 1, view.Days[0].DayNumber)
	assert.Equal(t, 2, view.Days[1].DayNumber)
	assert.Equal(t, []int{1, 1, 2}, costLineDays(view.PricingSummary.CostLines))
}

func costLineDays(lines []models.CostLine) []int {
	out := []int{}
	for _, l := range lines {
		out = append(out, l.DayNumber)
	}
	return out
}

func TestGetOptionsDefaultsWhenMissing(t *testing.T) {
	store := newMemStore()
	opts, err := PricingService{Options: store}.GetOptions(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, opts.TaxPercentage.IsZero())
	assert.True(t, opts.AgentCharges.IsZero())
	assert.NotNil(t, opts.AdditionalServices)
	assert.Empty(t, opts.AdditionalServices)
}

func TestSaveOptionsValidates(t *testing.T) {
	store := newMemStore()
	store.itineraries[1] = models.Itinerary{ID: 1}
	svc := PricingService{Itineraries: store, Options: store}

	cases := []struct {
		name  string
		opts  models.PricingOptions
		field string
	}{
		{"tax above 100", models.PricingOptions{TaxPercentage: d(101)}, "taxPercentage"},
		{"negative tax", models.PricingOptions{TaxPercentage: d(-1)}, "taxPercentage"},
		{"negative agent charges", models.PricingOptions{AgentCharges: d(-5)}, "agentCharges"},
		{"unnamed service", models.PricingOptions{AdditionalServices: []models.AdditionalService{{Name: " ", Price: d(10)}}}, "additionalServices[0].name"},
		{"negative service", models.PricingOptions{AdditionalServices: []models.AdditionalService{{Name: "Guide", Price: d(-10)}}}, "additionalServices[0].price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveOptions(context.Background(), 1, tc.opts)
			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
	assert.Empty(t, store.options)
}

func TestSaveOptionsPersists(t *testing.T) {
	store := newMemStore()
	store.itineraries[1] = models.Itinerary{ID: 1}
	svc := PricingService{Itineraries: store, Options: store}

	_, err := svc.SaveOptions(context.Background(), 1, models.PricingOptions{TaxPercentage: d(5), AgentCharges: d(100)})
	require.NoError(t, err)
	got, err := svc.GetOptions(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.TaxPercentage.Equal(d(5)))
	assert.NotNil(t, got.AdditionalServices)
}

func TestSettingsCacheInvalidate(t *testing.T) {
	store := newMemStore()
	cache := NewSettingsCache(store)

	s, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rs.", s.CurrencySymbol)
	_, _ = cache.Get(context.Background())
	assert.Equal(t, 1, store.settingsHit)

	store.settings.CurrencySymbol = "USD"
	s, _ = cache.Get(context.Background())
	assert.Equal(t, "Rs.", s.CurrencySymbol, "cached until invalidated")

	cache.Invalidate()
	s, _ = cache.Get(context.Background())
	assert.Equal(t, "USD", s.CurrencySymbol)
	assert.Equal(t, 2, store.settingsHit)
}

func TestFixedSettingsSurviveInvalidate(t *testing.T) {
	cache := NewFixedSettings(models.AgencySettings{CompanyName: "Test", CurrencySymbol: "$"})
	cache.Invalidate()
	s, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$", s.CurrencySymbol)
}
