package domain

import (
	"testing"

	"backoffice/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sampleDays() []models.Day {
	return []models.Day{
		{ID: 2, DayNumber: 2, Room: &models.RoomSelection{RoomType: "Deluxe", Quantity: 1, UnitPrice: dec("2000"), Price: decPtr("2000")}},
		{ID: 1, DayNumber: 1,
			Room: &models.RoomSelection{RoomType: "Deluxe", Quantity: 1, UnitPrice: dec("3000"), Price: decPtr("3000")},
			Cab:  &models.CabSelection{Type: "Sedan", Route: "Airport - Hotel", Quantity: 1, UnitPrice: dec("2000"), Price: decPtr("2000")},
		},
		{ID: 3, DayNumber: 3, Room: &models.RoomSelection{RoomType: "Suite"}, Cab: &models.CabSelection{Type: "SUV"}},
		{ID: 4, DayNumber: 4},
	}
}

func TestCollectCostLines(t *testing.T) {
	got := CollectCostLines(sampleDays())
	assert.True(t, got.AccommodationTotal.Equal(dec("5000")))
	assert.True(t, got.TransportTotal.Equal(dec("2000")))
	require.Len(t, got.Lines, 3)
	assert.Equal(t, 1, got.Lines[0].DayNumber)
	assert.Equal(t, models.CostAccommodation, got.Lines[0].Kind)
	assert.Equal(t, models.CostTransport, got.Lines[1].Kind)
	assert.Equal(t, 2, got.Lines[2].DayNumber)
}

func TestCollectCostLinesEmpty(t *testing.T) {
	got := CollectCostLines(nil)
	assert.True(t, got.AccommodationTotal.IsZero())
	assert.True(t, got.TransportTotal.IsZero())
	assert.Empty(t, got.Lines)
}

func TestCollectCostLinesKeepsPrecision(t *testing.T) {
	days := []models.Day{
		{DayNumber: 1, Room: &models.RoomSelection{RoomType: "A", Price: decPtr("0.1")}},
		{DayNumber: 2, Room: &models.RoomSelection{RoomType: "B", Price: decPtr("0.2")}},
	}
	assert.Equal(t, "0.3", CollectCostLines(days).AccommodationTotal.String())
}

func TestSummarizeScenario(t *testing.T) {
	agg := PricingAggregator{Settings: models.AgencySettings{CurrencySymbol: "Rs."}}
	opts := models.PricingOptions{
		TaxPercentage:      dec("10"),
		AgentCharges:       dec("500"),
		AdditionalServices: []models.AdditionalService{{Name: "Guide", Price: dec("1000")}},
		ShowPerPersonPrice: true,
	}

	sum := agg.Summarize(sampleDays(), opts, 2)

	assert.Equal(t, "8000", sum.Subtotal.String())
	assert.Equal(t, "800", sum.Tax.String())
	assert.Equal(t, "9300", sum.Total.String())
	require.NotNil(t, sum.PerPersonTotal)
	assert.Equal(t, "4650", sum.PerPersonTotal.String())
	assert.Equal(t, "Rs.", sum.Currency)

	assert.True(t, sum.Total.Equal(sum.Subtotal.Add(sum.AgentCharges).Add(sum.Tax)))
	assert.True(t, sum.Tax.Equal(sum.Subtotal.Mul(sum.TaxPercentage).Div(dec("100"))))
}

func TestSummarizeHiddenButIncluded(t *testing.T) {
	opts := models.PricingOptions{TaxPercentage: dec("5"), AgentCharges: dec("250")}
	sum := PricingAggregator{}.Summarize(sampleDays(), opts, 0)

	keys := func(lines []models.SummaryLine) []string {
		out := []string{}
		for _, l := range lines {
			out = append(out, l.Key)
		}
		return out
	}
	internal := keys(sum.VisibleLines(models.AudienceInternal))
	customer := keys(sum.VisibleLines(models.AudienceCustomer))

	assert.Contains(t, internal, "subtotal")
	assert.Contains(t, internal, "agent_charges")
	assert.NotContains(t, customer, "subtotal")
	assert.NotContains(t, customer, "agent_charges")
	assert.Contains(t, customer, "total")

	// agent charges still flow into the total the customer sees
	assert.Equal(t, "7600", sum.Total.String())
}

func TestSummarizePerPersonZeroTravelers(t *testing.T) {
	opts := models.PricingOptions{ShowPerPersonPrice: true}
	sum := PricingAggregator{}.Summarize(sampleDays(), opts, 0)
	require.NotNil(t, sum.PerPersonTotal)
	assert.True(t, sum.PerPersonTotal.Equal(sum.Total))
}

func TestSummarizePerPersonOff(t *testing.T) {
	sum := PricingAggregator{}.Summarize(sampleDays(), models.DefaultPricingOptions(), 3)
	assert.Nil(t, sum.PerPersonTotal)
	assert.Equal(t, "7000", sum.Total.String())
	assert.True(t, sum.Tax.IsZero())
}

func TestPerPersonRoundsAtDivision(t *testing.T) {
	assert.Equal(t, "3333", PerPerson(dec("10000"), 3).String())
	assert.Equal(t, "3334", PerPerson(dec("10001.5"), 3).String())
	assert.Equal(t, "10000", PerPerson(dec("10000"), -1).String())
}

func TestSummarizeIsIdempotent(t *testing.T) {
	opts := models.PricingOptions{TaxPercentage: dec("18"), AgentCharges: dec("99.99"), ShowPerPersonPrice: true}
	a := PricingAggregator{}.Summarize(sampleDays(), opts, 3)
	b := PricingAggregator{}.Summarize(sampleDays(), opts, 3)
	assert.Equal(t, a.Total.String(), b.Total.String())
	assert.Equal(t, a.PerPersonTotal.String(), b.PerPersonTotal.String())
}
