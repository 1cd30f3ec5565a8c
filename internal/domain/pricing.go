package domain

import (
	"fmt"

	"backoffice/internal/domain/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CollectCostLines walks days in day-number order and sums room and cab
// line prices. Missing prices contribute zero. Nothing is rounded here.
func CollectCostLines(days []models.Day) models.CostLines {
	sorted := append([]models.Day(nil), days...)
	SortDays(sorted)

	out := models.CostLines{
		Lines:              []models.CostLine{},
		AccommodationTotal: decimal.Zero,
		TransportTotal:     decimal.Zero,
	}
	for _, d := range sorted {
		if d.Room != nil && d.Room.Price != nil {
			out.AccommodationTotal = out.AccommodationTotal.Add(*d.Room.Price)
			out.Lines = append(out.Lines, models.CostLine{
				DayNumber: d.DayNumber,
				Kind:      models.CostAccommodation,
				Label:     fmt.Sprintf("Day %d: %s", d.DayNumber, d.RoomLabel()),
				Amount:    *d.Room.Price,
			})
		}
		if d.Cab != nil && d.Cab.Price != nil {
			out.TransportTotal = out.TransportTotal.Add(*d.Cab.Price)
			out.Lines = append(out.Lines, models.CostLine{
				DayNumber: d.DayNumber,
				Kind:      models.CostTransport,
				Label:     fmt.Sprintf("Day %d: %s", d.DayNumber, d.CabLabel()),
				Amount:    *d.Cab.Price,
			})
		}
	}
	return out
}

// PricingAggregator turns cost lines and pricing options into a summary.
// Settings are injected so callers decide where they come from.
type PricingAggregator struct {
	Settings models.AgencySettings
}

// Summarize computes
//
//	subtotal = accommodation + transport + additional services
//	tax      = subtotal * taxPercentage / 100
//	total    = subtotal + agentCharges + tax
//
// and, when per-person pricing is on, total/travelers rounded to a whole
// unit. Subtotal and agent charges stay in the output tagged internal-only.
func (a PricingAggregator) Summarize(days []models.Day, opts models.PricingOptions, travelerCount int) models.PricingSummary {
	costs := CollectCostLines(days)

	services := append([]models.AdditionalService{}, opts.AdditionalServices...)
	servicesTotal := decimal.Zero
	for _, s := range services {
		servicesTotal = servicesTotal.Add(s.Price)
	}

	subtotal := costs.AccommodationTotal.Add(costs.TransportTotal).Add(servicesTotal)
	tax := subtotal.Mul(opts.TaxPercentage).Div(hundred)
	total := subtotal.Add(opts.AgentCharges).Add(tax)

	sum := models.PricingSummary{
		Currency:                a.Settings.CurrencySymbol,
		CostLines:               costs.Lines,
		AccommodationTotal:      costs.AccommodationTotal,
		TransportTotal:          costs.TransportTotal,
		AdditionalServices:      services,
		AdditionalServicesTotal: servicesTotal,
		Subtotal:                subtotal,
		TaxPercentage:           opts.TaxPercentage,
		Tax:                     tax,
		AgentCharges:            opts.AgentCharges,
		Total:                   total,
		ShowPerPerson:           opts.ShowPerPersonPrice,
		TravelerCount:           travelerCount,
	}
	if opts.ShowPerPersonPrice {
		pp := PerPerson(total, travelerCount)
		sum.PerPersonTotal = &pp
	}

	sum.Lines = []models.SummaryLine{
		{Key: "accommodation", Label: "Accommodation", Amount: sum.AccommodationTotal},
		{Key: "transport", Label: "Transport", Amount: sum.TransportTotal},
		{Key: "additional_services", Label: "Additional services", Amount: sum.AdditionalServicesTotal},
		{Key: "subtotal", Label: "Subtotal", Amount: sum.Subtotal, InternalOnly: true},
		{Key: "agent_charges", Label: "Agent charges", Amount: sum.AgentCharges, InternalOnly: true},
		{Key: "tax", Label: fmt.Sprintf("Tax (%s%%)", sum.TaxPercentage.String()), Amount: sum.Tax},
		{Key: "total", Label: "Total", Amount: sum.Total},
	}
	if sum.PerPersonTotal != nil {
		sum.Lines = append(sum.Lines, models.SummaryLine{
			Key:    "per_person_total",
			Label:  fmt.Sprintf("Per person (%d travelers)", travelerCount),
			Amount: *sum.PerPersonTotal,
		})
	}
	return sum
}

// PerPerson divides total by travelers and rounds to a whole unit. With no
// travelers it returns total undivided.
func PerPerson(total decimal.Decimal, travelers int) decimal.Decimal {
	if travelers <= 0 {
		return total
	}
	return total.Div(decimal.NewFromInt(int64(travelers))).Round(0)
}
