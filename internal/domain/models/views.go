package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostKind separates accommodation from transport cost lines.
type CostKind string

const (
	CostAccommodation CostKind = "accommodation"
	CostTransport     CostKind = "transport"
)

// CostLine is one priced item attached to a day.
type CostLine struct {
	DayNumber int             `json:"day_number"`
	Kind      CostKind        `json:"kind"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
}

// CostLines is the flat result of walking an itinerary's days.
type CostLines struct {
	Lines              []CostLine      `json:"lines"`
	AccommodationTotal decimal.Decimal `json:"accommodation_total"`
	TransportTotal     decimal.Decimal `json:"transport_total"`
}

// Audience selects which summary lines a rendering may show.
type Audience string

const (
	AudienceInternal Audience = "internal"
	AudienceCustomer Audience = "customer"
)

// SummaryLine is one row of a pricing summary. InternalOnly rows are part
// of the arithmetic but must be withheld from customer renderings.
type SummaryLine struct {
	Key          string          `json:"key"`
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	InternalOnly bool            `json:"internal_only"`
}

// PricingSummary is the fully computed price of an itinerary.
type PricingSummary struct {
	Currency                string              `json:"currency"`
	CostLines               []CostLine          `json:"cost_lines"`
	AccommodationTotal      decimal.Decimal     `json:"accommodation_total"`
	TransportTotal          decimal.Decimal     `json:"transport_total"`
	AdditionalServices      []AdditionalService `json:"additional_services"`
	AdditionalServicesTotal decimal.Decimal     `json:"additional_services_total"`
	Subtotal                decimal.Decimal     `json:"subtotal"`
	TaxPercentage           decimal.Decimal     `json:"tax_percentage"`
	Tax                     decimal.Decimal     `json:"tax"`
	AgentCharges            decimal.Decimal     `json:"agent_charges"`
	Total                   decimal.Decimal     `json:"total"`
	ShowPerPerson           bool                `json:"show_per_person"`
	TravelerCount           int                 `json:"traveler_count"`
	PerPersonTotal          *decimal.Decimal    `json:"per_person_total,omitempty"`
	Lines                   []SummaryLine       `json:"lines"`
}

// VisibleLines returns the summary lines the audience may see.
func (s PricingSummary) VisibleLines(a Audience) []SummaryLine {
	out := make([]SummaryLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.InternalOnly && a != AudienceInternal {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ItineraryView is handed to renderers and the UI as is.
type ItineraryView struct {
	Itinerary      Itinerary      `json:"itinerary"`
	Days           []Day          `json:"days"`
	Activities     []Activity     `json:"activities"`
	PricingSummary PricingSummary `json:"pricing_summary"`
}

// ActivitiesForDay filters the view's activities to one day, keeping order.
func (v ItineraryView) ActivitiesForDay(dayID int64) []Activity {
	out := []Activity{}
	for _, a := range v.Activities {
		if a.DayID == dayID {
			out = append(out, a)
		}
	}
	return out
}

// LedgerStatus classifies how much of a booking has been paid.
type LedgerStatus string

const (
	LedgerPaid    LedgerStatus = "Paid"
	LedgerPartial LedgerStatus = "Partial"
	LedgerUnpaid  LedgerStatus = "Unpaid"
)

// PaymentLedger is derived from a booking's payments and never stored.
type PaymentLedger struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Percentage     int64           `json:"percentage"`
	Status         LedgerStatus    `json:"status"`
	Remaining      decimal.Decimal `json:"remaining"`
	Excess         decimal.Decimal `json:"excess"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	CompletedCount int             `json:"completed_count"`
}

// BookingLedgerView is handed to renderers and the UI as is.
type BookingLedgerView struct {
	Booking     Booking       `json:"booking"`
	Payments    []Payment     `json:"payments"`
	Ledger      PaymentLedger `json:"ledger"`
	GeneratedAt time.Time     `json:"generated_at"`
}
