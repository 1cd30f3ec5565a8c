package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a single payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

// PaymentType is optional; empty means unset.
type PaymentType string

const (
	PaymentFull    PaymentType = "Full"
	PaymentPartial PaymentType = "Partial"
)

// Payment belongs to one booking. CustomerName and ItineraryName are
// denormalized from the booking for list search.
type Payment struct {
	ID            int64           `json:"id"`
	BookingID     int64           `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
	Method        string          `json:"method"`
	Date          time.Time       `json:"date"`
	Type          PaymentType     `json:"type,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	ItineraryName string          `json:"itinerary_name,omitempty"`
	BookingTotal  decimal.Decimal `json:"booking_total"`
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
