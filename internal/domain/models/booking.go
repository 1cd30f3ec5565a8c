package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the operational state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingInProgress BookingStatus = "In Progress"
	BookingCompleted  BookingStatus = "Completed"
	BookingCancelled  BookingStatus = "Cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}

// Booking ties a customer to an itinerary. Customer and itinerary names are
// denormalized from joins for search and display.
type Booking struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	ItineraryID   int64           `json:"itinerary_id"`
	ItineraryName string          `json:"itinerary_name"`
	Destination   string          `json:"destination,omitempty"`
	TravelDate    *time.Time      `json:"travel_date,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        BookingStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Reference is the human readable booking code printed on documents.
func (b Booking) Reference() string {
	return "BK-" + b.CreatedAt.Format("060102") + "-" + itoa(b.ID)
}
