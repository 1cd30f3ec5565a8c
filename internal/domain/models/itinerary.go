package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransferMode tells how much ground transport the package covers.
type TransferMode string

const (
	TransferNone    TransferMode = "none"
	TransferPartial TransferMode = "partial"
	TransferFull    TransferMode = "full"
)

// Valid reports whether m is one of the known modes.
func (m TransferMode) Valid() bool {
	switch m {
	case TransferNone, TransferPartial, TransferFull:
		return true
	default:
		return false
	}
}

// Itinerary is a trip plan. Duration is advisory: the real day count is
// len(Days), and the two may diverge while the operator edits.
type Itinerary struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Destination  string           `json:"destination"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	Duration     int              `json:"duration"`
	TransferMode TransferMode     `json:"transfer_mode"`
	Budget       *decimal.Decimal `json:"budget,omitempty"`
	Adults       int              `json:"adults"`
	Children     int              `json:"children"`
	CustomerName string           `json:"customer_name,omitempty"`
	Days         []Day            `json:"days,omitempty"`
}

// TravelerCount is the head count used for per-person splits.
func (it Itinerary) TravelerCount() int {
	n := it.Adults + it.Children
	if n < 0 {
		return 0
	}
	return n
}

// HotelRef is the joined hotel row of a day. Nil means "not set".
type HotelRef struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location,omitempty"`
	StarRating int    `json:"star_rating,omitempty"`
}

// RoomSelection is the accommodation cost line of a day.
type RoomSelection struct {
	RoomType  string           `json:"room_type"`
	MealPlan  string           `json:"meal_plan,omitempty"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// CabSelection is the transport cost line of a day.
type CabSelection struct {
	Type        string           `json:"type"`
	Route       string           `json:"route,omitempty"`
	Description string           `json:"description,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// LinePrice computes quantity x unit price for a cost line.
func LinePrice(quantity int, unit decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// Day belongs to one itinerary. DayNumber is unique within the itinerary
// but may have gaps after deletions. Every pointer field is optional and
// nil means the value has not been set.
type Day struct {
	ID          int64          `json:"id"`
	ItineraryID int64          `json:"itinerary_id"`
	DayNumber   int            `json:"day_number"`
	Date        *time.Time     `json:"date,omitempty"`
	Hotel       *HotelRef      `json:"hotel,omitempty"`
	Room        *RoomSelection `json:"room,omitempty"`
	Cab         *CabSelection  `json:"cab,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

const unsetLabel = "Not set"

// DateLabel renders the day's date or the unset fallback.
func (d Day) DateLabel() string {
	if d.Date == nil {
		return "Date not set"
	}
	return d.Date.Format("Mon, 02 Jan 2006")
}

// HotelLabel renders the hotel or the unset fallback.
func (d Day) HotelLabel() string {
	if d.Hotel == nil || strings.TrimSpace(d.Hotel.Name) == "" {
		return unsetLabel
	}
	if d.Hotel.Location != "" {
		return d.Hotel.Name + ", " + d.Hotel.Location
	}
	return d.Hotel.Name
}

// RoomLabel renders the room selection or the unset fallback.
func (d Day) RoomLabel() string {
	if d.Room == nil || strings.TrimSpace(d.Room.RoomType) == "" {
		return unsetLabel
	}
	label := fmt.Sprintf("%d x %s", max(d.Room.Quantity, 1), d.Room.RoomType)
	if d.Room.MealPlan != "" {
		label += " (" + d.Room.MealPlan + ")"
	}
	return label
}

// CabLabel renders the transport selection or the unset fallback.
func (d Day) CabLabel() string {
	if d.Cab == nil || strings.TrimSpace(d.Cab.Type) == "" {
		return unsetLabel
	}
	label := fmt.Sprintf("%d x %s", max(d.Cab.Quantity, 1), d.Cab.Type)
	if d.Cab.Route != "" {
		label += " - " + d.Cab.Route
	}
	return label
}
