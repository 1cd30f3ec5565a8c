package services

import (
	"context"
	"time"

	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
)

// ItineraryStore is the slice of the record store the day sequencer needs.
type ItineraryStore interface {
	GetItinerary(ctx context.Context, id int64) (models.Itinerary, error)
	FetchDays(ctx context.Context, itineraryID int64) ([]models.Day, error)
	GetDay(ctx context.Context, dayID int64) (models.Day, error)
	InsertDay(ctx context.Context, itineraryID int64, dayNumber int, date *time.Time) (models.Day, error)
	DeleteDay(ctx context.Context, itineraryID, dayID int64) error
	UpdateDayDate(ctx context.Context, dayID int64, date *time.Time) error
	UpdateDay(ctx context.Context, d models.Day) error
}

type ActivityStore interface {
	FetchActivities(ctx context.Context, itineraryID int64) ([]models.Activity, error)
	FetchDayActivities(ctx context.Context, dayID int64) ([]models.Activity, error)
	GetActivity(ctx context.Context, id int64) (models.Activity, error)
	InsertActivity(ctx context.Context, a models.Activity) (models.Activity, error)
	UpdateActivity(ctx context.Context, a models.Activity) error
	DeleteActivity(ctx context.Context, id int64) error
	SwapSortOrder(ctx context.Context, a, b models.Activity) error
}

type PricingOptionsStore interface {
	GetPricingOptions(ctx context.Context, itineraryID int64) (models.PricingOptions, bool, error)
	SavePricingOptions(ctx context.Context, itineraryID int64, opts models.PricingOptions) error
}

type SettingsStore interface {
	GetAgencySettings(ctx context.Context) (models.AgencySettings, error)
}

type BookingStore interface {
	FetchBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	CountBookings(ctx context.Context) (int, error)
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
}

type PaymentStore interface {
	FetchPayments(ctx context.Context, f models.PaymentFilter) ([]models.Payment, error)
	CountPayments(ctx context.Context) (int, error)
	ListPaymentsByBookings(ctx context.Context, bookingIDs []int64) (map[int64][]models.Payment, error)
	GetPayment(ctx context.Context, id int64) (models.Payment, error)
	InsertPayment(ctx context.Context, p models.Payment) (models.Payment, error)
	UpdatePayment(ctx context.Context, p models.Payment) error
	DeletePayment(ctx context.Context, id int64) error
}

// The fallbacks below use the shared connection from internal/config.

func itineraryStoreOr(s ItineraryStore) ItineraryStore {
	if s != nil {
		return s
	}
	return repositories.ItineraryRepository{}
}

func activityStoreOr(s ActivityStore) ActivityStore {
	if s != nil {
		return s
	}
	return repositories.ActivityRepository{}
}

func pricingOptionsStoreOr(s PricingOptionsStore) PricingOptionsStore {
	if s != nil {
		return s
	}
	return repositories.PricingOptionsRepository{}
}

func bookingStoreOr(s BookingStore) BookingStore {
	if s != nil {
		return s
	}
	return repositories.BookingRepository{}
}

func paymentStoreOr(s PaymentStore) PaymentStore {
	if s != nil {
		return s
	}
	return repositories.PaymentRepository{}
}
