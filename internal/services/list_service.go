package services

import (
	"context"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// ListService runs the booking and payment lists through the list query
// pipeline.
type ListService struct {
	Bookings        BookingStore
	Payments        PaymentStore
	DefaultPageSize int
}

// BookingQuery splits into predicates the store evaluates (status, created
// range) and predicates applied after derivation.
type BookingQuery struct {
	Status        models.BookingStatus
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Search        string
	PaymentStatus models.LedgerStatus
	TravelFrom    *time.Time
	TravelTo      *time.Time
	Page          domain.Pagination
}

// BookingRow is a booking with its derived ledger.
type BookingRow struct {
	models.Booking
	Ledger models.PaymentLedger `json:"ledger"`
}

type PaymentQuery struct {
	Status        models.PaymentStatus
	Method        string
	BookingID     int64
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	BookingStatus models.LedgerStatus
	Page          domain.Pagination
}

// PaymentRow is a payment with the ledger of the booking it belongs to.
type PaymentRow struct {
	models.Payment
	BookingLedger models.PaymentLedger `json:"booking_ledger"`
}

func (s ListService) pagination(p domain.Pagination) domain.Pagination {
	return p.Normalize(s.DefaultPageSize)
}

// ListBookings fetches, derives ledgers, filters and paginates bookings.
func (s ListService) ListBookings(ctx context.Context, q BookingQuery) (domain.Page[BookingRow], error) {
	bookings := bookingStoreOr(s.Bookings)
	payments := paymentStoreOr(s.Payments)

	pipeline := domain.ListQuery[models.Booking, BookingRow]{
		Fetch: func(ctx context.Context) ([]models.Booking, int, error) {
			rows, err := bookings.FetchBookings(ctx, models.BookingFilter{
				Status:      q.Status,
				CreatedFrom: q.CreatedFrom,
				CreatedTo:   q.CreatedTo,
			})
			if err != nil {
				return nil, 0, err
			}
			total, err := bookings.CountBookings(ctx)
			return rows, total, err
		},
		Derive: func(ctx context.Context, rows []models.Booking) ([]BookingRow, error) {
			ids := make([]int64, 0, len(rows))
			for _, b := range rows {
				ids = append(ids, b.ID)
			}
			grouped, err := payments.ListPaymentsByBookings(ctx, ids)
			if err != nil {
				return nil, err
			}
			out := make([]BookingRow, 0, len(rows))
			for _, b := range rows {
				out = append(out, BookingRow{Booking: b, Ledger: domain.Reconcile(b.TotalAmount, grouped[b.ID])})
			}
			return out, nil
		},
		Filters: []func(BookingRow) bool{
			func(r BookingRow) bool {
				return domain.MatchesText(q.Search, r.CustomerName, r.CustomerEmail, r.ItineraryName, r.Destination, r.Reference())
			},
			func(r BookingRow) bool {
				return q.PaymentStatus == "" || r.Ledger.Status == q.PaymentStatus
			},
			func(r BookingRow) bool {
				if q.TravelFrom == nil && q.TravelTo == nil {
					return true
				}
				return r.TravelDate != nil && domain.WithinDateRange(*r.TravelDate, q.TravelFrom, q.TravelTo)
			},
		},
	}
	return pipeline.Run(ctx, s.pagination(q.Page))
}

// ListPayments fetches, derives booking ledgers, filters and paginates
// payments.
func (s ListService) ListPayments(ctx context.Context, q PaymentQuery) (domain.Page[PaymentRow], error) {
	payments := paymentStoreOr(s.Payments)

	pipeline := domain.ListQuery[models.Payment, PaymentRow]{
		Fetch: func(ctx context.Context) ([]models.Payment, int, error) {
			rows, err := payments.FetchPayments(ctx, models.PaymentFilter{
				Status:    q.Status,
				Method:    q.Method,
				BookingID: q.BookingID,
				DateFrom:  q.DateFrom,
				DateTo:    q.DateTo,
			})
			if err != nil {
				return nil, 0, err
			}
			total, err := payments.CountPayments(ctx)
			return rows, total, err
		},
		Derive: func(ctx context.Context, rows []models.Payment) ([]PaymentRow, error) {
			seen := map[int64]bool{}
			ids := []int64{}
			for _, p := range rows {
				if !seen[p.BookingID] {
					seen[p.BookingID] = true
					ids = append(ids, p.BookingID)
				}
			}
			grouped, err := payments.ListPaymentsByBookings(ctx, ids)
			if err != nil {
				return nil, err
			}
			ledgers := make(map[int64]models.PaymentLedger, len(ids))
			out := make([]PaymentRow, 0, len(rows))
			for _, p := range rows {
				l, ok := ledgers[p.BookingID]
				if !ok {
					l = domain.Reconcile(p.BookingTotal, grouped[p.BookingID])
					ledgers[p.BookingID] = l
				}
				out = append(out, PaymentRow{Payment: p, BookingLedger: l})
			}
			return out, nil
		},
		Filters: []func(PaymentRow) bool{
			func(r PaymentRow) bool {
				return domain.MatchesText(q.Search, r.CustomerName, r.ItineraryName, r.Method, r.Reference)
			},
			func(r PaymentRow) bool {
				return q.BookingStatus == "" || r.BookingLedger.Status == q.BookingStatus
			},
		},
	}
	return pipeline.Run(ctx, s.pagination(q.Page))
}
