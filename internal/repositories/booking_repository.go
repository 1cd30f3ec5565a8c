package repositories

import (
	"context"
	"database/sql"
	"strings"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingSelect = `
		SELECT b.id,
		       b.customer_id,
		       COALESCE(c.name,''),
		       COALESCE(c.email,''),
		       COALESCE(c.phone,''),
		       b.itinerary_id,
		       COALESCE(i.name,''),
		       COALESCE(i.destination,''),
		       i.start_date,
		       b.total_amount,
		       b.status,
		       b.created_at
		FROM bookings b
		LEFT JOIN customers c ON c.id = b.customer_id
		LEFT JOIN itineraries i ON i.id = b.itinerary_id`

func scanBooking(s rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		travel sql.NullTime
		status string
	)
	if err := s.Scan(
		&b.ID,
		&b.CustomerID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.ItineraryID,
		&b.ItineraryName,
		&b.Destination,
		&travel,
		&b.TotalAmount,
		&status,
		&b.CreatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.TravelDate = nullTimePtr(travel)
	b.Status = models.BookingStatus(status)
	return b, nil
}

// FetchBookings returns bookings matching the predicates the database can
// evaluate, newest first.
func (r BookingRepository) FetchBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "b.status=?")
		args = append(args, string(f.Status))
	}
	if f.CreatedFrom != nil {
		where = append(where, "b.created_at>=?")
		args = append(args, *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		where = append(where, "b.created_at<?")
		args = append(args, endOfDayExclusive(*f.CreatedTo))
	}

	rows, err := r.db().QueryContext(ctx, bookingSelect+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY b.created_at DESC, b.id DESC`, args...)
	if err != nil {
		return nil, storeErr("fetch bookings", "booking", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, storeErr("scan booking", "booking", err)
		}
		out = append(out, b)
	}
	return out, storeErr("fetch bookings", "booking", rows.Err())
}

// CountBookings is the unfiltered booking count.
func (r BookingRepository) CountBookings(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, storeErr("count bookings", "booking", err)
}

func (r BookingRepository) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRowContext(ctx, bookingSelect+` WHERE b.id=? LIMIT 1`, id))
	if err != nil {
		return models.Booking{}, storeErr("get booking", "booking", err)
	}
	return b, nil
}
