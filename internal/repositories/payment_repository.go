package repositories

import (
	"context"
	"database/sql"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentSelect = `
		SELECT p.id,
		       p.booking_id,
		       p.amount,
		       p.status,
		       COALESCE(p.method,''),
		       p.payment_date,
		       COALESCE(p.payment_type,''),
		       COALESCE(p.reference,''),
		       COALESCE(p.notes,''),
		       COALESCE(c.name,''),
		       COALESCE(i.name,''),
		       COALESCE(b.total_amount,0)
		FROM payments p
		LEFT JOIN bookings b ON b.id = p.booking_id
		LEFT JOIN customers c ON c.id = b.customer_id
		LEFT JOIN itineraries i ON i.id = b.itinerary_id`

func scanPayment(s rowScanner) (models.Payment, error) {
	var (
		p      models.Payment
		status string
		ptype  string
	)
	if err := s.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&status,
		&p.Method,
		&p.Date,
		&ptype,
		&p.Reference,
		&p.Notes,
		&p.CustomerName,
		&p.ItineraryName,
		&p.BookingTotal,
	); err != nil {
		return models.Payment{}, err
	}
	p.Status = models.PaymentStatus(status)
	p.Type = models.PaymentType(ptype)
	return p, nil
}

func (r PaymentRepository) list(ctx context.Context, where []string, args []any, order string) ([]models.Payment, error) {
	rows, err := r.db().QueryContext(ctx, paymentSelect+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY `+order, args...)
	if err != nil {
		return nil, storeErr("fetch payments", "payment", err)
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return out, storeErr("scan payment", "payment", err)
		}
		out = append(out, p)
	}
	return out, storeErr("fetch payments", "payment", rows.Err())
}

// FetchPayments returns payments matching the predicates the database can
// evaluate, newest first.
func (r PaymentRepository) FetchPayments(ctx context.Context, f models.PaymentFilter) ([]models.Payment, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "p.status=?")
		args = append(args, string(f.Status))
	}
	if f.Method != "" {
		where = append(where, "p.method=?")
		args = append(args, f.Method)
	}
	if f.BookingID > 0 {
		where = append(where, "p.booking_id=?")
		args = append(args, f.BookingID)
	}
	if f.DateFrom != nil {
		where = append(where, "p.payment_date>=?")
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		where = append(where, "p.payment_date<?")
		args = append(args, endOfDayExclusive(*f.DateTo))
	}
	return r.list(ctx, where, args, "p.payment_date DESC, p.id DESC")
}

// CountPayments is the unfiltered payment count.
func (r PaymentRepository) CountPayments(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&n)
	return n, storeErr("count payments", "payment", err)
}

// ListPaymentsByBookings groups every payment of the given bookings by
// booking id, oldest first.
func (r PaymentRepository) ListPaymentsByBookings(ctx context.Context, bookingIDs []int64) (map[int64][]models.Payment, error) {
	out := map[int64][]models.Payment{}
	if len(bookingIDs) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		args = append(args, id)
	}
	list, err := r.list(ctx, []string{"p.booking_id IN (" + placeholders(len(bookingIDs)) + ")"}, args, "p.payment_date ASC, p.id ASC")
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.BookingID] = append(out[p.BookingID], p)
	}
	return out, nil
}

func (r PaymentRepository) GetPayment(ctx context.Context, id int64) (models.Payment, error) {
	p, err := scanPayment(r.db().QueryRowContext(ctx, paymentSelect+` WHERE p.id=? LIMIT 1`, id))
	if err != nil {
		return models.Payment{}, storeErr("get payment", "payment", err)
	}
	return p, nil
}

func (r PaymentRepository) InsertPayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO payments (booking_id, amount, status, method, payment_date, payment_type, reference, notes)
		VALUES (?,?,?,?,?,?,?,?)`,
		p.BookingID, p.Amount.String(), string(p.Status), p.Method, p.Date,
		intdb.NullIfEmpty(string(p.Type)), intdb.NullIfEmpty(p.Reference), intdb.NullIfEmpty(p.Notes),
	)
	if err != nil {
		return models.Payment{}, storeErr("insert payment", "payment", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, storeErr("insert payment", "payment", err)
	}
	p.ID = id
	return p, nil
}

// UpdatePayment overwrites the row in place; last write wins.
func (r PaymentRepository) UpdatePayment(ctx context.Context, p models.Payment) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE payments SET amount=?, status=?, method=?, payment_date=?, payment_type=?, reference=?, notes=?
		WHERE id=?`,
		p.Amount.String(), string(p.Status), p.Method, p.Date,
		intdb.NullIfEmpty(string(p.Type)), intdb.NullIfEmpty(p.Reference), intdb.NullIfEmpty(p.Notes),
		p.ID,
	)
	if err != nil {
		return storeErr("update payment", "payment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// DeletePayment removes a payment. The booking is left untouched even when
// this was its last payment.
func (r PaymentRepository) DeletePayment(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM payments WHERE id=?`, id)
	if err != nil {
		return storeErr("delete payment", "payment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}
