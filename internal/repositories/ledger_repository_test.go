package repositories

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingColumns = []string{
	"id", "customer_id", "customer_name", "customer_email", "customer_phone",
	"itinerary_id", "itinerary_name", "destination", "start_date",
	"total_amount", "status", "created_at",
}

var paymentColumns = []string{
	"id", "booking_id", "amount", "status", "method", "payment_date",
	"payment_type", "reference", "notes", "customer_name", "itinerary_name", "booking_total",
}

func TestFetchBookingsPushesStatusAndCreatedRange(t *testing.T) {
	db, mock := newMock(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`b\.status=\? AND b\.created_at>=\? AND b\.created_at<\?`).
		WithArgs("Confirmed", from, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(5, 2, "Asha Rao", "asha@example.com", "", 7, "Goa Escape", "Goa", nil, "10000", "Confirmed", created))

	list, err := BookingRepository{DB: db}.FetchBookings(context.Background(), models.BookingFilter{
		Status:      models.BookingConfirmed,
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		t.Fatalf("FetchBookings error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(list))
	}
	b := list[0]
	if b.CustomerName != "Asha Rao" || b.Status != models.BookingConfirmed || b.TotalAmount.String() != "10000" {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if b.TravelDate != nil {
		t.Fatalf("expected nil travel date, got %v", b.TravelDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountBookings(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(42))

	n, err := BookingRepository{DB: db}.CountBookings(context.Background())
	if err != nil || n != 42 {
		t.Fatalf("expected 42, got %d (%v)", n, err)
	}
}

func TestListPaymentsByBookingsGroupsRows(t *testing.T) {
	db, mock := newMock(t)
	d1 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`p\.booking_id IN \(\?,\?\)`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(paymentColumns).
			AddRow(10, 1, "3000", "Completed", "UPI", d1, "Partial", "", "", "Asha", "Goa", "10000").
			AddRow(11, 2, "500", "Pending", "Cash", d1, "", "", "", "Ravi", "Kerala", "900").
			AddRow(12, 1, "2000", "Completed", "Card", d2, "", "", "", "Asha", "Goa", "10000"))

	got, err := PaymentRepository{DB: db}.ListPaymentsByBookings(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("ListPaymentsByBookings error: %v", err)
	}
	if len(got[1]) != 2 || len(got[2]) != 1 {
		t.Fatalf("unexpected grouping: %+v", got)
	}
	if got[1][0].ID != 10 || got[1][1].ID != 12 {
		t.Fatalf("expected date order within booking, got %d then %d", got[1][0].ID, got[1][1].ID)
	}
	if got[1][0].Type != models.PaymentPartial || got[2][0].Type != "" {
		t.Fatalf("payment type not mapped")
	}
}

func TestListPaymentsByBookingsEmptyInputSkipsQuery(t *testing.T) {
	db, mock := newMock(t)
	got, err := PaymentRepository{DB: db}.ListPaymentsByBookings(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v (%v)", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestUpdatePaymentMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE payments SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := PaymentRepository{DB: db}.UpdatePayment(context.Background(), models.Payment{ID: 99, Status: models.PaymentCompleted})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInsertPaymentReturnsID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(77, 1))

	p, err := PaymentRepository{DB: db}.InsertPayment(context.Background(), models.Payment{
		BookingID: 1,
		Status:    models.PaymentPending,
		Method:    "UPI",
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("InsertPayment error: %v", err)
	}
	if p.ID != 77 {
		t.Fatalf("expected id 77, got %d", p.ID)
	}
}

func TestGetPricingOptionsWithoutRow(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM itinerary_pricing_options").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"options"}))

	_, found, err := PricingOptionsRepository{DB: db}.GetPricingOptions(context.Background(), 7)
	if err != nil || found {
		t.Fatalf("expected no row and no error, got found=%v err=%v", found, err)
	}
}

func TestGetPricingOptionsDecodesJSON(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM itinerary_pricing_options").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"options"}).
			AddRow([]byte(`{"taxPercentage":"10","agentCharges":"500","additionalServices":[{"name":"Guide","price":"1000"}],"showPerPersonPrice":true}`)))

	opts, found, err := PricingOptionsRepository{DB: db}.GetPricingOptions(context.Background(), 7)
	if err != nil || !found {
		t.Fatalf("expected row, got found=%v err=%v", found, err)
	}
	if opts.TaxPercentage.String() != "10" || opts.AgentCharges.String() != "500" || len(opts.AdditionalServices) != 1 || !opts.ShowPerPersonPrice {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestAgencySettingsFallBackToDefaults(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM agency_settings").
		WillReturnRows(sqlmock.NewRows([]string{"company_name", "currency_symbol", "address", "phone", "email", "footer_note"}))

	s, err := SettingsRepository{DB: db}.GetAgencySettings(context.Background())
	if err != nil {
		t.Fatalf("GetAgencySettings error: %v", err)
	}
	if s != models.DefaultAgencySettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestSwapSortOrderUsesParkingValue(t *testing.T) {
	db, mock := newMock(t)
	a := models.Activity{ID: 1, SortOrder: 0}
	b := models.Activity{ID: 2, SortOrder: 3}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE activities SET sort_order").WithArgs(-1, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE activities SET sort_order").WithArgs(0, int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE activities SET sort_order").WithArgs(3, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := (ActivityRepository{DB: db}).SwapSortOrder(context.Background(), a, b); err != nil {
		t.Fatalf("SwapSortOrder error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
