package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/shopspring/decimal"
)

// LedgerService records payments and reconciles them against bookings.
type LedgerService struct {
	Bookings  BookingStore
	Payments  PaymentStore
	RequestID string
	Now       func() time.Time
}

// PaymentInput is the operator-editable part of a payment.
type PaymentInput struct {
	Amount    decimal.Decimal
	Status    models.PaymentStatus
	Method    string
	Date      *time.Time
	Type      models.PaymentType
	Reference string
	Notes     string
}

func (in PaymentInput) validate() error {
	if !in.Amount.IsPositive() {
		return domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	if in.Status != "" && !in.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "unknown payment status"}
	}
	if in.Type != "" && in.Type != models.PaymentFull && in.Type != models.PaymentPartial {
		return domain.ValidationError{Field: "type", Msg: "must be Full or Partial"}
	}
	if strings.TrimSpace(in.Method) == "" {
		return domain.ValidationError{Field: "method", Msg: "required"}
	}
	return nil
}

func (s LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// BookingLedger returns the booking, its payment history ordered by date
// and the ledger derived from that history.
func (s LedgerService) BookingLedger(ctx context.Context, bookingID int64) (models.BookingLedgerView, error) {
	b, err := bookingStoreOr(s.Bookings).GetBooking(ctx, bookingID)
	if err != nil {
		return models.BookingLedgerView{}, err
	}
	grouped, err := paymentStoreOr(s.Payments).ListPaymentsByBookings(ctx, []int64{bookingID})
	if err != nil {
		return models.BookingLedgerView{}, err
	}
	payments := grouped[bookingID]
	if payments == nil {
		payments = []models.Payment{}
	}
	domain.SortPayments(payments)

	ledger, err := domain.ReconcileBooking(b, payments)
	if err != nil {
		return models.BookingLedgerView{}, err
	}
	return models.BookingLedgerView{
		Booking:     b,
		Payments:    payments,
		Ledger:      ledger,
		GeneratedAt: s.now(),
	}, nil
}

// RecordPayment appends a payment to a booking. Status defaults to Pending.
func (s LedgerService) RecordPayment(ctx context.Context, bookingID int64, in PaymentInput) (models.Payment, error) {
	if err := in.validate(); err != nil {
		return models.Payment{}, err
	}
	b, err := bookingStoreOr(s.Bookings).GetBooking(ctx, bookingID)
	if err != nil {
		return models.Payment{}, err
	}

	p := models.Payment{
		BookingID:     bookingID,
		Amount:        in.Amount,
		Status:        in.Status,
		Method:        utils.TrimOrEmpty(in.Method),
		Date:          s.now(),
		Type:          in.Type,
		Reference:     utils.TrimOrEmpty(in.Reference),
		Notes:         in.Notes,
		CustomerName:  b.CustomerName,
		ItineraryName: b.ItineraryName,
		BookingTotal:  b.TotalAmount,
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if in.Date != nil {
		p.Date = *in.Date
	}

	out, err := paymentStoreOr(s.Payments).InsertPayment(ctx, p)
	if err != nil {
		utils.LogFailure(s.RequestID, "payments", "record_payment", err)
		return models.Payment{}, err
	}
	utils.LogEvent(s.RequestID, "payments", "record_payment",
		fmt.Sprintf("booking_id=%d payment_id=%d status=%s", bookingID, out.ID, out.Status))
	return out, nil
}

// UpdatePayment edits a payment in place; concurrent edits are last write
// wins.
func (s LedgerService) UpdatePayment(ctx context.Context, id int64, in PaymentInput) (models.Payment, error) {
	if err := in.validate(); err != nil {
		return models.Payment{}, err
	}
	store := paymentStoreOr(s.Payments)
	p, err := store.GetPayment(ctx, id)
	if err != nil {
		return models.Payment{}, err
	}

	prev := p.Status
	p.Amount = in.Amount
	if in.Status != "" {
		p.Status = in.Status
	}
	p.Method = utils.TrimOrEmpty(in.Method)
	if in.Date != nil {
		p.Date = *in.Date
	}
	p.Type = in.Type
	p.Reference = utils.TrimOrEmpty(in.Reference)
	p.Notes = in.Notes

	if err := store.UpdatePayment(ctx, p); err != nil {
		utils.LogFailure(s.RequestID, "payments", "update_payment", err)
		return models.Payment{}, err
	}
	utils.LogEvent(s.RequestID, "payments", "update_payment",
		fmt.Sprintf("payment_id=%d status=%s->%s", id, prev, p.Status))
	return p, nil
}

// DeletePayment removes one payment. The booking stays.
func (s LedgerService) DeletePayment(ctx context.Context, id int64) error {
	if err := paymentStoreOr(s.Payments).DeletePayment(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payments", "delete_payment", fmt.Sprintf("payment_id=%d", id))
	return nil
}
