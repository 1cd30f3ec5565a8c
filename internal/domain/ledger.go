package domain

import (
	"sort"

	"backoffice/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Reconcile derives a booking's ledger from its payments. Only Completed
// payments count as paid. It is a pure function and never errors; use
// ReconcileBooking where the booking total must be validated.
func Reconcile(total decimal.Decimal, payments []models.Payment) models.PaymentLedger {
	paid := decimal.Zero
	pending := decimal.Zero
	completed := 0
	for _, p := range payments {
		switch p.Status {
		case models.PaymentCompleted:
			paid = paid.Add(p.Amount)
			completed++
		case models.PaymentPending:
			pending = pending.Add(p.Amount)
		}
	}

	var pct int64
	if total.IsPositive() {
		pct = paid.Mul(hundred).Div(total).Round(0).IntPart()
	}

	status := models.LedgerUnpaid
	switch {
	case pct >= 100:
		status = models.LedgerPaid
	case pct > 0:
		status = models.LedgerPartial
	}

	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	excess := decimal.Zero
	if total.IsPositive() && paid.GreaterThan(total) {
		excess = paid.Sub(total)
	}

	return models.PaymentLedger{
		TotalAmount:    total,
		TotalPaid:      paid,
		Percentage:     pct,
		Status:         status,
		Remaining:      remaining,
		Excess:         excess,
		PendingAmount:  pending,
		CompletedCount: completed,
	}
}

// ReconcileBooking validates the booking total before reconciling.
func ReconcileBooking(b models.Booking, payments []models.Payment) (models.PaymentLedger, error) {
	if b.TotalAmount.IsNegative() {
		return models.PaymentLedger{}, ValidationError{Field: "total_amount", Msg: "must not be negative"}
	}
	return Reconcile(b.TotalAmount, payments), nil
}

// SortPayments orders payment history by date, then id, so the history
// reads the same on every render.
func SortPayments(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].Date.Equal(payments[j].Date) {
			return payments[i].Date.Before(payments[j].Date)
		}
		return payments[i].ID < payments[j].ID
	})
}
