package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	store := pricedFixture()
	d1 := store.days
	for id, day := range d1 {
		if day.DayNumber == 1 {
			store.seedActivity(models.Activity{DayID: id, Title: "Airport pickup", TimeStart: "09:00", IsTransfer: true})
		}
	}
	store.bookings[1] = models.Booking{
		ID: 1, CustomerName: "Asha Rao", ItineraryName: "Goa Escape",
		TotalAmount: d(9300), Status: models.BookingConfirmed,
		CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	store.seedPayment(models.Payment{BookingID: 1, Amount: d(5000), Status: models.PaymentCompleted, Method: "UPI", Date: day(16)})

	settings := NewFixedSettings(models.AgencySettings{CompanyName: "Sunrise Holidays", CurrencySymbol: "Rs.", Phone: "+91 99999 00000"})
	svc := DocsService{
		Pricing:  PricingService{Itineraries: store, Activities: store, Options: store},
		Ledger:   LedgerService{Bookings: store, Payments: store},
		Settings: settings,
	}

	for _, audience := range []models.Audience{models.AudienceCustomer, models.AudienceInternal} {
		pdf, filename, err := svc.ItineraryDocument(context.Background(), 1, audience)
		if err != nil {
			t.Fatalf("ItineraryDocument(%s) returned error: %v", audience, err)
		}
		if !bytes.HasPrefix(pdf, []byte("%PDF")) || filename == "" {
			t.Fatalf("ItineraryDocument(%s) returned no document", audience)
		}
	}

	statement, name, err := svc.LedgerStatement(context.Background(), 1)
	if err != nil {
		t.Fatalf("LedgerStatement returned error: %v", err)
	}
	if !bytes.HasPrefix(statement, []byte("%PDF")) || name != "STATEMENT_BK-260115-1_Asha_Rao.pdf" {
		t.Fatalf("unexpected statement %q (%d bytes)", name, len(statement))
	}
}

func TestDocsServiceUsesLoaders(t *testing.T) {
	called := 0
	svc := DocsService{
		ItineraryLoader: func(context.Context, int64) (models.ItineraryView, error) {
			called++
			return models.ItineraryView{Itinerary: models.Itinerary{ID: 3, Name: "Empty"}}, nil
		},
		LedgerLoader: func(context.Context, int64) (models.BookingLedgerView, error) {
			called++
			return models.BookingLedgerView{}, domain.NotFoundError{Resource: "booking"}
		},
	}

	if _, _, err := svc.ItineraryDocument(context.Background(), 3, models.AudienceCustomer); err != nil {
		t.Fatalf("empty itinerary should still render: %v", err)
	}
	if _, _, err := svc.LedgerStatement(context.Background(), 3); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if called != 2 {
		t.Fatalf("expected both loaders to run, got %d calls", called)
	}
}
