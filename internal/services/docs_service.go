package services

import (
	"bytes"
	"context"
	"fmt"

	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// DocsService renders itinerary and ledger PDFs. It lays out the views it
// is given and never recomputes prices or statuses.
type DocsService struct {
	Pricing   PricingService
	Ledger    LedgerService
	Settings  *SettingsCache
	RequestID string

	ItineraryLoader func(ctx context.Context, itineraryID int64) (models.ItineraryView, error)
	LedgerLoader    func(ctx context.Context, bookingID int64) (models.BookingLedgerView, error)
}

// ItineraryDocument renders the itinerary for the given audience. The
// customer copy withholds internal-only summary lines.
func (s DocsService) ItineraryDocument(ctx context.Context, itineraryID int64, audience models.Audience) ([]byte, string, error) {
	view, err := s.loadItinerary(ctx, itineraryID)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	if audience != models.AudienceInternal {
		audience = models.AudienceCustomer
	}
	utils.LogEvent(s.RequestID, "docs", "itinerary_document", fmt.Sprintf("itinerary_id=%d audience=%s", itineraryID, audience))
	return buildItineraryPDF(view, settings, audience)
}

// LedgerStatement renders a booking's payment statement.
func (s DocsService) LedgerStatement(ctx context.Context, bookingID int64) ([]byte, string, error) {
	view, err := s.loadLedger(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "ledger_statement", fmt.Sprintf("booking_id=%d", bookingID))
	return buildStatementPDF(view, settings)
}

func (s DocsService) loadItinerary(ctx context.Context, id int64) (models.ItineraryView, error) {
	if s.ItineraryLoader != nil {
		return s.ItineraryLoader(ctx, id)
	}
	p := s.Pricing
	if p.Settings == nil {
		p.Settings = s.Settings
	}
	p.RequestID = s.RequestID
	return p.ItineraryView(ctx, id)
}

func (s DocsService) loadLedger(ctx context.Context, id int64) (models.BookingLedgerView, error) {
	if s.LedgerLoader != nil {
		return s.LedgerLoader(ctx, id)
	}
	l := s.Ledger
	l.RequestID = s.RequestID
	return l.BookingLedger(ctx, id)
}

func newDocument(title string, settings models.AgencySettings) (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAuthor(settings.CompanyName, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	footer := utils.Fallback(settings.FooterNote, settings.CompanyName)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s - page %d", footer, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, tr(settings.CompanyName))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{settings.Address, settings.Phone, settings.Email} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(4)
	return pdf, tr
}

func amountRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 11)
	pdf.CellFormat(120, 7, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(value), "", 1, "R", false, 0, "")
}

func output(pdf *gofpdf.Fpdf, filename string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

func buildItineraryPDF(v models.ItineraryView, settings models.AgencySettings, audience models.Audience) ([]byte, string, error) {
	it := v.Itinerary
	pdf, tr := newDocument("Itinerary "+it.Name, settings)
	currency := utils.Fallback(v.PricingSummary.Currency, settings.CurrencySymbol)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(it.Name), "", "", false)
	pdf.SetFont("Helvetica", "", 11)
	start := "Not set"
	if it.StartDate != nil {
		start = utils.FormatDate(*it.StartDate)
	}
	for _, s := range []string{
		fmt.Sprintf("Destination : %s", utils.Fallback(it.Destination, "-")),
		fmt.Sprintf("Start date  : %s", start),
		fmt.Sprintf("Duration    : %d days", it.Duration),
		fmt.Sprintf("Travelers   : %d adults, %d children", it.Adults, it.Children),
		fmt.Sprintf("Transfers   : %s", it.TransferMode),
	} {
		pdf.Cell(0, 6, tr(s))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	for _, d := range v.Days {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Day %d - %s", d.DayNumber, d.DateLabel())))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		for _, s := range []string{
			"Hotel     : " + d.HotelLabel(),
			"Room      : " + d.RoomLabel(),
			"Transport : " + d.CabLabel(),
		} {
			pdf.Cell(0, 5, tr(s))
			pdf.Ln(5)
		}
		if d.Notes != "" {
			pdf.MultiCell(0, 5, tr("Notes: "+d.Notes), "", "", false)
		}

		for _, a := range v.ActivitiesForDay(d.ID) {
			when := a.TimeStart
			if a.TimeEnd != "" {
				when += "-" + a.TimeEnd
			}
			line := "- " + a.Title
			if when != "" {
				line = fmt.Sprintf("- [%s] %s", when, a.Title)
			}
			if a.Location != "" {
				line += " @ " + a.Location
			}
			if a.IsTransfer {
				line += " (transfer)"
			}
			pdf.MultiCell(0, 5, tr(line), "", "", false)
		}
		pdf.Ln(3)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Price Summary")
	pdf.Ln(9)
	for _, s := range v.PricingSummary.AdditionalServices {
		amountRow(pdf, tr, "  "+s.Name, utils.FormatMoney(s.Price, currency), false)
	}
	for _, l := range v.PricingSummary.VisibleLines(audience) {
		amountRow(pdf, tr, l.Label, utils.FormatMoney(l.Amount, currency), l.Key == "total")
	}

	filename := fmt.Sprintf("ITINERARY_%d_%s.pdf", it.ID, utils.SafeFilenamePart(it.Name))
	return output(pdf, filename)
}

func buildStatementPDF(v models.BookingLedgerView, settings models.AgencySettings) ([]byte, string, error) {
	b := v.Booking
	pdf, tr := newDocument("Statement "+b.Reference(), settings)
	currency := settings.CurrencySymbol

	qr, err := qrcode.Encode(b.Reference(), qrcode.Medium, 256)
	if err != nil {
		return nil, "", err
	}
	const qrName = "booking-ref"
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(qrName, opts, bytes.NewReader(qr))
	pdf.ImageOptions(qrName, 165, 10, 30, 30, false, opts, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 9, "PAYMENT STATEMENT")
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "", 11)
	travel := "Not set"
	if b.TravelDate != nil {
		travel = utils.FormatDate(*b.TravelDate)
	}
	for _, s := range []string{
		"Booking    : " + b.Reference(),
		"Customer   : " + utils.Fallback(b.CustomerName, "-"),
		"Itinerary  : " + utils.Fallback(b.ItineraryName, "-"),
		"Travel date: " + travel,
		"Status     : " + string(b.Status),
		"Generated  : " + utils.FormatDateTime(v.GeneratedAt),
	} {
		pdf.Cell(0, 6, tr(s))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range []struct {
		w     float64
		label string
	}{{30, "Date"}, {35, "Method"}, {25, "Type"}, {30, "Status"}, {0, "Amount"}} {
		align := "L"
		if h.label == "Amount" {
			align = "R"
		}
		ln := 0
		if h.w == 0 {
			ln = 1
		}
		pdf.CellFormat(h.w, 7, h.label, "1", ln, align, true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	if len(v.Payments) == 0 {
		pdf.CellFormat(0, 7, "No payments recorded", "1", 1, "C", false, 0, "")
	}
	for _, p := range v.Payments {
		pdf.CellFormat(30, 7, utils.FormatDate(p.Date), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, tr(utils.Fallback(p.Method, "-")), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, utils.Fallback(string(p.Type), "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, string(p.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(utils.FormatMoney(p.Amount, currency)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	l := v.Ledger
	amountRow(pdf, tr, "Booking total", utils.FormatMoney(l.TotalAmount, currency), false)
	amountRow(pdf, tr, "Paid (completed)", utils.FormatMoney(l.TotalPaid, currency), false)
	if l.PendingAmount.IsPositive() {
		amountRow(pdf, tr, "Awaiting confirmation", utils.FormatMoney(l.PendingAmount, currency), false)
	}
	amountRow(pdf, tr, "Balance due", utils.FormatMoney(l.Remaining, currency), true)
	if l.Excess.IsPositive() {
		amountRow(pdf, tr, "Paid in excess", utils.FormatMoney(l.Excess, currency), false)
	}
	amountRow(pdf, tr, "Payment status", fmt.Sprintf("%s (%d%%)", l.Status, l.Percentage), true)

	filename := fmt.Sprintf("STATEMENT_%s_%s.pdf", b.Reference(), utils.SafeFilenamePart(b.CustomerName))
	return output(pdf, filename)
}
