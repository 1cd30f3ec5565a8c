package handlers

import (
	"net/http"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func docsService(c *gin.Context) services.DocsService {
	rid := middleware.GetRequestID(c)
	s := settings()
	return services.DocsService{
		Pricing:   services.PricingService{Settings: s, RequestID: rid},
		Ledger:    services.LedgerService{RequestID: rid},
		Settings:  s,
		RequestID: rid,
	}
}

func sendPDF(c *gin.Context, pdf []byte, filename string) {
	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/itineraries/:id/document?view=customer|internal
//
// Documents default to the customer view; the internal one also prints
// subtotal and agent charges.
func GetItineraryDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	audience, ok := audienceQuery(c, models.AudienceCustomer)
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).ItineraryDocument(c.Request.Context(), id, audience)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}

// GET /api/bookings/:id/statement
func GetBookingStatement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).LedgerStatement(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}
