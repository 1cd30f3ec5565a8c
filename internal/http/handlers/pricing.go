package handlers

import (
	"net/http"
	"strings"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func pricingService(c *gin.Context) services.PricingService {
	return services.PricingService{Settings: settings(), RequestID: middleware.GetRequestID(c)}
}

// GET /api/itineraries/:id/pricing-options
func GetPricingOptions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	opts, err := pricingService(c).GetOptions(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

// PUT /api/itineraries/:id/pricing-options
func SavePricingOptions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.PricingOptions
	if !BindJSONOrError(c, &req) {
		return
	}
	opts, err := pricingService(c).SaveOptions(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

// customerSummary is the part of a summary a customer may see. Subtotal and
// agent charges are folded into the total and never shown.
type customerSummary struct {
	Currency       string               `json:"currency"`
	Lines          []models.SummaryLine `json:"lines"`
	Tax            decimal.Decimal      `json:"tax"`
	Total          decimal.Decimal      `json:"total"`
	TravelerCount  int                  `json:"traveler_count"`
	PerPersonTotal *decimal.Decimal     `json:"per_person_total,omitempty"`
}

func toCustomerSummary(s models.PricingSummary) customerSummary {
	return customerSummary{
		Currency:       s.Currency,
		Lines:          s.VisibleLines(models.AudienceCustomer),
		Tax:            s.Tax,
		Total:          s.Total,
		TravelerCount:  s.TravelerCount,
		PerPersonTotal: s.PerPersonTotal,
	}
}

func audienceQuery(c *gin.Context, fallback models.Audience) (models.Audience, bool) {
	v := models.Audience(strings.ToLower(strings.TrimSpace(c.Query("view"))))
	switch v {
	case "":
		return fallback, true
	case models.AudienceInternal, models.AudienceCustomer:
		return v, true
	default:
		respondError(c, http.StatusBadRequest, "invalid_view", "view must be internal or customer", nil)
		return "", false
	}
}

// GET /api/itineraries/:id/pricing?view=internal|customer
func GetPricingSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	audience, ok := audienceQuery(c, models.AudienceInternal)
	if !ok {
		return
	}
	sum, err := pricingService(c).Summary(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if audience == models.AudienceCustomer {
		c.JSON(http.StatusOK, gin.H{"summary": toCustomerSummary(sum)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": sum})
}

// GET /api/itineraries/:id/view
func GetItineraryView(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := pricingService(c).ItineraryView(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
