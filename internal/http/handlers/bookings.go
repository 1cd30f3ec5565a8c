package handlers

import (
	"net/http"
	"strings"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func listService() services.ListService {
	return services.ListService{DefaultPageSize: options().DefaultPageSize}
}

func ledgerService(c *gin.Context) services.LedgerService {
	return services.LedgerService{RequestID: middleware.GetRequestID(c)}
}

// ledgerStatusQuery accepts Paid, Partial or Unpaid in any case.
func ledgerStatusQuery(c *gin.Context, name string) (models.LedgerStatus, bool) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return "", true
	}
	for _, s := range []models.LedgerStatus{models.LedgerPaid, models.LedgerPartial, models.LedgerUnpaid} {
		if strings.EqualFold(v, string(s)) {
			return s, true
		}
	}
	respondError(c, http.StatusBadRequest, "invalid_"+name, name+" must be Paid, Partial or Unpaid", nil)
	return "", false
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	q := services.BookingQuery{
		Search: c.Query("q"),
		Page:   paginationQuery(c),
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q.Status = models.BookingStatus(s)
		if !q.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid_status", "unknown booking status", nil)
			return
		}
	}
	var ok bool
	if q.PaymentStatus, ok = ledgerStatusQuery(c, "payment_status"); !ok {
		return
	}
	if q.CreatedFrom, ok = dateQuery(c, "created_from"); !ok {
		return
	}
	if q.CreatedTo, ok = dateQuery(c, "created_to"); !ok {
		return
	}
	if q.TravelFrom, ok = dateQuery(c, "travel_from"); !ok {
		return
	}
	if q.TravelTo, ok = dateQuery(c, "travel_to"); !ok {
		return
	}

	page, err := listService().ListBookings(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/bookings/:id/ledger
func GetBookingLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := ledgerService(c).BookingLedger(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
