package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice/internal/domain/models"
	"backoffice/internal/services"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type paymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status" binding:"omitempty,oneof=Pending Completed Failed Refunded"`
	Method    string          `json:"method" binding:"required,max=50"`
	Date      string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Type      string          `json:"type" binding:"omitempty,oneof=Full Partial"`
	Reference string          `json:"reference" binding:"max=100"`
	Notes     string          `json:"notes" binding:"max=1000"`
}

func (r paymentRequest) input() (services.PaymentInput, error) {
	date, err := utils.ParseOptionalDate(r.Date)
	if err != nil {
		return services.PaymentInput{}, err
	}
	return services.PaymentInput{
		Amount:    r.Amount,
		Status:    models.PaymentStatus(r.Status),
		Method:    r.Method,
		Date:      date,
		Type:      models.PaymentType(r.Type),
		Reference: r.Reference,
		Notes:     r.Notes,
	}, nil
}

func bindPayment(c *gin.Context) (services.PaymentInput, bool) {
	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return services.PaymentInput{}, false
	}
	in, err := req.input()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", nil)
		return services.PaymentInput{}, false
	}
	return in, true
}

// GET /api/payments
func ListPayments(c *gin.Context) {
	q := services.PaymentQuery{
		Method: strings.TrimSpace(c.Query("method")),
		Search: c.Query("q"),
		Page:   paginationQuery(c),
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q.Status = models.PaymentStatus(s)
		if !q.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid_status", "unknown payment status", nil)
			return
		}
	}
	if b := strings.TrimSpace(c.Query("booking_id")); b != "" {
		id, err := strconv.ParseInt(b, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "invalid_booking_id", "invalid booking_id", nil)
			return
		}
		q.BookingID = id
	}
	var ok bool
	if q.BookingStatus, ok = ledgerStatusQuery(c, "booking_status"); !ok {
		return
	}
	if q.DateFrom, ok = dateQuery(c, "date_from"); !ok {
		return
	}
	if q.DateTo, ok = dateQuery(c, "date_to"); !ok {
		return
	}

	page, err := listService().ListPayments(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/bookings/:id/payments
func CreatePayment(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	in, ok := bindPayment(c)
	if !ok {
		return
	}
	p, err := ledgerService(c).RecordPayment(c.Request.Context(), bookingID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": p})
}

// PUT /api/payments/:id
func UpdatePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	in, ok := bindPayment(c)
	if !ok {
		return
	}
	p, err := ledgerService(c).UpdatePayment(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

// DELETE /api/payments/:id
func DeletePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ledgerService(c).DeletePayment(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
