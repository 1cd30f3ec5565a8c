package handlers

import (
	"net/http"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func dayService(c *gin.Context) services.DayService {
	return services.DayService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/itineraries/:id/days
func ListDays(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	days, err := dayService(c).ListDays(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// POST /api/itineraries/:id/days/init
//
// 200 when every missing day was created, 502 with the same report when
// some failed so the caller can retry only those.
func InitializeDays(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	report, err := dayService(c).InitializeDays(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if report.HasFailures() {
		c.JSON(http.StatusBadGateway, gin.H{
			"code":       "partial_failure",
			"report":     report,
			"request_id": middleware.GetRequestID(c),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// POST /api/itineraries/:id/days
func AddDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	day, err := dayService(c).AddDay(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"day": day})
}

type dayRequest struct {
	HotelID int64                 `json:"hotel_id" binding:"gte=0"`
	Room    *models.RoomSelection `json:"room"`
	Cab     *models.CabSelection  `json:"cab"`
	Notes   string                `json:"notes" binding:"max=2000"`
}

// PUT /api/itineraries/:id/days/:dayId
func UpdateDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dayID, ok := parseIDParam(c, "dayId")
	if !ok {
		return
	}
	var req dayRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	day, err := dayService(c).UpdateDay(c.Request.Context(), id, dayID, services.DayDetails{
		HotelID: req.HotelID,
		Room:    req.Room,
		Cab:     req.Cab,
		Notes:   req.Notes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day})
}

// DELETE /api/itineraries/:id/days/:dayId
func DeleteDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dayID, ok := parseIDParam(c, "dayId")
	if !ok {
		return
	}
	if err := dayService(c).DeleteDay(c.Request.Context(), id, dayID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/itineraries/:id/days/redate
func RedateDays(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	days, err := dayService(c).RedateDays(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
