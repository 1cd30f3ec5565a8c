package handlers

import (
	"net/http"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func activityService(c *gin.Context) services.ActivityService {
	return services.ActivityService{RequestID: middleware.GetRequestID(c)}
}

type activityRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Location    string `json:"location" binding:"max=200"`
	TimeStart   string `json:"time_start" binding:"omitempty,datetime=15:04"`
	TimeEnd     string `json:"time_end" binding:"omitempty,datetime=15:04"`
	IsTransfer  bool   `json:"is_transfer"`
}

func (r activityRequest) model() models.Activity {
	return models.Activity{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		TimeStart:   r.TimeStart,
		TimeEnd:     r.TimeEnd,
		IsTransfer:  r.IsTransfer,
	}
}

// GET /api/itineraries/:id/activities
func ListActivities(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	acts, err := activityService(c).ListActivities(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": acts})
}

// POST /api/days/:dayId/activities
func CreateActivity(c *gin.Context) {
	dayID, ok := parseIDParam(c, "dayId")
	if !ok {
		return
	}
	var req activityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := activityService(c).AddActivity(c.Request.Context(), dayID, req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": a})
}

// PUT /api/activities/:id
func UpdateActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req activityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := activityService(c).UpdateActivity(c.Request.Context(), id, req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": a})
}

// DELETE /api/activities/:id
func DeleteActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := activityService(c).DeleteActivity(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveRequest struct {
	Direction services.MoveDirection `json:"direction" binding:"required,oneof=up down"`
}

// POST /api/activities/:id/move
func MoveActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req moveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	acts, err := activityService(c).MoveActivity(c.Request.Context(), id, req.Direction)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": acts})
}
