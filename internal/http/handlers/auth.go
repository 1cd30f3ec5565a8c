package handlers

import (
	"net/http"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := repositories.UserRepository{}.GetByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if domain.IsNotFound(err) {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", nil)
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !strings.EqualFold(user.Status, "active") {
		respondError(c, http.StatusForbidden, "inactive_user", "account is not active", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", nil)
		return
	}

	token, err := middleware.IssueToken(options().JWTSecret, user.ID, user.Role, tokenTTL)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "could not sign token", Err: err})
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+itoa(user.ID))
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
		"user":       user,
	})
}
