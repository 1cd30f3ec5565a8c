package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid payload", err.Error())
		return false
	}
	return true
}

// parseIDParam reads a positive int64 path parameter, answering 400 when
// it is missing or malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_"+name, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// dateQuery parses an optional YYYY-MM-DD query value.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	t, err := utils.ParseOptionalDate(c.Query(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_"+name, name+" must be YYYY-MM-DD", nil)
		return nil, false
	}
	return t, true
}

// paginationQuery reads page and page_size; anything unparsable falls back
// to the defaults.
func paginationQuery(c *gin.Context) domain.Pagination {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	size, _ := strconv.Atoi(strings.TrimSpace(c.Query("page_size")))
	return domain.Pagination{Page: page, PageSize: size}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
