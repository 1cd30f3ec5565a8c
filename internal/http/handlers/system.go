package handlers

import (
	"net/http"
	"sync"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

// Options are the process-wide dependencies handlers read at request time.
type Options struct {
	JWTSecret       []byte
	Settings        *services.SettingsCache
	DefaultPageSize int
}

var (
	routerMu sync.RWMutex
	router   *gin.Engine

	optsMu sync.RWMutex
	opts   = Options{DefaultPageSize: domain.DefaultPageSize}
)

// Configure replaces the handler dependencies.
func Configure(o Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = domain.DefaultPageSize
	}
	opts = o
}

func options() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

func settings() *services.SettingsCache {
	o := options()
	if o.Settings == nil {
		return services.NewSettingsCache(nil)
	}
	return o.Settings
}

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "back office is running"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "store_unavailable", "database unreachable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// POST /api/settings/invalidate
func InvalidateSettings(c *gin.Context) {
	settings().Invalidate()
	utils.LogEvent(middleware.GetRequestID(c), "settings", "invalidate", "user_id="+itoa(middleware.UserID(c)))
	c.JSON(http.StatusOK, gin.H{"message": "settings will be reloaded"})
}
