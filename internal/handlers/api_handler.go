package handlers

import (
	"context"
	"net/http"
	"time"

	"restaurant_pos/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Auth     services.AuthService
	Cart     services.CartService
	Verifier services.VerificationService
	Orders   services.OrderService
	Settings services.SettingsService
	Menu     services.MenuService
}

type CookieConfig struct {
	Secure         bool
	CartTTL        time.Duration
	SessionTimeout time.Duration
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type APIHandler struct {
	services Services
	logger   *zap.Logger
	cookies  CookieConfig
	checks   map[string]HealthCheck
}

func NewAPIHandler(svc Services, logger *zap.Logger, cookies CookieConfig, checks map[string]HealthCheck) *APIHandler {
	return &APIHandler{
		services: svc,
		logger:   logger,
		cookies:  cookies,
		checks:   checks,
	}
}

func (h *APIHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			results[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}
