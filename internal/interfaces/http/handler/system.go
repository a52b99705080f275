package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StrategyLister lists the registered batch selection strategies
type StrategyLister interface {
	ListBatchStrategies() []string
}

// HealthChecker reports whether a dependency is reachable
type HealthChecker func() error

// SystemHandler serves health and strategy discovery
type SystemHandler struct {
	BaseHandler
	strategies StrategyLister
	checks     map[string]HealthChecker
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(strategies StrategyLister, checks map[string]HealthChecker) *SystemHandler {
	return &SystemHandler{strategies: strategies, checks: checks}
}

// Health handles GET /health. Any failing check turns the response into a 503.
func (h *SystemHandler) Health(c *gin.Context) {
	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(); err != nil {
			components[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{"status": state, "components": components})
}

// Strategies godoc
// @ID           listStrategies
// @Summary      List batch selection strategies
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=[]string}
// @Router       /strategies [get]
func (h *SystemHandler) Strategies(c *gin.Context) {
	h.Success(c, h.strategies.ListBatchStrategies())
}
