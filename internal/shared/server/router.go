package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careerpilot-backend/internal/ats"
	"careerpilot-backend/internal/chat"
	"careerpilot-backend/internal/history"
	"careerpilot-backend/internal/interview"
	"careerpilot-backend/internal/market"
	"careerpilot-backend/internal/services/health"
	"careerpilot-backend/internal/shared/config"
	"careerpilot-backend/internal/shared/metrics"
	"careerpilot-backend/internal/shared/server/middleware"
	"careerpilot-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	ChatHandler      *chat.Handler
	MarketHandler    *market.Handler
	ATSHandler       *ats.Handler
	InterviewHandler *interview.Handler
	HistoryHandler   *history.Handler
}

// Analysis endpoints fan out into several LLM calls per request, so they get
// a much tighter rate limit than the single-call endpoints.
var rateLimitRules = map[string]middleware.RateLimitRule{
	"DEFAULT": {Rate: 2, Burst: 10},
	"ANALYZE": {Rate: 0.5, Burst: 2},
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateLimitRules,
			GroupFor: rateLimitGroup,
		}),
	)

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, health.Info())
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	api := r.Group("/")
	deps.ChatHandler.RegisterRoutes(api)
	deps.MarketHandler.RegisterRoutes(api)
	deps.ATSHandler.RegisterRoutes(api)
	deps.InterviewHandler.RegisterRoutes(api)
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}

	if deps.Config.Env == "dev" {
		r.GET("/metrics", metrics.Handler())
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/ats/candidate") ||
		strings.HasPrefix(path, "/ats/recruiter") ||
		strings.HasPrefix(path, "/market/analyze") {
		return "ANALYZE"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
