package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "records-backend/internal/auth"
	"records-backend/internal/diary"
	"records-backend/internal/logbook"
	"records-backend/internal/records"
	"records-backend/internal/reports"
	"records-backend/internal/shared/config"
	"records-backend/internal/shared/server/middleware"
	"records-backend/internal/shared/server/respond"
	"records-backend/internal/uploads"
	"records-backend/internal/users"
	"records-backend/internal/watch"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
	RecordsHandler *records.Handler
	DiaryHandler   *diary.Handler
	LogbookHandler *logbook.Handler
	ReportsHandler *reports.Handler
	WatchHandler   *watch.Handler
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
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 20, Burst: 60},
			},
		}),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterAuthRoutes(api)
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.RecordsHandler != nil {
		deps.RecordsHandler.RegisterRoutes(api)
	}
	if deps.DiaryHandler != nil {
		deps.DiaryHandler.RegisterRoutes(api)
	}
	if deps.LogbookHandler != nil {
		deps.LogbookHandler.RegisterRoutes(api)
	}
	if deps.ReportsHandler != nil {
		deps.ReportsHandler.RegisterRoutes(api)
	}
	if deps.WatchHandler != nil {
		deps.WatchHandler.RegisterRoutes(api)
	}
	uploads.RegisterRoutes(api)

	return r
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
