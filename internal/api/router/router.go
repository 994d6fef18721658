package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/api/handler"
	"github.com/chlyn/COSC369-Final-Project/internal/api/middleware"
	"github.com/chlyn/COSC369-Final-Project/pkg/jwt"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
	"github.com/chlyn/COSC369-Final-Project/pkg/validation"
)

// Setup builds the gin engine. blacklist may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, blacklist middleware.TokenChecker, logger *zap.Logger) (*gin.Engine, error) {
	if err := validation.RegisterGin(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	api.Use(middleware.Identity(jwtMgr, blacklist, cfg.Auth.RequireToken, logger))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
		}

		user := api.Group("/user")
		{
			user.GET("/me", h.User.Me)
			user.PATCH("/profile", h.User.UpdateProfile)
			user.PATCH("/academic", h.User.UpdateAcademic)
			user.PATCH("/password", h.User.UpdatePassword)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", h.Catalog.List)
			courses.GET("/:id", h.Catalog.Get)
		}

		api.GET("/semesters", h.Schedule.Semesters)

		schedule := api.Group("/schedule")
		{
			schedule.GET("", h.Schedule.Get)
			schedule.POST("/add", h.Schedule.Add)
			schedule.POST("/drop", h.Schedule.Drop)
			schedule.GET("/export", h.Export.ExportSchedule)
		}

		api.POST("/chat", h.Chat.Send)

		conversations := api.Group("/conversations")
		{
			conversations.GET("", h.Conversation.List)
			conversations.GET("/:id", h.Conversation.Get)
			conversations.DELETE("/:id", h.Conversation.Delete)
		}
	}

	// ── frontend bundle ──
	staticFS := http.FileServer(http.Dir(cfg.Server.StaticDir))
	r.NoRoute(func(c *gin.Context) {
		if cfg.Server.StaticDir == "" || c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.NotFound(c, 10004, "Not found")
			return
		}
		staticFS.ServeHTTP(c.Writer, c.Request)
	})

	return r, nil
}
