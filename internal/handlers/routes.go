package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/design-tracker/internal/dto"
	"github.com/yukikurage/design-tracker/internal/middleware"
	"github.com/yukikurage/design-tracker/internal/services"
)

// Pinger reports store reachability for the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies wires the router
type Dependencies struct {
	Tasks       *services.TaskService
	Members     *services.MemberService
	Store       Pinger
	Log         *logrus.Logger
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware, /health and the /api routes
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Recovery(deps.Log))
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))

	r.GET("/health", healthHandler(deps.Store, deps.Log))

	taskHandler := NewTaskHandler(deps.Tasks, deps.Log)
	memberHandler := NewMemberHandler(deps.Members, deps.Log)

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)

		members := api.Group("/members")
		members.GET("", memberHandler.ListMembers)
		members.POST("", memberHandler.AddMember)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func healthHandler(store Pinger, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Store: "unknown"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			middleware.Logger(c, log).WithError(err).Warn("store ping failed")
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Store: "unreachable"})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Store: "ok"})
	}
}
