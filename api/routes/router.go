// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/auth"
	"ticketforge/internal/events"
	"ticketforge/internal/marketplace"
	"ticketforge/internal/notifications"
	"ticketforge/internal/pausegate"
	"ticketforge/internal/shared/config"
	"ticketforge/internal/shared/database"
	"ticketforge/internal/tickets"
	"ticketforge/pkg/cache"
	"ticketforge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	publisher notifications.Publisher
	log       *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, publisher notifications.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cacheService,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	gormDB := r.db.GetPostgreSQL()

	// Shared services, wired once and passed down
	roleRepo := accesscontrol.NewRepository(gormDB)
	roleService := accesscontrol.NewService(roleRepo, r.publisher, r.log)

	gateRepo := pausegate.NewRepository(gormDB)
	gateService := pausegate.NewService(gateRepo, roleService, r.publisher, r.log)

	eventRepo := events.NewRepository(gormDB)
	eventService := events.NewService(eventRepo, roleService, gateService, r.cache, r.publisher, r.log)

	ticketRepo := tickets.NewRepository(gormDB)
	ticketService := tickets.NewService(ticketRepo, eventService, roleService, gateService, r.cache, r.publisher, r.log)

	marketRepo := marketplace.NewRepository(gormDB)
	marketService := marketplace.NewService(marketRepo, gateService, r.publisher, r.log)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		accesscontrol.RegisterRoutes(api, accesscontrol.NewController(roleService))
		pausegate.RegisterRoutes(api, pausegate.NewController(gateService))
		events.RegisterRoutes(api, events.NewController(eventService))
		tickets.RegisterRoutes(api, tickets.NewController(ticketService))
		marketplace.RegisterRoutes(api, marketplace.NewController(marketService))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketforge",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketforge",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}
