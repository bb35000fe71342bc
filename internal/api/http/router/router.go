package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmanager/vehicle-manager-server/internal/api/http/handler"
	"github.com/vmanager/vehicle-manager-server/internal/api/http/middleware"
	"github.com/vmanager/vehicle-manager-server/internal/logger"
	"github.com/vmanager/vehicle-manager-server/internal/model"
	"github.com/vmanager/vehicle-manager-server/internal/service"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService    *service.Auth
	vehicleService *service.Vehicle
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	vehicleService *service.Vehicle,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		vehicleService: vehicleService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register registers all routes and middleware and returns the engine.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	requestLog := middleware.NewRequestLog(r.logger)
	engine.Use(requestLog.Handle())

	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Vehicle Manager API"})
	})

	v1 := engine.Group("/api/v1")

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/token", authHandler.Token)
		auth.GET("/users/me", authenticate.Handle(), authHandler.Me)
	}

	vehicleHandler := handler.NewVehicle(r.vehicleService, r.contextManager, r.logger)
	vehicles := v1.Group("/vehicles", authenticate.Handle())
	{
		vehicles.POST("/", vehicleHandler.Create)
		vehicles.GET("/", vehicleHandler.List)
		vehicles.GET("/:id", vehicleHandler.Get)
		vehicles.PUT("/:id", vehicleHandler.Update)
		vehicles.DELETE("/:id", vehicleHandler.Delete)
	}

	return engine
}
