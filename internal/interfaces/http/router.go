// Package http wires the gin engine: middleware chain, route groups, and
// the RBAC policy guarding each endpoint.
package http

import (
	"github.com/gin-gonic/gin"

	"boaz/internal/infrastructure/auth"
	"boaz/internal/infrastructure/config"
	"boaz/internal/infrastructure/permission"
	"boaz/internal/interfaces/http/handlers"
	"boaz/internal/interfaces/http/middleware"
	"boaz/internal/shared/logger"
)

// Router holds the handlers and middleware needed to build the HTTP surface.
type Router struct {
	engine *gin.Engine

	authMW       *middleware.AuthMiddleware
	permissionMW *middleware.PermissionMiddleware

	authHandler         *handlers.AuthHandler
	housingUnitHandler  *handlers.HousingUnitHandler
	subscriptionHandler *handlers.SubscriptionHandler
	catalogHandler      *handlers.CatalogHandler
}

// RouterParams carries the dependencies the router needs.
type RouterParams struct {
	Config     *config.Config
	JWTService *auth.JWTService
	Enforcer   *permission.Enforcer
	Logger     logger.Interface

	AuthHandler         *handlers.AuthHandler
	HousingUnitHandler  *handlers.HousingUnitHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	CatalogHandler      *handlers.CatalogHandler
}

func NewRouter(p RouterParams) *Router {
	gin.SetMode(ginMode(p.Config.Server.Mode))
	registerValidations()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.CORS(p.Config.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	r := &Router{
		engine:              engine,
		authMW:              middleware.NewAuthMiddleware(p.JWTService, p.Logger),
		permissionMW:        middleware.NewPermissionMiddleware(p.Enforcer, p.Logger),
		authHandler:         p.AuthHandler,
		housingUnitHandler:  p.HousingUnitHandler,
		subscriptionHandler: p.SubscriptionHandler,
		catalogHandler:      p.CatalogHandler,
	}
	r.setupRoutes()

	return r
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	// Authentication does not require an existing session.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	authed := api.Group("")
	authed.Use(r.authMW.RequireAuth())

	// User management is an admin concern.
	users := authed.Group("/users")
	users.Use(r.permissionMW.RequirePermission("users", "write"))
	{
		users.POST("", r.authHandler.Register)
	}

	units := authed.Group("/housing-units")
	{
		read := r.permissionMW.RequirePermission("housing-units", "read")
		write := r.permissionMW.RequirePermission("housing-units", "write")

		units.GET("", read, r.housingUnitHandler.List)
		units.GET("/:id", read, r.housingUnitHandler.Get)
		units.POST("", write, r.housingUnitHandler.Create)
		units.PUT("/:id", write, r.housingUnitHandler.Update)
		units.DELETE("/:id", write, r.housingUnitHandler.Delete)
		units.PUT("/:id/status", write, r.housingUnitHandler.SetStatus)
	}

	subs := authed.Group("/subscriptions")
	{
		read := r.permissionMW.RequirePermission("subscriptions", "read")
		write := r.permissionMW.RequirePermission("subscriptions", "write")
		override := r.permissionMW.RequirePermission("subscriptions", "override")
		documents := r.permissionMW.RequirePermission("documents", "write")

		subs.GET("", read, r.subscriptionHandler.List)
		subs.GET("/:id", read, r.subscriptionHandler.Get)
		subs.GET("/reference/:reference", read, r.subscriptionHandler.GetByReference)
		subs.POST("", write, r.subscriptionHandler.Create)
		subs.PUT("/:id", write, r.subscriptionHandler.Update)
		subs.DELETE("/:id", write, r.subscriptionHandler.Delete)

		subs.POST("/:id/pay", write, r.subscriptionHandler.MarkPaid)
		subs.POST("/:id/deliver", write, r.subscriptionHandler.MarkDelivered)
		subs.POST("/:id/proforma", documents, r.subscriptionHandler.GenerateProforma)

		subs.PUT("/:id/status", override, r.subscriptionHandler.OverrideStatus)
		subs.POST("/close-expired", override, r.subscriptionHandler.CloseExpired)
	}

	services := authed.Group("/services")
	services.Use(r.permissionMW.RequirePermission("services", "read"))
	{
		services.GET("", r.catalogHandler.ListServices)
		services.GET("/:id", r.catalogHandler.GetService)
	}

	authed.GET("/organisation", r.permissionMW.RequirePermission("services", "read"), r.catalogHandler.GetOrganisation)
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production", "prod":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
