// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gigledger/backend/internal/integration/entrypoint/controller"
	"github.com/gigledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	userController       *controller.UserController
	shiftController      *controller.ShiftController
	expenseController    *controller.ExpenseController
	settingsController   *controller.SettingsController
	statisticsController *controller.StatisticsController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	shiftController *controller.ShiftController,
	expenseController *controller.ExpenseController,
	settingsController *controller.SettingsController,
	statisticsController *controller.StatisticsController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		userController:       userController,
		shiftController:      shiftController,
		expenseController:    expenseController,
		settingsController:   settingsController,
		statisticsController: statisticsController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/login/pin", r.loginRateLimiter.Middleware(), r.authController.LoginWithPin)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
		auth.POST("/forgot-password", r.authController.ForgotPassword)
		auth.POST("/reset-password", r.authController.ResetPassword)
	}

	// Everything below requires authentication
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	pin := protected.Group("/auth/pin")
	{
		pin.PUT("", r.authController.SetPin)
		pin.DELETE("", r.authController.RemovePin)
	}

	users := protected.Group("/users")
	{
		users.GET("/me", r.userController.Me)
		users.DELETE("/me", r.userController.DeleteAccount)
	}

	shifts := protected.Group("/shifts")
	{
		shifts.GET("", r.shiftController.List)
		shifts.POST("", r.shiftController.Create)
		shifts.GET("/deleted", r.shiftController.ListDeleted)
		shifts.GET("/:id", r.shiftController.Get)
		shifts.PUT("/:id", r.shiftController.Update)
		shifts.DELETE("/:id", r.shiftController.Delete)
		shifts.POST("/:id/restore", r.shiftController.Restore)
		shifts.DELETE("/:id/permanent", r.shiftController.PermanentDelete)
	}

	expenses := protected.Group("/expenses")
	{
		expenses.GET("", r.expenseController.List)
		expenses.POST("", r.expenseController.Create)
		expenses.GET("/categories", r.expenseController.Categories)
		expenses.GET("/deleted", r.expenseController.ListDeleted)
		expenses.GET("/:id", r.expenseController.Get)
		expenses.PUT("/:id", r.expenseController.Update)
		expenses.DELETE("/:id", r.expenseController.Delete)
		expenses.POST("/:id/restore", r.expenseController.Restore)
		expenses.DELETE("/:id/permanent", r.expenseController.PermanentDelete)
	}

	settings := protected.Group("/settings")
	{
		settings.GET("", r.settingsController.Get)
		settings.PUT("", r.settingsController.Update)
	}

	statistics := protected.Group("/statistics")
	{
		statistics.GET("", r.statisticsController.GetStatistics)
		statistics.GET("/stream", r.statisticsController.Stream)
	}

	protected.GET("/dashboard", r.statisticsController.Dashboard)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
