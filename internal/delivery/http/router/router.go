// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/middleware"
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ExpenseHandler *handler.ExpenseHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	expenseHandler *handler.ExpenseHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		expenseHandler: params.ExpenseHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Token endpoint accepts form credentials
	e.POST("/login", r.userHandler.Login)

	// User routes
	userGroup := e.Group("/users")
	{
		userGroup.POST("/signup", r.userHandler.Signup)
		userGroup.GET("/me", r.userHandler.GetMe, r.authMiddleware.Authenticate)
		userGroup.GET("/:id", r.userHandler.GetUserByID)
		userGroup.PUT("/:id/monthly-limit", r.userHandler.UpdateMonthlyLimit, r.authMiddleware.Authenticate)
	}

	// Expense routes all require authentication
	expenseGroup := e.Group("/expenses")
	expenseGroup.Use(r.authMiddleware.Authenticate)
	{
		expenseGroup.POST("/create", r.expenseHandler.Create)
		expenseGroup.GET("/get_expenses", r.expenseHandler.List)
		expenseGroup.PUT("/update/:id", r.expenseHandler.Update)
		expenseGroup.DELETE("/delete/:id", r.expenseHandler.Delete)
	}
}
