// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tasklist/internal/delivery/http/middleware"
	"tasklist/internal/delivery/http/router/handler"
	"tasklist/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	TodoHandler    *handler.TodoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	todoHandler    *handler.TodoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		todoHandler:    params.TodoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
	}

	requireBasic := r.authMiddleware.RequireScopes(entity.ScopeBasic)
	requireAdmin := r.authMiddleware.RequireScopes(entity.ScopeAdmin)

	// User routes. Listing and lookup of arbitrary users is an admin
	// operation; a user can always read their own profile.
	userGroup := e.Group("/users")
	{
		userGroup.GET("/me", r.userHandler.GetMe, requireBasic)
		userGroup.GET("", r.userHandler.ListUsers, requireAdmin)
		userGroup.GET("/username/:username", r.userHandler.GetUserByUsername, requireAdmin)
		userGroup.GET("/:id", r.userHandler.GetUserByID, requireAdmin)
	}

	// Todo routes
	todoGroup := e.Group("/todos")
	{
		todoGroup.GET("/me", r.todoHandler.ListMyTodos, requireBasic)
		todoGroup.GET("", r.todoHandler.ListTodos, requireAdmin)
		todoGroup.POST("", r.todoHandler.CreateTodo, requireBasic)
		todoGroup.POST("/:id/complete", r.todoHandler.CompleteTodo, requireBasic)
	}
}
