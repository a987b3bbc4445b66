package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, categoryHandler *CategoryHandler, transactionHandler *TransactionHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	api := e.Group("/api")

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Dashboard aggregate
	api.GET("/dashboard", dashboardHandler.GetSummary)

	// Change-event stream
	e.GET("/ws", wsHandler.HandleWS)
}
