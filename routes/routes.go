package routes

import (
	"antika-pos/handlers"
	"antika-pos/middleware"
	"antika-pos/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	api := r.Group("/api")

	// ── General ────────────────────────────────────────────────────
	api.GET("/health", h.Health)
	api.GET("/state-machine", h.StateMachine)

	admin := []gin.HandlerFunc{h.Auth.Required(), middleware.RoleRequired(models.RoleAdmin)}

	// ── Tables and the order lifecycle ─────────────────────────────
	tables := api.Group("/tables")
	{
		tables.GET("", h.ListTables)
		tables.GET("/stats", h.TableStats)
		tables.GET("/:id", h.GetTable)
		tables.POST("", h.CreateTable)
		tables.PUT("/:id", h.UpdateTable)
		tables.DELETE("/:id", append(admin, h.DeleteTable)...)

		tables.POST("/open/:tableId", h.OpenTable)
		tables.POST("/staff/:tableId", h.AssignStaff)
		tables.POST("/reserve/:tableId", h.ReserveTable)
		tables.POST("/items/add/:tableId", h.AddItems)
		tables.POST("/items/remove/:orderId", h.RemoveItem)
		tables.POST("/items/quantity/:orderId", h.ChangeQuantity)
		tables.POST("/items/status/:orderId", h.ChangeItemStatus)
		tables.POST("/close/:tableId", h.CloseTable)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/active", h.ActiveOrders)
		orders.GET("/kitchen", h.KitchenQueue)
		orders.GET("/table/:tableId", h.TableOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", append(admin, h.SetOrderStatus)...)
		orders.DELETE("/:id", append(admin, h.DeleteOrder)...)
	}

	// ── Menu ───────────────────────────────────────────────────────
	dishes := api.Group("/dishes")
	{
		dishes.GET("", h.ListDishes)
		dishes.POST("", h.CreateDish)
		dishes.GET("/stats", h.DishStats)
		dishes.GET("/:id", h.GetDish)
		dishes.PUT("/:id", h.UpdateDish)
		dishes.PATCH("/:id/toggle", h.ToggleDish)
		dishes.DELETE("/:id", h.DeleteDish)
	}
	menu := api.Group("/menu")
	{
		menu.GET("", h.GetMenu)
		menu.GET("/categories", h.MenuCategories)
		menu.GET("/category/:category", h.MenuByCategory)
		menu.GET("/search/:term", h.SearchMenu)
	}

	// ── Staff ──────────────────────────────────────────────────────
	staff := api.Group("/staff")
	{
		staff.GET("", h.ListEmployees)
		staff.POST("", h.CreateEmployee)
		staff.GET("/:id", h.GetEmployee)
		staff.PUT("/:id", h.UpdateEmployee)
		staff.DELETE("/:id", h.DeleteEmployee)
	}
	api.GET("/attendance", h.ListAttendance)
	api.POST("/attendance", h.RecordAttendance)
	api.GET("/attendance/summary", h.AttendanceSummary)

	// ── Reservations ───────────────────────────────────────────────
	reservations := api.Group("/reservations")
	{
		reservations.GET("", h.ListReservations)
		reservations.POST("", h.CreateReservation)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.DELETE("/:id", h.DeleteReservation)
	}

	// ── Cash register and reports ──────────────────────────────────
	cash := api.Group("/cash")
	{
		cash.GET("", h.ListCash)
		cash.POST("", h.RegisterCash)
		cash.GET("/summary", h.CashSummary)
		cash.POST("/close", h.CloseRegister)
	}
	reports := api.Group("/reports")
	{
		reports.GET("/summary", h.ReportSummary)
		reports.GET("/daily-income", h.DailyIncome)
		reports.GET("/top-dishes", h.TopDishes)
		reports.GET("/dashboard", h.Dashboard)
	}

	// ── Users ──────────────────────────────────────────────────────
	api.POST("/users/login", h.Login)
	users := api.Group("/users", admin...)
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.PUT("/role/:email", h.ChangeRole)
		users.DELETE("/:id", h.DeleteUser)
	}
}
