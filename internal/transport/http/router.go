package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/apperr"
	"github.com/bluekeys/repair_shop/internal/handlers"
	authmw "github.com/bluekeys/repair_shop/internal/middleware/auth"
	"github.com/bluekeys/repair_shop/internal/service/token"
	"github.com/bluekeys/repair_shop/internal/validate"
)

type Deps struct {
	DB               *gorm.DB
	Tokens           *token.Service
	CustomerHandler  *handlers.CustomerHandler
	MechanicHandler  *handlers.MechanicHandler
	TicketHandler    *handlers.TicketHandler
	InventoryHandler *handlers.InventoryHandler
}

// NewEcho builds the server with the shared validator and the central
// error-kind renderer installed.
func NewEcho(log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Validator = validate.New()
	e.HTTPErrorHandler = apperr.ErrorHandler(log)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	requireLogin := authmw.RequireLogin(d.Tokens)

	customers := e.Group("/customers")
	customers.POST("", d.CustomerHandler.CreateCustomer)
	customers.POST("/login", d.CustomerHandler.Login)
	customers.GET("/my-tickets", d.CustomerHandler.MyTickets, requireLogin)
	customers.GET("", d.CustomerHandler.GetCustomers)
	customers.GET("/search", d.CustomerHandler.SearchCustomers)
	customers.PUT("/:id", d.CustomerHandler.UpdateCustomer)
	customers.DELETE("/:id", d.CustomerHandler.DeleteCustomer)

	mechanics := e.Group("/mechanics")
	mechanics.POST("", d.MechanicHandler.CreateMechanic)
	mechanics.GET("", d.MechanicHandler.GetMechanics)
	mechanics.GET("/search", d.MechanicHandler.SearchMechanics)
	mechanics.PUT("/:id", d.MechanicHandler.UpdateMechanic)
	mechanics.DELETE("/:id", d.MechanicHandler.DeleteMechanic)

	tickets := e.Group("/service_tickets")
	tickets.POST("", d.TicketHandler.CreateTicket)
	tickets.GET("", d.TicketHandler.GetTickets)
	tickets.GET("/search", d.TicketHandler.SearchTickets)
	tickets.POST("/:id/add_part", d.TicketHandler.AddPart)
	tickets.PUT("/:id", d.TicketHandler.UpdateTicket)
	tickets.DELETE("/:id", d.TicketHandler.DeleteTicket)

	inventory := e.Group("/inventory")
	inventory.POST("", d.InventoryHandler.CreateInventory)
	inventory.GET("", d.InventoryHandler.GetInventory)
	inventory.GET("/search", d.InventoryHandler.SearchInventory)
	inventory.PUT("/:id", d.InventoryHandler.UpdateInventory)
	inventory.DELETE("/:id", d.InventoryHandler.DeleteInventory)
}
