package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"antika-pos/middleware"
	"antika-pos/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers binds the HTTP surface to the services
type Handlers struct {
	Orders       *services.OrderService
	Tables       *services.TableService
	Menu         *services.MenuService
	Staff        *services.StaffService
	Reservations *services.ReservationService
	Cash         *services.CashService
	Reports      *services.ReportService
	Users        *services.UserService
	Auth         *middleware.Auth
}

// New wires every service onto one database
func New(db *gorm.DB, auth *middleware.Auth, notifier services.Notifier, logger *slog.Logger) *Handlers {
	orders := services.NewOrderService(db, logger)
	return &Handlers{
		Orders:       orders,
		Tables:       services.NewTableService(db, orders),
		Menu:         services.NewMenuService(db),
		Staff:        services.NewStaffService(db),
		Reservations: services.NewReservationService(db, notifier, logger),
		Cash:         services.NewCashService(db, logger),
		Reports:      services.NewReportService(db),
		Users:        services.NewUserService(db),
		Auth:         auth,
	}
}

// response is the envelope every endpoint answers with
type response struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *gin.Context, status int, data any, message string) {
	c.JSON(status, response{OK: true, Data: data, Message: message})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, response{OK: false, Error: msg})
}

// statusFor maps a service error kind to its HTTP status
func statusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidTransition, services.KindItemLocked, services.KindAlreadyOpen,
		services.KindTableOccupied, services.KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// failErr writes err with its mapped status, attaching it to the request log
func failErr(c *gin.Context, err error) {
	_ = c.Error(err)
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		fail(c, statusFor(err), svcErr.Message)
		return
	}
	fail(c, http.StatusInternalServerError, err.Error())
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// intParam parses a positive path parameter
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		fail(c, http.StatusBadRequest, "invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return v, true
}

func idParam(c *gin.Context) (uint, bool) {
	v, ok := intParam(c, "id")
	return uint(v), ok
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return v, true
}
