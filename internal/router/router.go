package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hostelfood/internal/auth"
	"hostelfood/internal/config"
	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/handler"
	"hostelfood/internal/logging"
	"hostelfood/internal/metrics"
	"hostelfood/internal/middleware"
	"hostelfood/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Admin   *handler.AdminHandler
	Student *handler.StudentHandler
	Ticket  *handler.TicketHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	h Handlers,
	jwtService *auth.JWTService,
	users service.UserService,
) {
	e.HTTPErrorHandler = errorHandler
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
		},
	}))
	e.Use(metrics.Middleware())

	e.GET("/", h.Health.Root)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Authenticated routes, any role
	secured := api.Group("", middleware.JWT(jwtService), middleware.LoadUser(users))
	secured.GET("/auth/me", h.Auth.Me)
	secured.PATCH("/profile", h.User.UpdateProfile)
	secured.GET("/student/menus", h.Student.Menus)
	secured.POST("/student/selections", h.Student.SubmitSelection)
	secured.GET("/student/booking-history", h.Student.BookingHistory)
	secured.POST("/tickets", h.Ticket.Create)
	secured.GET("/tickets", h.Ticket.List)

	// Admin routes
	admin := secured.Group("/admin", middleware.RequireAdmin)
	admin.POST("/menu-items", h.Admin.CreateMenuItem)
	admin.GET("/menu-items", h.Admin.ListMenuItems)
	admin.DELETE("/menu-items/:id", h.Admin.DeleteMenuItem)
	admin.POST("/menus", h.Admin.CreateMenu)
	admin.GET("/menus", h.Admin.ListMenus)
	admin.GET("/analytics/:menu_id", h.Admin.Analytics)
	admin.PATCH("/tickets/:id", h.Ticket.UpdateStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler writes every error as an ErrorResponse, including echo's own
// 404 and 405 responses.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = apperrors.ToEcho(err)
	}
	body := he.Message
	if msg, ok := body.(string); ok {
		body = apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, body)
	}
	if err != nil {
		logrus.WithError(err).Warn("write error response")
	}
}

// statusCode turns an HTTP status into an error code, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
