package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hostelfood/internal/middleware"
	"hostelfood/internal/service"
)

// StudentHandler serves menu browsing, selections and booking history.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// SelectionRequest represents a meal selection.
type SelectionRequest struct {
	MenuID          string   `json:"menu_id" validate:"required"`
	SelectedItemIDs []string `json:"selected_item_ids" validate:"required"`
}

// Menus godoc
// @Summary Today's and tomorrow's published menus
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.StudentMenu
// @Failure 401 {object} errors.ErrorResponse
// @Router /student/menus [get]
func (h *StudentHandler) Menus(c echo.Context) error {
	menus, err := h.studentService.ListMenus(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, menus)
}

// SubmitSelection godoc
// @Summary Create or replace a meal selection
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SelectionRequest true "Selection"
// @Success 200 {object} service.SelectionResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /student/selections [post]
func (h *StudentHandler) SubmitSelection(c echo.Context) error {
	var req SelectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.studentService.SubmitSelection(c.Request().Context(), middleware.CurrentUser(c), req.MenuID, req.SelectedItemIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// BookingHistory godoc
// @Summary Own selections, newest first
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.BookingEntry
// @Router /student/booking-history [get]
func (h *StudentHandler) BookingHistory(c echo.Context) error {
	history, err := h.studentService.BookingHistory(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, history)
}
