package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hostelfood/internal/middleware"
	"hostelfood/internal/model"
	"hostelfood/internal/service"
)

// TicketHandler handles support tickets.
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// TicketRequest represents a new ticket.
type TicketRequest struct {
	Category    string   `json:"category" validate:"required"`
	SubCategory *string  `json:"sub_category"`
	Urgency     string   `json:"urgency" validate:"required,oneof=basic medium critical"`
	Description string   `json:"description" validate:"required"`
	Photos      []string `json:"photos"`
}

// Create godoc
// @Summary File a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TicketRequest true "Ticket"
// @Success 200 {object} model.Ticket
// @Failure 400 {object} errors.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req TicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.ticketService.Create(c.Request().Context(), middleware.CurrentUser(c), service.TicketInput{
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Urgency:     model.Urgency(req.Urgency),
		Description: req.Description,
		Photos:      req.Photos,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// List godoc
// @Summary List tickets (all for admins, own for students)
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.TicketView
// @Router /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.ticketService.List(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// UpdateStatus godoc
// @Summary Change a ticket's status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param status query string true "open, in_progress or closed"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tickets/{id} [patch]
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	status := model.TicketStatus(c.QueryParam("status"))
	if err := h.ticketService.UpdateStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Ticket updated"})
}
