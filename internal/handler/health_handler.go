package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the root info endpoint.
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler that pings store within timeout.
func NewHealthHandler(store Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthHandler{store: store, timeout: timeout}
}

// InfoResponse is the root endpoint body.
type InfoResponse struct {
	Message   string `json:"message"`
	Database  string `json:"database"`
	Version   string `json:"version"`
	APIPrefix string `json:"api_prefix"`
}

// Root godoc
// @Summary Service info and database status
// @Tags health
// @Produce json
// @Success 200 {object} InfoResponse
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status := "Connected"
	if err := h.store.Ping(ctx); err != nil {
		status = "Error: " + err.Error()
	}
	return c.JSON(http.StatusOK, InfoResponse{
		Message:   "Hostel Food Management System API",
		Database:  status,
		Version:   Version,
		APIPrefix: "/api",
	})
}
