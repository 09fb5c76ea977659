package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hostelfood/internal/middleware"
	"hostelfood/internal/model"
	"hostelfood/internal/service"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ProfileRequest holds the optional profile fields. Empty strings are ignored.
type ProfileRequest struct {
	Name           *string `json:"name"`
	RoomNumber     *string `json:"room_number"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c).ID, model.ProfileUpdate{
		Name:           req.Name,
		RoomNumber:     req.RoomNumber,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
