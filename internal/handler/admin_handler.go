package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hostelfood/internal/model"
	"hostelfood/internal/service"
)

// AdminHandler serves menu curation and analytics.
type AdminHandler struct {
	menuService service.MenuService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(menuService service.MenuService) *AdminHandler {
	return &AdminHandler{menuService: menuService}
}

// MenuItemRequest represents a new catalog item.
type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required,oneof=veg non-veg"`
	MealType    string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// MenuRequest represents a new menu.
type MenuRequest struct {
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	MealType string   `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	ItemIDs  []string `json:"item_ids" validate:"required"`
}

// CreateMenuItem godoc
// @Summary Create a menu item
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MenuItemRequest true "Menu item"
// @Success 200 {object} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/menu-items [post]
func (h *AdminHandler) CreateMenuItem(c echo.Context) error {
	var req MenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.menuService.CreateMenuItem(c.Request().Context(), service.MenuItemInput{
		Name:        req.Name,
		Category:    model.Category(req.Category),
		MealType:    model.MealType(req.MealType),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// ListMenuItems godoc
// @Summary List menu items
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.MenuItem
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/menu-items [get]
func (h *AdminHandler) ListMenuItems(c echo.Context) error {
	items, err := h.menuService.ListMenuItems(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/menu-items/{id} [delete]
func (h *AdminHandler) DeleteMenuItem(c echo.Context) error {
	if err := h.menuService.DeleteMenuItem(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Item deleted"})
}

// CreateMenu godoc
// @Summary Publish a menu
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MenuRequest true "Menu"
// @Success 200 {object} model.Menu
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/menus [post]
func (h *AdminHandler) CreateMenu(c echo.Context) error {
	var req MenuRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	menu, err := h.menuService.CreateMenu(c.Request().Context(), service.MenuInput{
		Date:     req.Date,
		MealType: model.MealType(req.MealType),
		ItemIDs:  req.ItemIDs,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, menu)
}

// ListMenus godoc
// @Summary List menus, newest date first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Menu
// @Router /admin/menus [get]
func (h *AdminHandler) ListMenus(c echo.Context) error {
	menus, err := h.menuService.ListMenus(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, menus)
}

// Analytics godoc
// @Summary Selection analytics for a menu
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param menu_id path string true "Menu ID"
// @Success 200 {object} service.Analytics
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/analytics/{menu_id} [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	res, err := h.menuService.Analytics(c.Request().Context(), c.Param("menu_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
