package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
	"hostelfood/internal/window"
)

const unknownItem = "Unknown"

// MenuItemInput carries the fields of a new menu item.
type MenuItemInput struct {
	Name        string
	Category    model.Category
	MealType    model.MealType
	Description *string
	ImageURL    *string
}

// MenuInput carries the fields of a new menu.
type MenuInput struct {
	Date     string
	MealType model.MealType
	ItemIDs  []string
}

// ItemStat is one row of menu analytics.
type ItemStat struct {
	ItemID     string  `json:"item_id"`
	ItemName   string  `json:"item_name"`
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Analytics summarises the selections made for one menu.
type Analytics struct {
	Menu            *model.Menu `json:"menu"`
	TotalUsers      int         `json:"total_users"`
	TotalSelections int         `json:"total_selections"`
	Items           []ItemStat  `json:"items"`
}

// MenuService covers the admin side of the catalog: items, menus and analytics.
type MenuService interface {
	CreateMenuItem(ctx context.Context, in MenuItemInput) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	CreateMenu(ctx context.Context, in MenuInput) (*model.Menu, error)
	ListMenus(ctx context.Context) ([]model.Menu, error)
	Analytics(ctx context.Context, menuID string) (*Analytics, error)
}

type menuService struct {
	items      repository.MenuItemRepository
	menus      repository.MenuRepository
	selections repository.SelectionRepository
	policy     window.Policy
	now        func() time.Time
}

// NewMenuService creates a new menu service.
func NewMenuService(
	items repository.MenuItemRepository,
	menus repository.MenuRepository,
	selections repository.SelectionRepository,
	policy window.Policy,
) MenuService {
	return &menuService{
		items:      items,
		menus:      menus,
		selections: selections,
		policy:     policy,
		now:        time.Now,
	}
}

func (s *menuService) CreateMenuItem(ctx context.Context, in MenuItemInput) (*model.MenuItem, error) {
	item := &model.MenuItem{
		Name:        in.Name,
		Category:    in.Category,
		MealType:    in.MealType,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// DeleteMenuItem removes the item only; menus and selections keep their references.
func (s *menuService) DeleteMenuItem(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrMenuItemNotFound
		}
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

// CreateMenu publishes a menu immediately. Item ids are not checked against
// the catalog.
func (s *menuService) CreateMenu(ctx context.Context, in MenuInput) (*model.Menu, error) {
	win := s.policy.Window(in.MealType, in.Date)
	itemIDs := in.ItemIDs
	if itemIDs == nil {
		itemIDs = []string{}
	}
	menu := &model.Menu{
		Date:           in.Date,
		MealType:       in.MealType,
		ItemIDs:        itemIDs,
		Status:         model.MenuStatusPublished,
		SelectionStart: win.Start,
		SelectionEnd:   win.End,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.menus.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("create menu: %w", err)
	}
	return menu, nil
}

func (s *menuService) ListMenus(ctx context.Context) ([]model.Menu, error) {
	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}

// Analytics tallies how often each of the menu's items was selected.
// Percentages are relative to the number of selection documents.
func (s *menuService) Analytics(ctx context.Context, menuID string) (*Analytics, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrMenuNotFound
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}

	selections, err := s.selections.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	items, err := s.items.FindByIDs(ctx, menu.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	byID := make(map[string]model.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	counts := make(map[string]int)
	for _, sel := range selections {
		for _, id := range sel.SelectedItemIDs {
			counts[id]++
		}
	}

	total := len(selections)
	stats := make([]ItemStat, 0, len(menu.ItemIDs))
	for _, id := range menu.ItemIDs {
		stat := ItemStat{
			ItemID:   id,
			ItemName: unknownItem,
			Category: unknownItem,
			Count:    counts[id],
		}
		if item, ok := byID[id]; ok {
			stat.ItemName = item.Name
			stat.Category = string(item.Category)
		}
		if total > 0 {
			stat.Percentage = round2(float64(stat.Count) / float64(total) * 100)
		}
		stats = append(stats, stat)
	}

	return &Analytics{
		Menu:            menu,
		TotalUsers:      total,
		TotalSelections: total,
		Items:           stats,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
