package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/metrics"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
	"hostelfood/internal/window"
)

// HistoryLimit caps the number of selections returned by BookingHistory.
const HistoryLimit = 100

// StudentMenu is a published menu as seen by one student.
type StudentMenu struct {
	model.Menu
	Items           []model.MenuItem `json:"items"`
	SelectionWindow window.Result    `json:"selection_window"`
	UserSelected    bool             `json:"user_selected"`
	SelectedItemIDs []string         `json:"selected_item_ids"`
}

// BookingEntry is a past selection with its menu and chosen items resolved.
type BookingEntry struct {
	model.UserSelection
	Menu  *model.Menu      `json:"menu"`
	Items []model.MenuItem `json:"items"`
}

// SelectionResult reports whether a selection was created or replaced.
type SelectionResult struct {
	Message   string               `json:"message"`
	Selection *model.UserSelection `json:"selection"`
}

// StudentService covers menu browsing, selection and booking history.
type StudentService interface {
	ListMenus(ctx context.Context, user *model.User) ([]StudentMenu, error)
	SubmitSelection(ctx context.Context, user *model.User, menuID string, itemIDs []string) (*SelectionResult, error)
	BookingHistory(ctx context.Context, user *model.User) ([]BookingEntry, error)
}

type studentService struct {
	items      repository.MenuItemRepository
	menus      repository.MenuRepository
	selections repository.SelectionRepository
	policy     window.Policy
	now        func() time.Time
}

// NewStudentService creates a new student service. A nil now uses time.Now.
func NewStudentService(
	items repository.MenuItemRepository,
	menus repository.MenuRepository,
	selections repository.SelectionRepository,
	policy window.Policy,
	now func() time.Time,
) StudentService {
	if now == nil {
		now = time.Now
	}
	return &studentService{
		items:      items,
		menus:      menus,
		selections: selections,
		policy:     policy,
		now:        now,
	}
}

// ListMenus returns the published menus dated today or tomorrow, UTC.
func (s *studentService) ListMenus(ctx context.Context, user *model.User) ([]StudentMenu, error) {
	today := s.now().UTC()
	dates := []string{
		today.Format(model.DateLayout),
		today.AddDate(0, 0, 1).Format(model.DateLayout),
	}

	menus, err := s.menus.ListPublishedByDates(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	result := make([]StudentMenu, 0, len(menus))
	for _, menu := range menus {
		items, err := s.items.FindByIDs(ctx, menu.ItemIDs)
		if err != nil {
			return nil, fmt.Errorf("find menu items: %w", err)
		}

		entry := StudentMenu{
			Menu:            menu,
			Items:           items,
			SelectionWindow: s.policy.Window(menu.MealType, menu.Date),
			SelectedItemIDs: []string{},
		}

		sel, err := s.selections.FindByUserAndMenu(ctx, user.ID, menu.ID)
		switch {
		case err == nil:
			entry.UserSelected = true
			if sel.SelectedItemIDs != nil {
				entry.SelectedItemIDs = sel.SelectedItemIDs
			}
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("find selection: %w", err)
		}
		result = append(result, entry)
	}
	return result, nil
}

// SubmitSelection creates the user's selection for a menu, or replaces the
// item list of the existing one.
func (s *studentService) SubmitSelection(ctx context.Context, user *model.User, menuID string, itemIDs []string) (*SelectionResult, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrMenuNotFound
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}

	win := s.policy.Window(menu.MealType, menu.Date)
	if !win.Allowed {
		metrics.SelectionsTotal.WithLabelValues("window_closed").Inc()
		return nil, &apperrors.WindowClosedError{Message: win.Message}
	}

	if itemIDs == nil {
		itemIDs = []string{}
	}
	sel := &model.UserSelection{
		UserID:          user.ID,
		MenuID:          menu.ID,
		SelectedItemIDs: itemIDs,
		CreatedAt:       s.now().UTC(),
	}
	created, err := s.selections.Upsert(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}

	if created {
		metrics.SelectionsTotal.WithLabelValues("created").Inc()
		return &SelectionResult{Message: "Selection created", Selection: sel}, nil
	}
	metrics.SelectionsTotal.WithLabelValues("updated").Inc()
	return &SelectionResult{Message: "Selection updated", Selection: sel}, nil
}

// BookingHistory lists the user's selections newest first. Selections whose
// menu no longer exists are skipped.
func (s *studentService) BookingHistory(ctx context.Context, user *model.User) ([]BookingEntry, error) {
	sels, err := s.selections.ListByUser(ctx, user.ID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	result := make([]BookingEntry, 0, len(sels))
	for _, sel := range sels {
		menu, err := s.menus.FindByID(ctx, sel.MenuID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find menu: %w", err)
		}

		items, err := s.items.FindByIDs(ctx, sel.SelectedItemIDs)
		if err != nil {
			return nil, fmt.Errorf("find menu items: %w", err)
		}
		result = append(result, BookingEntry{UserSelection: sel, Menu: menu, Items: items})
	}
	return result, nil
}
