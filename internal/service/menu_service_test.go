package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
	"hostelfood/internal/window"
)

type menuMocks struct {
	items      *MockMenuItemRepository
	menus      *MockMenuRepository
	selections *MockSelectionRepository
}

func newTestMenuService() (MenuService, menuMocks) {
	m := menuMocks{
		items:      new(MockMenuItemRepository),
		menus:      new(MockMenuRepository),
		selections: new(MockSelectionRepository),
	}
	now := func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return NewMenuService(m.items, m.menus, m.selections, window.AlwaysOpen{Now: now}), m
}

func TestMenuService_Analytics(t *testing.T) {
	svc, m := newTestMenuService()
	menu := &model.Menu{ID: "m1", ItemIDs: []string{"A", "B", "C"}, Status: model.MenuStatusPublished}
	m.menus.On("FindByID", mock.Anything, "m1").Return(menu, nil)
	m.selections.On("ListByMenu", mock.Anything, "m1").Return([]model.UserSelection{
		{UserID: "u1", SelectedItemIDs: []string{"A"}},
		{UserID: "u2", SelectedItemIDs: []string{"A", "B"}},
		{UserID: "u3", SelectedItemIDs: []string{"B", "C"}},
	}, nil)
	m.items.On("FindByIDs", mock.Anything, []string{"A", "B", "C"}).Return([]model.MenuItem{
		{ID: "A", Name: "Idli", Category: model.CategoryVeg},
		{ID: "B", Name: "Omelette", Category: model.CategoryNonVeg},
	}, nil)

	got, err := svc.Analytics(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalUsers)
	assert.Equal(t, 3, got.TotalSelections)
	assert.Equal(t, []ItemStat{
		{ItemID: "A", ItemName: "Idli", Category: "veg", Count: 2, Percentage: 66.67},
		{ItemID: "B", ItemName: "Omelette", Category: "non-veg", Count: 2, Percentage: 66.67},
		// C was deleted from the catalog
		{ItemID: "C", ItemName: "Unknown", Category: "Unknown", Count: 1, Percentage: 33.33},
	}, got.Items)
}

func TestMenuService_AnalyticsNoSelections(t *testing.T) {
	svc, m := newTestMenuService()
	m.menus.On("FindByID", mock.Anything, "m1").Return(&model.Menu{ID: "m1", ItemIDs: []string{"A"}}, nil)
	m.selections.On("ListByMenu", mock.Anything, "m1").Return([]model.UserSelection{}, nil)
	m.items.On("FindByIDs", mock.Anything, []string{"A"}).Return([]model.MenuItem{}, nil)

	got, err := svc.Analytics(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalUsers)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 0.0, got.Items[0].Percentage)
}

func TestMenuService_AnalyticsMissingMenu(t *testing.T) {
	svc, m := newTestMenuService()
	m.menus.On("FindByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	_, err := svc.Analytics(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrMenuNotFound)
}

func TestMenuService_CreateMenu(t *testing.T) {
	svc, m := newTestMenuService()
	m.menus.On("Create", mock.Anything, mock.AnythingOfType("*model.Menu")).Return(nil)

	menu, err := svc.CreateMenu(context.Background(), MenuInput{Date: "2026-10-16", MealType: model.MealLunch, ItemIDs: []string{"x", "x"}})
	require.NoError(t, err)

	assert.Equal(t, model.MenuStatusPublished, menu.Status)
	assert.Equal(t, []string{"x", "x"}, menu.ItemIDs)
	require.NotNil(t, menu.SelectionStart)
	require.NotNil(t, menu.SelectionEnd)
	assert.Equal(t, 24*time.Hour, menu.SelectionEnd.Sub(*menu.SelectionStart))
}

func TestMenuService_DeleteMenuItem(t *testing.T) {
	svc, m := newTestMenuService()
	m.items.On("Delete", mock.Anything, "i1").Return(nil)
	m.items.On("Delete", mock.Anything, "ghost").Return(repository.ErrNotFound)

	assert.NoError(t, svc.DeleteMenuItem(context.Background(), "i1"))
	assert.ErrorIs(t, svc.DeleteMenuItem(context.Background(), "ghost"), apperrors.ErrMenuItemNotFound)
}
