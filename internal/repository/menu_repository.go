package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostelfood/internal/model"
)

// MenuRepository defines menu persistence operations.
type MenuRepository interface {
	Create(ctx context.Context, menu *model.Menu) error
	FindByID(ctx context.Context, id string) (*model.Menu, error)
	// List returns all menus, newest date first.
	List(ctx context.Context) ([]model.Menu, error)
	ListPublishedByDates(ctx context.Context, dates []string) ([]model.Menu, error)
}

type menuRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *gorm.DB, timeout time.Duration) MenuRepository {
	return &menuRepository{db: db, timeout: timeout}
}

func (r *menuRepository) Create(ctx context.Context, menu *model.Menu) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return gormErr(r.db.WithContext(ctx).Create(menu).Error)
}

func (r *menuRepository) FindByID(ctx context.Context, id string) (*model.Menu, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var menu model.Menu
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, gormErr(err)
	}
	return &menu, nil
}

func (r *menuRepository) List(ctx context.Context) ([]model.Menu, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	menus := make([]model.Menu, 0)
	if err := r.db.WithContext(ctx).Order("date desc").Find(&menus).Error; err != nil {
		return nil, gormErr(err)
	}
	return menus, nil
}

func (r *menuRepository) ListPublishedByDates(ctx context.Context, dates []string) ([]model.Menu, error) {
	menus := make([]model.Menu, 0)
	if len(dates) == 0 {
		return menus, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	err := r.db.WithContext(ctx).
		Where("status = ? AND date IN ?", model.MenuStatusPublished, dates).
		Find(&menus).Error
	if err != nil {
		return nil, gormErr(err)
	}
	return menus, nil
}
