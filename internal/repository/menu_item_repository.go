package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostelfood/internal/model"
)

// MenuItemRepository defines menu item persistence operations.
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error)
	List(ctx context.Context) ([]model.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type menuItemRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewMenuItemRepository creates a new menu item repository.
func NewMenuItemRepository(db *gorm.DB, timeout time.Duration) MenuItemRepository {
	return &menuItemRepository{db: db, timeout: timeout}
}

// Create creates a new menu item.
func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return gormErr(r.db.WithContext(ctx).Create(item).Error)
}

// FindByID finds a menu item by ID.
func (r *menuItemRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var item model.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, gormErr(err)
	}
	return &item, nil
}

// FindByIDs returns the items whose ids are listed. Unknown ids are skipped.
func (r *menuItemRepository) FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	items := make([]model.MenuItem, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, gormErr(err)
	}
	return items, nil
}

// List returns every menu item in storage order.
func (r *menuItemRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	items := make([]model.MenuItem, 0)
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, gormErr(err)
	}
	return items, nil
}

// Delete removes a menu item. Menus and selections referencing it are left alone.
func (r *menuItemRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MenuItem{})
	if res.Error != nil {
		return gormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
