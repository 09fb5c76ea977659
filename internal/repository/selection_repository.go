package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hostelfood/internal/model"
)

// SelectionRepository defines user selection persistence operations.
type SelectionRepository interface {
	// Upsert stores sel as the only selection of (sel.UserID, sel.MenuID). An
	// existing selection keeps its id and created_at and gets sel's item ids.
	// On return sel holds the stored document.
	Upsert(ctx context.Context, sel *model.UserSelection) (created bool, err error)
	FindByUserAndMenu(ctx context.Context, userID, menuID string) (*model.UserSelection, error)
	// ListByUser returns up to limit selections of the user, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.UserSelection, error)
	ListByMenu(ctx context.Context, menuID string) ([]model.UserSelection, error)
}

type selectionRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewSelectionRepository creates a new selection repository.
func NewSelectionRepository(db *gorm.DB, timeout time.Duration) SelectionRepository {
	return &selectionRepository{db: db, timeout: timeout}
}

func (r *selectionRepository) Upsert(ctx context.Context, sel *model.UserSelection) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var (
		created bool
		err     error
	)
	// a concurrent insert for the same pair trips the unique index once;
	// the second pass then finds the row and updates it
	for attempt := 0; attempt < 2; attempt++ {
		created, err = r.upsertOnce(ctx, sel)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		sel.ID = ""
	}
	return created, gormErr(err)
}

func (r *selectionRepository) upsertOnce(ctx context.Context, sel *model.UserSelection) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.UserSelection
		err := tx.Where("user_id = ? AND menu_id = ?", sel.UserID, sel.MenuID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(sel).Error
		}
		if err != nil {
			return err
		}

		existing.SelectedItemIDs = sel.SelectedItemIDs
		if err := tx.Model(&existing).Select("selected_item_ids").Updates(&existing).Error; err != nil {
			return err
		}
		*sel = existing
		return nil
	})
	return created, err
}

func (r *selectionRepository) FindByUserAndMenu(ctx context.Context, userID, menuID string) (*model.UserSelection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var sel model.UserSelection
	err := r.db.WithContext(ctx).Where("user_id = ? AND menu_id = ?", userID, menuID).First(&sel).Error
	if err != nil {
		return nil, gormErr(err)
	}
	return &sel, nil
}

func (r *selectionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.UserSelection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	sels := make([]model.UserSelection, 0)
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sels).Error; err != nil {
		return nil, gormErr(err)
	}
	return sels, nil
}

func (r *selectionRepository) ListByMenu(ctx context.Context, menuID string) ([]model.UserSelection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	sels := make([]model.UserSelection, 0)
	if err := r.db.WithContext(ctx).Where("menu_id = ?", menuID).Find(&sels).Error; err != nil {
		return nil, gormErr(err)
	}
	return sels, nil
}
