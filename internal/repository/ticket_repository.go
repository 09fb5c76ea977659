package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostelfood/internal/model"
)

// TicketRepository defines ticket persistence operations.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	// List returns every ticket, newest first.
	List(ctx context.Context) ([]model.Ticket, error)
	// ListByUser returns the user's tickets, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Ticket, error)
	// UpdateStatus returns ErrNotFound only when no ticket has the id.
	UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error
}

type ticketRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *gorm.DB, timeout time.Duration) TicketRepository {
	return &ticketRepository{db: db, timeout: timeout}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return gormErr(r.db.WithContext(ctx).Create(ticket).Error)
}

func (r *ticketRepository) List(ctx context.Context) ([]model.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	tickets := make([]model.Ticket, 0)
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&tickets).Error; err != nil {
		return nil, gormErr(err)
	}
	return tickets, nil
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	tickets := make([]model.Ticket, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, gormErr(err)
	}
	return tickets, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return gormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return exists(ctx, r.db, &model.Ticket{}, id)
	}
	return nil
}
