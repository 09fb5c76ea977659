package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"hostelfood/internal/db"
	apperrors "hostelfood/internal/errors"
)

var (
	// ErrNotFound is returned when no record matched.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejected a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Repositories bundles one repository per collection.
type Repositories struct {
	Users      UserRepository
	MenuItems  MenuItemRepository
	Menus      MenuRepository
	Selections SelectionRepository
	Tickets    TicketRepository
}

// New builds the repositories for the backend held by store. Every call is
// bounded by timeout.
func New(store *db.Store, timeout time.Duration) Repositories {
	if store.Mongo != nil {
		return NewMongoRepositories(store.Mongo, timeout)
	}
	return NewGormRepositories(store.Gorm, timeout)
}

// NewGormRepositories builds GORM-backed repositories.
func NewGormRepositories(gdb *gorm.DB, timeout time.Duration) Repositories {
	return Repositories{
		Users:      NewUserRepository(gdb, timeout),
		MenuItems:  NewMenuItemRepository(gdb, timeout),
		Menus:      NewMenuRepository(gdb, timeout),
		Selections: NewSelectionRepository(gdb, timeout),
		Tickets:    NewTicketRepository(gdb, timeout),
	}
}

// NewMongoRepositories builds MongoDB-backed repositories.
func NewMongoRepositories(mdb *mongo.Database, timeout time.Duration) Repositories {
	return Repositories{
		Users:      NewMongoUserRepository(mdb, timeout),
		MenuItems:  NewMongoMenuItemRepository(mdb, timeout),
		Menus:      NewMongoMenuRepository(mdb, timeout),
		Selections: NewMongoSelectionRepository(mdb, timeout),
		Tickets:    NewMongoTicketRepository(mdb, timeout),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrDependencyUnavailable, err)
}

// gormErr translates GORM and driver errors into repository errors.
func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, driver.ErrBadConn):
		return unavailable(err)
	default:
		return err
	}
}

// mongoErr translates mongo-driver errors into repository errors.
func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		return unavailable(err)
	default:
		return err
	}
}
