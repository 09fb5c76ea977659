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
)

const (
	unknownStudent = "Unknown"
	unknownRoom    = "N/A"
)

// TicketInput carries the fields of a new ticket.
type TicketInput struct {
	Category    string
	SubCategory *string
	Urgency     model.Urgency
	Description string
	Photos      []string
}

// TicketView is a ticket as listed. Reporter details are filled in for admins only.
type TicketView struct {
	model.Ticket
	StudentName *string `json:"student_name,omitempty"`
	RoomNumber  *string `json:"room_number,omitempty"`
}

// TicketService handles support tickets.
type TicketService interface {
	Create(ctx context.Context, user *model.User, in TicketInput) (*model.Ticket, error)
	List(ctx context.Context, user *model.User) ([]TicketView, error)
	UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error
}

type ticketService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	now     func() time.Time
}

// NewTicketService creates a new ticket service.
func NewTicketService(tickets repository.TicketRepository, users repository.UserRepository) TicketService {
	return &ticketService{tickets: tickets, users: users, now: time.Now}
}

func (s *ticketService) Create(ctx context.Context, user *model.User, in TicketInput) (*model.Ticket, error) {
	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}
	ticket := &model.Ticket{
		UserID:      user.ID,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Urgency:     in.Urgency,
		Description: in.Description,
		Photos:      photos,
		Status:      model.TicketStatusOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	metrics.TicketsCreated.WithLabelValues(string(ticket.Urgency)).Inc()
	return ticket, nil
}

// List returns every ticket with reporter details for admins, and only the
// caller's own tickets otherwise. Both are newest first.
func (s *ticketService) List(ctx context.Context, user *model.User) ([]TicketView, error) {
	if !user.Role.IsAdmin() {
		tickets, err := s.tickets.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("list tickets: %w", err)
		}
		views := make([]TicketView, 0, len(tickets))
		for _, t := range tickets {
			views = append(views, TicketView{Ticket: t})
		}
		return views, nil
	}

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	seen := make(map[string]struct{}, len(tickets))
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.UserID]; !ok {
			seen[t.UserID] = struct{}{}
			ids = append(ids, t.UserID)
		}
	}
	reporters, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find reporters: %w", err)
	}
	byID := make(map[string]model.User, len(reporters))
	for _, u := range reporters {
		byID[u.ID] = u
	}

	views := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		name, room := unknownStudent, unknownRoom
		if u, ok := byID[t.UserID]; ok {
			name = u.Name
			if u.RoomNumber != nil {
				room = *u.RoomNumber
			}
		}
		views = append(views, TicketView{Ticket: t, StudentName: &name, RoomNumber: &room})
	}
	return views, nil
}

// UpdateStatus sets a ticket's status. Setting the status it already has succeeds.
func (s *ticketService) UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error {
	if !status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrTicketNotFound
		}
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}
