package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
)

func TestTicketService_Create(t *testing.T) {
	tickets := new(MockTicketRepository)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)
	svc := NewTicketService(tickets, new(MockUserRepository))

	ticket, err := svc.Create(context.Background(), &model.User{ID: "s1"}, TicketInput{
		Category:    "Food Quality",
		Urgency:     model.UrgencyMedium,
		Description: "Too salty",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", ticket.UserID)
	assert.Equal(t, model.TicketStatusOpen, ticket.Status)
	assert.Equal(t, []string{}, ticket.Photos)
}

func TestTicketService_List(t *testing.T) {
	stored := []model.Ticket{
		{ID: "t2", UserID: "s2"},
		{ID: "t1", UserID: "s1"},
		{ID: "t0", UserID: "s1"},
	}

	t.Run("admin sees reporters", func(t *testing.T) {
		tickets, users := new(MockTicketRepository), new(MockUserRepository)
		tickets.On("List", mock.Anything).Return(stored, nil)
		users.On("FindByIDs", mock.Anything, []string{"s2", "s1"}).Return([]model.User{
			{ID: "s1", Name: "Asha", RoomNumber: strPtr("A-1")},
		}, nil)
		svc := NewTicketService(tickets, users)

		views, err := svc.List(context.Background(), &model.User{ID: "admin", Role: model.RoleAdmin})
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, "Unknown", *views[0].StudentName)
		assert.Equal(t, "N/A", *views[0].RoomNumber)
		assert.Equal(t, "Asha", *views[1].StudentName)
		assert.Equal(t, "A-1", *views[1].RoomNumber)
	})

	t.Run("student sees own", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("ListByUser", mock.Anything, "s1").Return(stored[1:], nil)
		svc := NewTicketService(tickets, new(MockUserRepository))

		views, err := svc.List(context.Background(), &model.User{ID: "s1", Role: model.RoleStudent})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Nil(t, views[0].StudentName)
		tickets.AssertNotCalled(t, "List", mock.Anything)
	})
}

func TestTicketService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        model.TicketStatus
		repoErr       error
		expectedError error
	}{
		{"closed", model.TicketStatusClosed, nil, nil},
		{"unknown ticket", model.TicketStatusClosed, repository.ErrNotFound, apperrors.ErrTicketNotFound},
		{"bad status", model.TicketStatus("resolved"), nil, apperrors.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := new(MockTicketRepository)
			tickets.On("UpdateStatus", mock.Anything, "t1", tt.status).Return(tt.repoErr).Maybe()
			svc := NewTicketService(tickets, new(MockUserRepository))

			err := svc.UpdateStatus(context.Background(), "t1", tt.status)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
