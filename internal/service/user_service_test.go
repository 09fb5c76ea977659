package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hostelfood/internal/cache"
	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
)

func TestUserService_GetUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Name: "A"}, nil)
	repo.On("FindByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)
	svc := NewUserService(repo, cache.New("", "", 0), time.Minute)

	user, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)

	_, err = svc.GetUser(context.Background(), "gone")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name          string
		update        model.ProfileUpdate
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:   "name and room",
			update: model.ProfileUpdate{Name: strPtr("New"), RoomNumber: strPtr("B-2")},
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(nil)
				m.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Name: "New", RoomNumber: strPtr("B-2")}, nil)
			},
		},
		{
			name:          "nothing provided",
			update:        model.ProfileUpdate{},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrNoFieldsProvided,
		},
		{
			name:          "only empty strings",
			update:        model.ProfileUpdate{Name: strPtr(""), ProfilePicture: strPtr("")},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrNoFieldsProvided,
		},
		{
			name:   "user vanished",
			update: model.ProfileUpdate{Name: strPtr("New")},
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(repository.ErrNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewUserService(repo, cache.New("", "", 0), time.Minute)

			user, err := svc.UpdateProfile(context.Background(), "u1", tt.update)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "New", user.Name)
			}
			repo.AssertExpectations(t)
		})
	}
}
