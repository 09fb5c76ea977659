package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hostelfood/internal/cache"
	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
)

// UserService exposes user lookups and profile updates.
type UserService interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration) UserService {
	return &userService{repo: repo, cache: cache, ttl: ttl}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

// GetUser returns the public record of a user. The password hash is never
// cached, so the result must not be used for credential checks.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, s.ttl)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	if len(update.Fields()) == 0 {
		return nil, apperrors.ErrNoFieldsProvided
	}

	if err := s.repo.UpdateProfile(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return user, nil
}
