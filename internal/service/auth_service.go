package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hostelfood/internal/auth"
	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/metrics"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	HostelID string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	hasher *auth.PasswordHasher
	now    func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, hasher *auth.PasswordHasher) AuthService {
	return &authService{
		users:  users,
		jwt:    jwt,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates a student account and signs a token for it.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{"op": "register", "email": in.Email})

	_, err := s.users.FindByEmail(ctx, in.Email)
	lookup := time.Since(start)
	switch {
	case err == nil:
		s.fail(log, "register", apperrors.ErrDuplicateEmail, start)
		return nil, apperrors.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		s.fail(log, "register", err, start)
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashStart := time.Now()
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			s.fail(log, "register", apperrors.ErrPasswordTooLong, start)
			return nil, apperrors.ErrPasswordTooLong
		}
		return nil, err
	}
	hashing := time.Since(hashStart)

	// The id is fixed here so the token never depends on the store assigning one.
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         model.RoleStudent,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if in.HostelID != "" {
		hostel := in.HostelID
		user.HostelID = &hostel
	}

	insertStart := time.Now()
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.fail(log, "register", apperrors.ErrDuplicateEmail, start)
			return nil, apperrors.ErrDuplicateEmail
		}
		s.fail(log, "register", err, start)
		return nil, fmt.Errorf("create user: %w", err)
	}
	insert := time.Since(insertStart)

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"lookup_ms": lookup.Milliseconds(),
		"hash_ms":   hashing.Milliseconds(),
		"insert_ms": insert.Milliseconds(),
		"total_ms":  time.Since(start).Milliseconds(),
	}).Info("user registered")
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords fail the same way.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{"op": "login", "email": email})

	user, err := s.users.FindByEmail(ctx, email)
	lookup := time.Since(start)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.fail(log, "login", apperrors.ErrInvalidCredentials, start)
			return nil, apperrors.ErrInvalidCredentials
		}
		s.fail(log, "login", err, start)
		return nil, fmt.Errorf("find user: %w", err)
	}

	verifyStart := time.Now()
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.fail(log, "login", apperrors.ErrInvalidCredentials, start)
		return nil, apperrors.ErrInvalidCredentials
	}
	verify := time.Since(verifyStart)

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"lookup_ms": lookup.Milliseconds(),
		"verify_ms": verify.Milliseconds(),
		"total_ms":  time.Since(start).Milliseconds(),
	}).Info("user logged in")
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) fail(log *logrus.Entry, op string, err error, start time.Time) {
	metrics.AuthAttempts.WithLabelValues(op, "failure").Inc()
	log.WithError(err).WithField("total_ms", time.Since(start).Milliseconds()).Warn(op + " failed")
}
