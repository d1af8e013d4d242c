package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dverano/tasklist-be/internal/apperror"
	"github.com/dverano/tasklist-be/internal/auth"
	"github.com/dverano/tasklist-be/internal/models"
)

// storageTimeout bounds every database call made by the services.
const storageTimeout = 5 * time.Second

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
}

// UserService provides registration and credential verification. Usernames
// are compared case-sensitively; uniqueness is enforced by the users table's
// UNIQUE constraint, not by a pre-check.
type UserService struct {
	db     *sql.DB
	hasher *auth.PasswordHasher
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, hasher *auth.PasswordHasher, events EventServiceProvider) *UserService {
	return &UserService{db: db, hasher: hasher, events: events}
}

// Register creates a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, apperror.NewValidation("username and password are required")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, apperror.NewInternal("failed to hash password", err)
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)", username, hashed)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, apperror.NewConflict("user already exists", err)
		}
		return models.User{}, apperror.NewDatabase("failed to create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, apperror.NewDatabase("failed to create user", err)
	}

	user := models.User{ID: id, Username: username}
	s.recordEvent(ctx, "user.registered", "registered user "+username, &user.ID)
	return user, nil
}

// Authenticate verifies a user's credentials and returns the user without its
// password hash.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, apperror.NewValidation("username and password are required")
	}

	user, err := s.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperror.NewAuth("user not found")
		}
		return models.User{}, apperror.NewDatabase("failed to look up user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, apperror.NewAuth("incorrect password")
	}

	s.recordEvent(ctx, "user.login", "user "+username+" logged in", &user.ID)

	// Don't hand the hash around after verification
	user.PasswordHash = ""
	return user, nil
}

// findByUsername retrieves a user including the password hash.
func (s *UserService) findByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// recordEvent writes an audit event best-effort; a failed write is logged and
// never fails the request that triggered it.
func (s *UserService) recordEvent(ctx context.Context, eventType, message string, userID *int64) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, eventType, "info", message, userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
