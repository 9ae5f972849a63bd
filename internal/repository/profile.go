package repository

import (
	"context"
	"errors"

	"profileservice/internal/domain"
)

// ErrNotFound is returned by lookups when no profile matches.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository defines persistence operations for profile records.
// Reads go straight through; mutations happen inside a ProfileTx so that a
// whole saga step commits or fails as one.
type ProfileRepository interface {
	Init(ctx context.Context) error
	FindByID(ctx context.Context, userID int64) (*domain.Profile, error)
	// FindByUsername compares case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.Profile, error)
	// FindByEmail is an exact match.
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Begin(ctx context.Context) (ProfileTx, error)
}

// ProfileTx is a scoped unit of work. Commit applies all pending changes
// atomically or none at all; Rollback is safe to call after Commit.
type ProfileTx interface {
	FindByID(ctx context.Context, userID int64) (*domain.Profile, error)
	Add(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, userID int64) (bool, error)
	Commit() error
	Rollback() error
}
