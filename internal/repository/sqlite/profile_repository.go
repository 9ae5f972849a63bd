package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"profileservice/internal/domain"
	"profileservice/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id INTEGER PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	first_name TEXT NOT NULL,
	surname TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	phone_number TEXT NOT NULL DEFAULT '',
	picture_url TEXT NOT NULL DEFAULT '',
	zip_code TEXT NOT NULL DEFAULT '',
	personal_identity_number TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

const profileColumns = `user_id, username, email, first_name, surname, address, city, phone_number, picture_url, zip_code, personal_identity_number, created_at`

// ProfileRepository persists profile records in sqlite. Mutations run through
// profileTx so a saga's local writes commit atomically.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE LOWER(username) = LOWER(?)`,
		username,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE email = ?`,
		email,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Begin(ctx context.Context) (repository.ProfileTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin profile tx: %w", err)
	}
	return &profileTx{tx: tx}, nil
}

type profileTx struct {
	tx   *sql.Tx
	done bool
}

func (t *profileTx) FindByID(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := t.tx.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (t *profileTx) Add(ctx context.Context, profile *domain.Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	_, err := t.tx.ExecContext(ctx, `
INSERT INTO profiles (`+profileColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.Username,
		profile.Email,
		profile.FirstName,
		profile.Surname,
		profile.Address,
		profile.City,
		profile.PhoneNumber,
		profile.PictureURL,
		profile.ZipCode,
		profile.PersonalIdentityNumber,
		profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (t *profileTx) Update(ctx context.Context, profile *domain.Profile) error {
	res, err := t.tx.ExecContext(ctx, `
UPDATE profiles
SET username = ?, email = ?, first_name = ?, surname = ?, address = ?, city = ?,
    phone_number = ?, picture_url = ?, zip_code = ?, personal_identity_number = ?, created_at = ?
WHERE user_id = ?`,
		profile.Username,
		profile.Email,
		profile.FirstName,
		profile.Surname,
		profile.Address,
		profile.City,
		profile.PhoneNumber,
		profile.PictureURL,
		profile.ZipCode,
		profile.PersonalIdentityNumber,
		profile.CreatedAt,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (t *profileTx) Delete(ctx context.Context, userID int64) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
DELETE FROM profiles
WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete profile rows affected: %w", err)
	}
	return affected > 0, nil
}

func (t *profileTx) Commit() error {
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit profile tx: %w", err)
	}
	return nil
}

func (t *profileTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback profile tx: %w", err)
	}
	return nil
}

func scanProfile(row interface {
	Scan(dest ...any) error
}) (*domain.Profile, error) {
	var profile domain.Profile
	if err := row.Scan(
		&profile.UserID,
		&profile.Username,
		&profile.Email,
		&profile.FirstName,
		&profile.Surname,
		&profile.Address,
		&profile.City,
		&profile.PhoneNumber,
		&profile.PictureURL,
		&profile.ZipCode,
		&profile.PersonalIdentityNumber,
		&profile.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &profile, nil
}
