package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"profileservice/internal/account"
	"profileservice/internal/domain"
	"profileservice/internal/mapper"
	"profileservice/internal/repository"
	"profileservice/internal/validation"
)

// Validator is the slice of the validation package the orchestrator needs.
type Validator interface {
	ValidateNewUser(ctx context.Context, newUser domain.NewUser) []validation.Violation
	ValidateUser(user domain.User) []validation.Violation
}

// ProfileService coordinates the account service and the local profile store.
// Every mutating operation is a small saga: remote write first, local commit
// second, with a best-effort compensating call when the second step fails.
// Failures cross this boundary as nil/false results; detail goes to the log.
type ProfileService interface {
	CreateUser(ctx context.Context, newUser domain.NewUser) *domain.User
	UpdateUser(ctx context.Context, user domain.User) UpdateResult
	DeleteUserProfile(ctx context.Context, userID int64) bool
	DeleteUser(ctx context.Context, userID int64) bool
	UserIDExists(ctx context.Context, userID int64) bool
	EmailExists(ctx context.Context, email string) bool
	UsernameExists(ctx context.Context, username string) bool
	GetAllUsers(ctx context.Context) []domain.User
	GetUserByUsernameOrEmail(ctx context.Context, key string) *domain.User
	GetUserByID(ctx context.Context, userID int64) *domain.User
	IsAlive() bool
}

type profileService struct {
	accounts  account.Client
	profiles  repository.ProfileRepository
	validator Validator
	logger    *logrus.Logger
}

func NewProfileService(accounts account.Client, profiles repository.ProfileRepository, validator Validator, logger *logrus.Logger) ProfileService {
	if logger == nil {
		logger = logrus.New()
	}
	return &profileService{
		accounts:  accounts,
		profiles:  profiles,
		validator: validator,
		logger:    logger,
	}
}

// CreateUser creates the account remotely, then commits the matching profile
// locally. A failed remote create aborts with nothing touched. A failed local
// commit leaves an orphaned account behind: that window is a known limit of
// this design, repaired reactively by UpdateUser when it next sees the id.
func (s *profileService) CreateUser(ctx context.Context, newUser domain.NewUser) *domain.User {
	s.logger.Infof("create user request for username %q", newUser.Username)

	if violations := s.validator.ValidateNewUser(ctx, newUser); len(violations) > 0 {
		s.logViolations("create user", violations)
		return nil
	}

	acc, err := s.accounts.CreateAccount(ctx, mapper.NewUserToAccountPayload(newUser))
	if err != nil || acc == nil {
		s.logger.Warnf("create user: account creation for username %q failed: %v", newUser.Username, err)
		return nil
	}
	state := sagaRemoteCommitted

	tx, err := s.profiles.Begin(ctx)
	if err != nil {
		s.logger.Errorf("create user: begin unit of work failed: %v", err)
		s.logger.Warnf("create user: account %d exists without a profile (saga state %s)", acc.ID, state)
		return nil
	}
	defer tx.Rollback()

	profile := mapper.NewUserToProfile(newUser)
	profile.UserID = acc.ID

	if err := tx.Add(ctx, &profile); err != nil {
		s.logger.Errorf("create user: add profile %d failed: %v", acc.ID, err)
		s.logger.Warnf("create user: account %d exists without a profile (saga state %s)", acc.ID, state)
		return nil
	}
	if err := tx.Commit(); err != nil {
		s.logger.Errorf("create user: commit profile %d failed: %v", acc.ID, err)
		s.logger.Warnf("create user: account %d exists without a profile (saga state %s)", acc.ID, state)
		return nil
	}
	state = sagaLocalCommitted

	s.logger.Infof("create user: user %d created (saga state %s)", acc.ID, state)
	return mapper.ProfileToUser(&profile)
}

// UpdateUser updates the account remotely, then overwrites the local profile
// inside one unit of work. If the local commit fails the remote account is
// restored from the snapshot taken before the update; when that compensating
// call also fails the two stores are left divergent and the result says so.
func (s *profileService) UpdateUser(ctx context.Context, user domain.User) UpdateResult {
	s.logger.Infof("update user request for id %d", user.ID)

	if violations := s.validator.ValidateUser(user); len(violations) > 0 {
		s.logViolations("update user", violations)
		return UpdateFailed
	}

	exists, err := s.accounts.AccountExists(ctx, user.ID)
	if err != nil {
		s.logger.Warnf("update user: account existence check for id %d failed: %v", user.ID, err)
		return UpdateFailed
	}
	if !exists {
		s.logger.Warnf("update user: id %d not found in account service", user.ID)
		if !s.UserIDExists(ctx, user.ID) {
			return UpdateFailed
		}
		// The account is gone but a local profile lingers. Repair the drift
		// by deleting the orphan; the update itself still fails.
		if s.DeleteUserProfile(ctx, user.ID) {
			s.logger.Warnf("update user: orphaned profile %d deleted", user.ID)
		}
		return UpdateFailed
	}

	// Snapshot the current account for a possible rollback.
	oldAccount, err := s.accounts.GetAccountByID(ctx, user.ID)
	if err != nil || oldAccount == nil {
		s.logger.Warnf("update user: fetching account %d for rollback failed: %v", user.ID, err)
		return UpdateFailed
	}

	ok, err := s.accounts.UpdateAccount(ctx, mapper.UserToAccount(user))
	if err != nil || !ok {
		s.logger.Errorf("update user: account update for id %d failed: %v", user.ID, err)
		return UpdateFailed
	}
	s.logger.Debugf("update user: id %d entered saga state %s", user.ID, sagaRemoteCommitted)

	result, state := s.commitProfileUpdate(ctx, user, *oldAccount)
	if result == UpdateOK {
		s.logger.Infof("update user: user %d updated (saga state %s)", user.ID, state)
	}
	return result
}

func (s *profileService) commitProfileUpdate(ctx context.Context, user domain.User, oldAccount account.Account) (UpdateResult, sagaState) {
	tx, err := s.profiles.Begin(ctx)
	if err != nil {
		s.logger.Errorf("update user: begin unit of work failed: %v", err)
		return s.rollbackAccount(ctx, oldAccount)
	}
	defer tx.Rollback()

	profile, err := tx.FindByID(ctx, user.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Account exists but the profile never did; recreate it from the
		// incoming data rather than failing the update.
		fresh := domain.Profile{}
		mapper.ApplyUserToProfile(user, &fresh)
		if err := tx.Add(ctx, &fresh); err != nil {
			s.logger.Errorf("update user: add missing profile %d failed: %v", user.ID, err)
			return s.rollbackAccount(ctx, oldAccount)
		}
	case err != nil:
		s.logger.Errorf("update user: find profile %d failed: %v", user.ID, err)
		return s.rollbackAccount(ctx, oldAccount)
	default:
		mapper.ApplyUserToProfile(user, profile)
		if err := tx.Update(ctx, profile); err != nil {
			s.logger.Errorf("update user: update profile %d failed: %v", user.ID, err)
			return s.rollbackAccount(ctx, oldAccount)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Errorf("update user: commit profile %d failed: %v", user.ID, err)
		return s.rollbackAccount(ctx, oldAccount)
	}
	return UpdateOK, sagaLocalCommitted
}

func (s *profileService) rollbackAccount(ctx context.Context, oldAccount account.Account) (UpdateResult, sagaState) {
	state := sagaRollingBack
	ok, err := s.accounts.UpdateAccount(ctx, oldAccount)
	if err != nil || !ok {
		state = sagaRollbackFailed
		s.logger.Errorf("update user: rollback of account %d failed, stores are inconsistent (saga state %s): %v", oldAccount.ID, state, err)
		return UpdateFailedInconsistent, state
	}
	state = sagaRolledBack
	s.logger.Warnf("update user: account %d restored after failed local commit (saga state %s)", oldAccount.ID, state)
	return UpdateFailed, state
}

// DeleteUserProfile removes the local profile only, never touching the account
// service. Also used as the repair action when UpdateUser finds an orphan.
func (s *profileService) DeleteUserProfile(ctx context.Context, userID int64) bool {
	s.logger.Infof("delete profile request for id %d", userID)

	tx, err := s.profiles.Begin(ctx)
	if err != nil {
		s.logger.Errorf("delete profile: begin unit of work failed: %v", err)
		return false
	}
	defer tx.Rollback()

	deleted, err := tx.Delete(ctx, userID)
	if err != nil {
		s.logger.Errorf("delete profile: delete %d failed: %v", userID, err)
		return false
	}
	if !deleted {
		s.logger.Warnf("delete profile: id %d not found", userID)
		return false
	}
	if err := tx.Commit(); err != nil {
		s.logger.Errorf("delete profile: commit for %d failed: %v", userID, err)
		return false
	}
	return true
}

// DeleteUser deletes the account remotely and the profile locally. The result
// is the AND of the two outcomes, so a half-deletion reports failure even
// though one side's data is gone; the log records which side failed.
func (s *profileService) DeleteUser(ctx context.Context, userID int64) bool {
	s.logger.Infof("delete user request for id %d", userID)

	accountDeleted := false
	exists, err := s.accounts.AccountExists(ctx, userID)
	switch {
	case err != nil:
		s.logger.Warnf("delete user: account existence check for id %d failed: %v", userID, err)
	case !exists:
		s.logger.Warnf("delete user: id %d not found in account service", userID)
	default:
		accountDeleted, err = s.accounts.DeleteAccount(ctx, userID)
		if err != nil || !accountDeleted {
			s.logger.Warnf("delete user: account deletion for id %d failed: %v", userID, err)
		}
	}

	profileDeleted := s.DeleteUserProfile(ctx, userID)

	return accountDeleted && profileDeleted
}

func (s *profileService) UserIDExists(ctx context.Context, userID int64) bool {
	s.logger.Infof("profile existence check for id %d", userID)
	_, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Errorf("profile existence check for id %d failed: %v", userID, err)
		}
		return false
	}
	return true
}

func (s *profileService) EmailExists(ctx context.Context, email string) bool {
	s.logger.Infof("profile existence check for email %q", email)
	_, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Errorf("profile existence check for email %q failed: %v", email, err)
		}
		return false
	}
	return true
}

func (s *profileService) UsernameExists(ctx context.Context, username string) bool {
	s.logger.Infof("profile existence check for username %q", username)
	_, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Errorf("profile existence check for username %q failed: %v", username, err)
		}
		return false
	}
	return true
}

func (s *profileService) GetAllUsers(ctx context.Context) []domain.User {
	s.logger.Info("get all users request")
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		s.logger.Errorf("get all users failed: %v", err)
		return nil
	}
	users := make([]domain.User, len(profiles))
	for i := range profiles {
		users[i] = *mapper.ProfileToUser(&profiles[i])
	}
	return users
}

// GetUserByUsernameOrEmail tries a case-insensitive username match first and
// falls back to an exact email match.
func (s *profileService) GetUserByUsernameOrEmail(ctx context.Context, key string) *domain.User {
	s.logger.Infof("get user request for username or email %q", key)

	profile, err := s.profiles.FindByUsername(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		profile, err = s.profiles.FindByEmail(ctx, key)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warnf("no user found with username or email %q", key)
		} else {
			s.logger.Errorf("get user by username or email %q failed: %v", key, err)
		}
		return nil
	}
	return mapper.ProfileToUser(profile)
}

func (s *profileService) GetUserByID(ctx context.Context, userID int64) *domain.User {
	s.logger.Infof("get user request for id %d", userID)

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warnf("no user found with id %d", userID)
		} else {
			s.logger.Errorf("get user by id %d failed: %v", userID, err)
		}
		return nil
	}
	return mapper.ProfileToUser(profile)
}

func (s *profileService) IsAlive() bool {
	return true
}

func (s *profileService) logViolations(op string, violations []validation.Violation) {
	for _, violation := range violations {
		s.logger.Warnf("%s: %s", op, violation)
	}
}
