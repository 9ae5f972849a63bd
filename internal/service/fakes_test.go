package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"profileservice/internal/account"
	"profileservice/internal/domain"
	"profileservice/internal/repository"
)

// fakeAccountClient is an in-memory stand-in for the remote account service.
type fakeAccountClient struct {
	accounts map[int64]account.Account
	nextID   int64

	failCreate       bool
	failUpdateAfter  int // fail every UpdateAccount call after this many succeeded
	updateCalls      int
	unreachable      bool
	lastCreatePasswd string
}

func newFakeAccountClient() *fakeAccountClient {
	return &fakeAccountClient{
		accounts: make(map[int64]account.Account),
		nextID:   42,
	}
}

var errUnreachable = errors.New("account service unreachable")

func (f *fakeAccountClient) CreateAccount(ctx context.Context, payload account.NewAccount) (*account.Account, error) {
	if f.unreachable {
		return nil, errUnreachable
	}
	if f.failCreate {
		return nil, errors.New("account creation rejected")
	}
	f.lastCreatePasswd = payload.Password
	acc := account.Account{
		ID:        f.nextID,
		Username:  payload.Username,
		Email:     payload.Email,
		Firstname: payload.Firstname,
		Surname:   payload.Surname,
	}
	f.nextID++
	f.accounts[acc.ID] = acc
	return &acc, nil
}

func (f *fakeAccountClient) AccountExists(ctx context.Context, id int64) (bool, error) {
	if f.unreachable {
		return false, errUnreachable
	}
	_, ok := f.accounts[id]
	return ok, nil
}

func (f *fakeAccountClient) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.unreachable {
		return false, errUnreachable
	}
	for _, acc := range f.accounts {
		if acc.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountClient) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.unreachable {
		return false, errUnreachable
	}
	for _, acc := range f.accounts {
		if acc.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountClient) GetAccountByID(ctx context.Context, id int64) (*account.Account, error) {
	if f.unreachable {
		return nil, errUnreachable
	}
	acc, ok := f.accounts[id]
	if !ok {
		return nil, errors.New("account not found")
	}
	return &acc, nil
}

func (f *fakeAccountClient) UpdateAccount(ctx context.Context, acc account.Account) (bool, error) {
	if f.unreachable {
		return false, errUnreachable
	}
	f.updateCalls++
	if f.failUpdateAfter > 0 && f.updateCalls > f.failUpdateAfter {
		return false, errors.New("account update rejected")
	}
	if _, ok := f.accounts[acc.ID]; !ok {
		return false, nil
	}
	f.accounts[acc.ID] = acc
	return true, nil
}

func (f *fakeAccountClient) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	if f.unreachable {
		return false, errUnreachable
	}
	if _, ok := f.accounts[id]; !ok {
		return false, nil
	}
	delete(f.accounts, id)
	return true, nil
}

// fakeProfileRepository keeps profiles in a map and applies tx changes on
// Commit, so a failed commit really leaves the map untouched.
type fakeProfileRepository struct {
	profiles map[int64]domain.Profile

	failBegin  bool
	failCommit bool
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{profiles: make(map[int64]domain.Profile)}
}

func (f *fakeProfileRepository) Init(ctx context.Context) error { return nil }

func (f *fakeProfileRepository) FindByID(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (f *fakeProfileRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	for _, profile := range f.profiles {
		if strings.EqualFold(profile.Username, username) {
			p := profile
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, profile := range f.profiles {
		if profile.Email == email {
			p := profile
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	ids := make([]int64, 0, len(f.profiles))
	for id := range f.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	profiles := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, f.profiles[id])
	}
	return profiles, nil
}

func (f *fakeProfileRepository) Begin(ctx context.Context) (repository.ProfileTx, error) {
	if f.failBegin {
		return nil, errors.New("begin failed")
	}
	pending := make(map[int64]domain.Profile, len(f.profiles))
	for id, profile := range f.profiles {
		pending[id] = profile
	}
	return &fakeProfileTx{repo: f, pending: pending}, nil
}

type fakeProfileTx struct {
	repo    *fakeProfileRepository
	pending map[int64]domain.Profile
	done    bool
}

func (t *fakeProfileTx) FindByID(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, ok := t.pending[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (t *fakeProfileTx) Add(ctx context.Context, profile *domain.Profile) error {
	if _, ok := t.pending[profile.UserID]; ok {
		return errors.New("profile already exists")
	}
	t.pending[profile.UserID] = *profile
	return nil
}

func (t *fakeProfileTx) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := t.pending[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	t.pending[profile.UserID] = *profile
	return nil
}

func (t *fakeProfileTx) Delete(ctx context.Context, userID int64) (bool, error) {
	if _, ok := t.pending[userID]; !ok {
		return false, nil
	}
	delete(t.pending, userID)
	return true, nil
}

func (t *fakeProfileTx) Commit() error {
	t.done = true
	if t.repo.failCommit {
		return errors.New("commit failed")
	}
	t.repo.profiles = t.pending
	return nil
}

func (t *fakeProfileTx) Rollback() error {
	t.done = true
	return nil
}
