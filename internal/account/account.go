package account

import "context"

// Account is the account service's own representation of a user. Copies of it
// are held transiently for updates and rollbacks, never persisted locally.
type Account struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Surname   string `json:"surname"`
}

// NewAccount is the creation payload sent to the account service. It is the
// only representation that carries the password.
type NewAccount struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Surname   string `json:"surname"`
	Password  string `json:"password"`
}

// Client is the consumed surface of the remote account service. Calls block
// until the remote side answers or the configured timeout fires; by contract
// failures come back as false/nil results, with the error carrying transport
// detail for logging only.
type Client interface {
	CreateAccount(ctx context.Context, payload NewAccount) (*Account, error)
	AccountExists(ctx context.Context, id int64) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	UpdateAccount(ctx context.Context, acc Account) (bool, error)
	DeleteAccount(ctx context.Context, id int64) (bool, error)
}
