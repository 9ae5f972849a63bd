// Package validation checks incoming user payloads before the orchestrator
// mutates anything. A non-empty violation list aborts the operation; the list
// is logged by the caller, not returned across the service boundary.
package validation

import (
	"context"
	"fmt"

	"profileservice/internal/account"
	"profileservice/internal/domain"
)

const (
	maxEmailLength    = 50
	maxNameLength     = 100
	maxUsernameLength = 50
	maxAddressLength  = 50
	maxCityLength     = 50
	maxPhoneLength    = 50

	// MaxPictureLength bounds the picture URL stored on a profile. Exported so
	// the upload handler can reject an object whose URL would never validate.
	MaxPictureLength = 100
)

// UserValidator validates creation and update payloads. Creation validation
// additionally asks the account service whether the username or email is
// already taken.
type UserValidator struct {
	accounts account.Client
}

func NewUserValidator(accounts account.Client) *UserValidator {
	return &UserValidator{accounts: accounts}
}

// ValidateNewUser checks a creation payload. The password is not validated:
// it is never persisted here and its format belongs to the account service.
func (v *UserValidator) ValidateNewUser(ctx context.Context, newUser domain.NewUser) []Violation {
	var violations []Violation

	violations = NotNull(violations, newUser.Email, "Email")
	violations = Email(violations, newUser.Email)

	violations = NotNull(violations, newUser.FirstName, "FirstName")
	violations = MinMax(violations, newUser.FirstName, 0, maxNameLength, "FirstName")

	violations = NotNull(violations, newUser.Surname, "Surname")
	violations = MinMax(violations, newUser.Surname, 0, maxNameLength, "Surname")

	violations = NotNull(violations, newUser.Username, "Username")
	violations = MinMax(violations, newUser.Username, 0, maxUsernameLength, "Username")

	if len(violations) > 0 {
		return violations
	}

	// Format checks passed; now uniqueness against the account service.
	if taken, err := v.accounts.UsernameExists(ctx, newUser.Username); err != nil {
		violations = append(violations, Violation(fmt.Sprintf("username uniqueness check failed: %v", err)))
	} else if taken {
		violations = append(violations, Violation(fmt.Sprintf("username %q is already taken", newUser.Username)))
	}
	if taken, err := v.accounts.EmailExists(ctx, newUser.Email); err != nil {
		violations = append(violations, Violation(fmt.Sprintf("email uniqueness check failed: %v", err)))
	} else if taken {
		violations = append(violations, Violation(fmt.Sprintf("email %q is already taken", newUser.Email)))
	}

	return violations
}

// ValidateUser checks an update payload. Uniqueness of changed usernames and
// emails is not re-checked here; the account service enforces it on update.
func (v *UserValidator) ValidateUser(user domain.User) []Violation {
	var violations []Violation

	if user.ID < 1 {
		violations = append(violations, Violation(fmt.Sprintf("invalid user id %d", user.ID)))
	}

	violations = NotNull(violations, user.Email, "Email")
	violations = Email(violations, user.Email)

	violations = NotNull(violations, user.Name, "Name")
	violations = MinMax(violations, user.Name, 0, maxNameLength, "Name")

	violations = NotNull(violations, user.Surname, "Surname")
	violations = MinMax(violations, user.Surname, 0, maxNameLength, "Surname")

	violations = NotNull(violations, user.Username, "Username")
	violations = MinMax(violations, user.Username, 0, maxUsernameLength, "Username")

	violations = MinMax(violations, user.Address, 0, maxAddressLength, "Address")
	violations = MinMax(violations, user.City, 0, maxCityLength, "City")
	violations = MinMax(violations, user.Phonenumber, 0, maxPhoneLength, "Phonenumber")
	violations = MinMax(violations, user.Picture, 0, MaxPictureLength, "Picture")

	return violations
}
