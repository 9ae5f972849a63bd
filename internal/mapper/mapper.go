// Package mapper converts between the four user representations used at the
// service boundaries: the inbound creation payload, the persisted profile
// record, the API-facing user, and the account service's own shape. Every
// function copies; no two boundaries ever share a struct.
package mapper

import (
	"time"

	"profileservice/internal/account"
	"profileservice/internal/domain"
)

// NewUserToAccountPayload builds the account-service creation payload. This is
// the only mapping that carries the password.
func NewUserToAccountPayload(newUser domain.NewUser) account.NewAccount {
	return account.NewAccount{
		Username:  newUser.Username,
		Email:     newUser.Email,
		Firstname: newUser.FirstName,
		Surname:   newUser.Surname,
		Password:  newUser.Password,
	}
}

// NewUserToProfile builds a fresh profile record from a creation payload. The
// caller assigns UserID from the account service's response; the password is
// deliberately dropped.
func NewUserToProfile(newUser domain.NewUser) domain.Profile {
	return domain.Profile{
		Username:  newUser.Username,
		Email:     newUser.Email,
		FirstName: newUser.FirstName,
		Surname:   newUser.Surname,
		CreatedAt: time.Now().UTC(),
	}
}

// ProfileToUser maps a persisted record to the API view.
func ProfileToUser(profile *domain.Profile) *domain.User {
	if profile == nil {
		return nil
	}
	return &domain.User{
		ID:                 profile.UserID,
		Username:           profile.Username,
		Email:              profile.Email,
		Name:               profile.FirstName,
		Surname:            profile.Surname,
		Address:            profile.Address,
		City:               profile.City,
		Phonenumber:        profile.PhoneNumber,
		Picture:            profile.PictureURL,
		ZipCode:            profile.ZipCode,
		PersonalCodeNumber: profile.PersonalIdentityNumber,
	}
}

// ApplyUserToProfile overwrites a profile's mutable fields from the API view.
// The created timestamp is refreshed; every write restamps it.
func ApplyUserToProfile(user domain.User, profile *domain.Profile) {
	profile.UserID = user.ID
	profile.Username = user.Username
	profile.Email = user.Email
	profile.FirstName = user.Name
	profile.Surname = user.Surname
	profile.Address = user.Address
	profile.City = user.City
	profile.PhoneNumber = user.Phonenumber
	profile.PictureURL = user.Picture
	profile.ZipCode = user.ZipCode
	profile.PersonalIdentityNumber = user.PersonalCodeNumber
	profile.CreatedAt = time.Now().UTC()
}

// UserToAccount maps the API view to the account service's shape for updates.
func UserToAccount(user domain.User) account.Account {
	return account.Account{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Firstname: user.Name,
		Surname:   user.Surname,
	}
}
