package domain

import "time"

// NewUser is the inbound creation payload. The password travels through to the
// account service and is never persisted here.
type NewUser struct {
	Email     string
	FirstName string
	Surname   string
	Username  string
	Password  string
}

// Profile is the locally persisted, non-credential user record. UserID is the
// id issued by the account service; a profile never exists without one.
type Profile struct {
	UserID                 int64
	Username               string
	Email                  string
	FirstName              string
	Surname                string
	Address                string
	City                   string
	PhoneNumber            string
	PictureURL             string
	ZipCode                string
	PersonalIdentityNumber string
	CreatedAt              time.Time
}

// User is the externally visible view of a user, returned by reads and by a
// successful create.
type User struct {
	ID                 int64
	Username           string
	Email              string
	Name               string
	Surname            string
	Address            string
	City               string
	Phonenumber        string
	Picture            string
	ZipCode            string
	PersonalCodeNumber string
}
