package mapper

import (
	"testing"

	"profileservice/internal/domain"
)

func TestNewUserToProfile_DropsPassword(t *testing.T) {
	newUser := domain.NewUser{
		Email:     "a@x.com",
		FirstName: "Ann",
		Surname:   "Lee",
		Username:  "annlee",
		Password:  "secret",
	}

	profile := NewUserToProfile(newUser)
	if profile.Username != "annlee" || profile.Email != "a@x.com" || profile.FirstName != "Ann" || profile.Surname != "Lee" {
		t.Fatalf("profile fields do not match payload: %+v", profile)
	}
	if profile.CreatedAt.IsZero() {
		t.Fatal("created timestamp must be set")
	}
}

func TestNewUserToAccountPayload_CarriesPassword(t *testing.T) {
	payload := NewUserToAccountPayload(domain.NewUser{
		Email:     "a@x.com",
		FirstName: "Ann",
		Surname:   "Lee",
		Username:  "annlee",
		Password:  "secret",
	})
	if payload.Password != "secret" {
		t.Fatal("the account payload is the one place the password travels")
	}
	if payload.Firstname != "Ann" || payload.Surname != "Lee" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestProfileToUser_RoundTrip(t *testing.T) {
	profile := &domain.Profile{
		UserID:                 7,
		Username:               "annlee",
		Email:                  "a@x.com",
		FirstName:              "Ann",
		Surname:                "Lee",
		Address:                "Main St 1",
		City:                   "Lund",
		PhoneNumber:            "0700",
		PictureURL:             "s3://bucket/7/pic.png",
		ZipCode:                "22100",
		PersonalIdentityNumber: "800101-1234",
	}

	user := ProfileToUser(profile)
	if user.ID != 7 || user.Name != "Ann" || user.Phonenumber != "0700" || user.Picture != "s3://bucket/7/pic.png" {
		t.Fatalf("unexpected user: %+v", user)
	}

	var back domain.Profile
	ApplyUserToProfile(*user, &back)
	back.CreatedAt = profile.CreatedAt
	if back != *profile {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, *profile)
	}
}

func TestProfileToUser_Nil(t *testing.T) {
	if user := ProfileToUser(nil); user != nil {
		t.Fatalf("expected nil, got %+v", user)
	}
}

func TestUserToAccount(t *testing.T) {
	acc := UserToAccount(domain.User{ID: 9, Username: "bob", Email: "b@x.com", Name: "Bob", Surname: "Roe", City: "ignored"})
	if acc.ID != 9 || acc.Username != "bob" || acc.Firstname != "Bob" || acc.Surname != "Roe" {
		t.Fatalf("unexpected account: %+v", acc)
	}
}
