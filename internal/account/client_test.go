package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/accounts" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload NewAccount
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.Username != "annlee" || payload.Password != "secret" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
		json.NewEncoder(w).Encode(Account{
			ID:        42,
			Username:  payload.Username,
			Email:     payload.Email,
			Firstname: payload.Firstname,
			Surname:   payload.Surname,
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	acc, err := client.CreateAccount(context.Background(), NewAccount{
		Username: "annlee", Email: "a@x.com", Firstname: "Ann", Surname: "Lee", Password: "secret",
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if acc.ID != 42 {
		t.Fatalf("expected id 42, got %d", acc.ID)
	}
}

func TestCreateAccount_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Account{})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	if _, err := client.CreateAccount(context.Background(), NewAccount{Username: "x"}); err == nil {
		t.Fatal("expected error when the remote issues no id")
	}
}

func TestAccountExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts/7/exists" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]bool{"exists": true})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	exists, err := client.AccountExists(context.Background(), 7)
	if err != nil {
		t.Fatalf("account exists: %v", err)
	}
	if !exists {
		t.Fatal("expected exists == true")
	}
}

func TestUsernameExists_QueryEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("username"); got != "ann lee" {
			t.Fatalf("expected decoded username, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]bool{"exists": false})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	exists, err := client.UsernameExists(context.Background(), "ann lee")
	if err != nil {
		t.Fatalf("username exists: %v", err)
	}
	if exists {
		t.Fatal("expected exists == false")
	}
}

func TestUpdateAccount_RemoteRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]bool{"ok": false})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	ok, err := client.UpdateAccount(context.Background(), Account{ID: 7, Username: "x"})
	if err != nil {
		t.Fatalf("update account: %v", err)
	}
	if ok {
		t.Fatal("expected remote rejection to surface as ok == false")
	}
}

func TestNon2xxStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	if _, err := client.DeleteAccount(context.Background(), 7); err == nil {
		t.Fatal("expected error for a 500 response")
	}
}

func TestAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer hunter2" {
			t.Fatalf("expected api key header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]bool{"exists": false})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "hunter2", 5*time.Second)
	if _, err := client.EmailExists(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("email exists: %v", err)
	}
}
