package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegisterEndpoint(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register",
		`{"username":"alice","email":"Alice@MIT.edu","password":"Secret123","phone":"+15551234567"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: want 201, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("no user in response: %v", body)
	}
	if user["email"] != "alice@mit.edu" {
		t.Fatalf("email not lowercased: %v", user["email"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}

	// stored hash is bcrypt, never the plaintext
	var hash string
	if err := db.Get(&hash, `SELECT password_hash FROM users WHERE email='alice@mit.edu'`); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$2") || hash == "Secret123" {
		t.Fatalf("password stored badly: %q", hash)
	}

	// duplicate email
	resp = doJSON(t, app, http.MethodPost, "/register",
		`{"username":"alice2","email":"alice@mit.edu","password":"Secret123"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: want 409, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsNonCollegeEmail(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register",
		`{"username":"mallory","email":"mallory@gmail.com","password":"Secret123"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE email='mallory@gmail.com'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("rejected registration created a user")
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	app, _, _ := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/register",
		`{"username":"alice","email":"alice@mit.edu","password":"Secret123"}`)

	resp := doJSON(t, app, http.MethodPost, "/login",
		`{"email":"alice@mit.edu","password":"wrong-pass1"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/login",
		`{"email":"alice@mit.edu","password":"Secret123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("no sid cookie on login")
	}
	cookie := &http.Cookie{Name: "sid", Value: sid}

	resp = doJSON(t, app, http.MethodGet, "/me", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/me with session: want 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if _, ok := body["avg_rating"]; !ok {
		t.Fatalf("profile missing avg_rating: %v", body)
	}

	resp = doJSON(t, app, http.MethodPost, "/logout", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: want 200, got %d", resp.StatusCode)
	}

	// session no longer valid
	resp = doJSON(t, app, http.MethodGet, "/me", "", cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("/me after logout: want 401, got %d", resp.StatusCode)
	}
}

func TestMeRequiresSession(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/me", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}
