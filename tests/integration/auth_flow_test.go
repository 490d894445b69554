package integration

import (
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	t.Run("signup_login_me", func(t *testing.T) {
		app := setupApp(t)

		id := app.signupUser(t, "alice@example.com", "password123")
		if id == 0 {
			t.Fatal("expected non-zero user id")
		}

		accessToken := app.loginUser(t, "alice@example.com", "password123")

		rec := app.request(http.MethodGet, "/auth/me", "", accessToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["email"] != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %v", result["email"])
		}
		if result["is_active"] != true {
			t.Errorf("expected is_active true, got %v", result["is_active"])
		}
		if uint(result["id"].(float64)) != id {
			t.Errorf("expected id %d, got %v", id, result["id"])
		}
	})

	t.Run("signup_never_returns_password_material", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request(http.MethodPost, "/auth/signup",
			`{"email":"bob@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		for _, key := range []string{"password", "password_hash"} {
			if _, ok := result[key]; ok {
				t.Errorf("response must not contain %q", key)
			}
		}
	})

	t.Run("duplicate_signup_rejected", func(t *testing.T) {
		app := setupApp(t)

		app.signupUser(t, "carol@example.com", "password123")

		rec := app.request(http.MethodPost, "/auth/signup",
			`{"email":"carol@example.com","password":"different456"}`, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login_with_wrong_password_rejected", func(t *testing.T) {
		app := setupApp(t)

		app.signupUser(t, "dave@example.com", "password123")

		rec := app.request(http.MethodPost, "/auth/login",
			`{"email":"dave@example.com","password":"wrongpassword"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("protected_routes_require_bearer_token", func(t *testing.T) {
		app := setupApp(t)

		for _, path := range []string{"/auth/me", "/transactions"} {
			rec := app.request(http.MethodGet, path, "", "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("GET %s without token: expected 401, got %d", path, rec.Code)
			}
		}

		rec := app.request(http.MethodGet, "/auth/me", "", "not-a-real-token")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for garbage token, got %d", rec.Code)
		}
	})

	t.Run("health_is_public", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request(http.MethodGet, "/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
