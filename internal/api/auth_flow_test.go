package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestSignupLoginProfileFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := signupAndLogin(t, app, "monica@ihrp.com", "member")

	profile := doJSON(t, app, http.MethodGet, "/api/profile", token, nil, http.StatusOK)
	if profile["email"] != "monica@ihrp.com" {
		t.Fatalf("expected profile email, got %v", profile["email"])
	}
	if profile["role"] != "member" {
		t.Fatalf("expected member role, got %v", profile["role"])
	}
	if profile["name"] != "Monica Tan" {
		t.Fatalf("expected full name, got %v", profile["name"])
	}
}

func TestLoginSetsAuthCookie(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupPayload("monica@ihrp.com", "member"), http.StatusCreated)

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "monica@ihrp.com",
		"password": "Str0ngPass!x",
	}))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	var cookieToken string
	for _, cookie := range response.Cookies() {
		if cookie.Name == "token" {
			cookieToken = cookie.Value
			if !cookie.HttpOnly {
				t.Fatalf("auth cookie must be http-only")
			}
		}
	}
	if cookieToken == "" {
		t.Fatalf("expected a token cookie on login")
	}

	// The cookie alone must authenticate a request.
	request := jsonRequest(t, http.MethodGet, "/api/profile", "", nil)
	request.AddCookie(&http.Cookie{Name: "token", Value: cookieToken})
	cookieResponse, err := app.Test(request)
	if err != nil {
		t.Fatalf("profile with cookie: %v", err)
	}
	defer cookieResponse.Body.Close()
	if cookieResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected cookie auth to pass, got %d", cookieResponse.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupPayload("monica@ihrp.com", "member"), http.StatusCreated)

	wrongPassword := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "monica@ihrp.com",
		"password": "WrongPass1!x",
	}, http.StatusUnauthorized)
	unknownEmail := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@ihrp.com",
		"password": "Str0ngPass!x",
	}, http.StatusUnauthorized)

	// Both failures must read identically.
	if wrongPassword["error"] != unknownEmail["error"] {
		t.Fatalf("login failures must be indistinguishable: %v vs %v", wrongPassword["error"], unknownEmail["error"])
	}
}

func TestAuthGuards(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	doJSON(t, app, http.MethodGet, "/api/profile", "", nil, http.StatusUnauthorized)
	doJSON(t, app, http.MethodGet, "/api/profile", "not-a-jwt", nil, http.StatusBadRequest)

	memberToken := signupAndLogin(t, app, "member@ihrp.com", "member")
	doJSON(t, app, http.MethodGet, "/api/users", memberToken, nil, http.StatusForbidden)

	adminToken := signupAndLogin(t, app, "admin@ihrp.com", "admin")
	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users", adminToken, nil))
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected admin listing to pass, got %d", response.StatusCode)
	}
}

func TestSignupRejections(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	weak := signupPayload("monica@ihrp.com", "member")
	weak["password"] = "weak"
	body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", weak, http.StatusBadRequest)
	message, _ := body["error"].(string)
	if !strings.Contains(message, "password") {
		t.Fatalf("expected a password policy message, got %q", message)
	}

	doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupPayload("monica@ihrp.com", "member"), http.StatusCreated)
	duplicate := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupPayload("monica@ihrp.com", "member"), http.StatusBadRequest)
	if duplicate["error"] == "" {
		t.Fatalf("expected an error message for a duplicate email")
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupPayload("monica@ihrp.com", "member"), http.StatusCreated)

	known := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{
		"email": "monica@ihrp.com",
	}, http.StatusOK)
	unknown := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{
		"email": "nobody@ihrp.com",
	}, http.StatusOK)

	if known["message"] != unknown["message"] {
		t.Fatalf("forgot-password message must not reveal registration: %v vs %v", known["message"], unknown["message"])
	}
	if _, leaked := unknown["resetToken"]; leaked {
		t.Fatalf("unknown email must not receive a reset token")
	}
	token, ok := known["resetToken"].(string)
	if !ok || token == "" {
		t.Fatalf("expected a reset token for the known email, got %v", known)
	}

	doJSON(t, app, http.MethodPost, "/api/auth/reset-password", "", map[string]any{
		"email":    "monica@ihrp.com",
		"token":    token,
		"password": "N3wStr0ng!pw",
	}, http.StatusOK)

	doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "monica@ihrp.com",
		"password": "N3wStr0ng!pw",
	}, http.StatusOK)
	doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "monica@ihrp.com",
		"password": "Str0ngPass!x",
	}, http.StatusUnauthorized)

	// Token replay is rejected.
	doJSON(t, app, http.MethodPost, "/api/auth/reset-password", "", map[string]any{
		"email":    "monica@ihrp.com",
		"token":    token,
		"password": "An0therStr0ng!",
	}, http.StatusBadRequest)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := signupAndLogin(t, app, "monica@ihrp.com", "member")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/logout", token, nil))
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	var cleared bool
	for _, cookie := range response.Cookies() {
		if cookie.Name == "token" && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected logout to clear the token cookie")
	}
}
