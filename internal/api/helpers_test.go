package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/db"
)

const testSecret = "unit-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	docStore, err := db.OpenDocStore(filepath.Join(dir, "docstore.db"))
	if err != nil {
		t.Fatalf("open doc store: %v", err)
	}
	relational, err := db.OpenRelational(filepath.Join(dir, "actuals.db"))
	if err != nil {
		t.Fatalf("open relational store: %v", err)
	}
	t.Cleanup(func() { relational.Close() })

	handler := NewHandler(db.NewRepositories(docStore, relational), testSecret, false, nil)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, token string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(jsonRequest(t, method, path, token, payload))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (%s)", method, path, wantStatus, response.StatusCode, raw)
	}

	decoded := make(map[string]any)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string, token string) []map[string]any {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodGet, path, token, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d (%s)", path, response.StatusCode, raw)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode list %q: %v", raw, err)
	}
	return decoded
}

func signupPayload(email string, role string) map[string]any {
	return map[string]any{
		"firstName":   "Monica",
		"lastName":    "Tan",
		"email":       email,
		"phone":       "91234567",
		"dateOfBirth": "14/02/1992",
		"department":  "Consulting",
		"role":        role,
		"password":    "Str0ngPass!x",
	}
}

func signupAndLogin(t *testing.T, app *fiber.App, email string, role string) string {
	t.Helper()

	doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupPayload(email, role), http.StatusCreated)
	login := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "Str0ngPass!x",
	}, http.StatusOK)

	token, ok := login["token"].(string)
	if !ok || token == "" {
		t.Fatalf("expected a token in the login response, got %v", login)
	}
	return token
}

func numberField(t *testing.T, payload map[string]any, key string) float64 {
	t.Helper()
	value, ok := payload[key].(float64)
	if !ok {
		t.Fatalf("expected numeric %q in %v", key, payload)
	}
	return value
}

func uniqueEmail(index int) string {
	return fmt.Sprintf("user%d@ihrp.com", index)
}
