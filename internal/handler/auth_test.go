package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumeo/lumeo/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// The identity service is built over a nil repository: any storage
// access would panic, so these tests also prove validation rejects the
// request before the database is touched.
func newValidationOnlyAuthHandler() *AuthHandler {
	return NewAuthHandler(service.NewIdentityService(nil, 0, nil), testLogger())
}

func TestLogin_MalformedEmail(t *testing.T) {
	h := newValidationOnlyAuthHandler()

	body := strings.NewReader(`{"email":"not-an-email","password":"pw"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != CodeInvalidInput {
		t.Fatalf("envelope = %+v", env)
	}

	found := false
	for _, issue := range env.Error.Details {
		if issue.Field == "email" {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue referencing the email field: %+v", env.Error.Details)
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	h := newValidationOnlyAuthHandler()

	body := strings.NewReader(`{"email":"user@example.com"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	found := false
	for _, issue := range env.Error.Details {
		if issue.Field == "password" {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue referencing the password field: %+v", env.Error.Details)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newValidationOnlyAuthHandler()

	body := strings.NewReader(`{"email":`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
