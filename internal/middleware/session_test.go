package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/service"
)

type fakeResolver struct {
	user *model.User
	err  error

	gotKey string
	calls  int
}

func (f *fakeResolver) Resolve(_ context.Context, input service.ResolveInput) (*model.User, error) {
	f.calls++
	f.gotKey = input.IdentityKey
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer clerk_abc123", "clerk_abc123"},
		{"bearer with padding", "Bearer   clerk_abc123  ", "clerk_abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwdw==", ""},
		{"bare token", "clerk_abc123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSession_MissingToken(t *testing.T) {
	resolver := &fakeResolver{}
	mw := Session(SessionConfig{Logger: discardLogger(), Identity: resolver})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversations", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if resolver.calls != 0 {
		t.Error("resolver must not be called without a token")
	}

	var envelope struct {
		OK    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.OK || envelope.Error.Code != "UNAUTHORIZED" {
		t.Errorf("envelope = %+v", envelope)
	}
}

func TestSession_ResolvesAndInjectsContext(t *testing.T) {
	resolver := &fakeResolver{user: &model.User{
		ID:          "user-1",
		IdentityKey: "clerk_abc",
		Email:       "a@example.com",
		Name:        "Ada",
		Plan:        model.PlanPro,
	}}
	mw := Session(SessionConfig{Logger: discardLogger(), Identity: resolver})

	var seen *model.SessionContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.SessionFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	req.Header.Set("Authorization", "Bearer clerk_abc")

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resolver.gotKey != "clerk_abc" {
		t.Errorf("resolver got key %q, want clerk_abc", resolver.gotKey)
	}
	if seen == nil {
		t.Fatal("no session context injected")
	}
	if seen.UserID != "user-1" || seen.Plan != model.PlanPro {
		t.Errorf("session = %+v", seen)
	}
}

func TestSession_InvalidIdentity(t *testing.T) {
	resolver := &fakeResolver{err: service.ErrInvalidIdentity}
	mw := Session(SessionConfig{Logger: discardLogger(), Identity: resolver})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for an invalid identity")
	})

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}
}

func TestSession_ResolverFailure(t *testing.T) {
	resolver := &fakeResolver{err: context.DeadlineExceeded}
	mw := Session(SessionConfig{Logger: discardLogger(), Identity: resolver})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run when resolution fails")
	})

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	req.Header.Set("Authorization", "Bearer clerk_abc")

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
