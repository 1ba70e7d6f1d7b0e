package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/cache"
	"github.com/lumeo/lumeo/internal/metrics"
	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/service"
)

// SessionResolver turns an external identity into a user record.
type SessionResolver interface {
	Resolve(ctx context.Context, input service.ResolveInput) (*model.User, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Identity SessionResolver
	Cache    *cache.Cache
	Metrics  metrics.Recorder
}

// Session returns a middleware that resolves the caller identity.
// It extracts the identity token from the Authorization header, checks
// the Redis session cache, falls back to the identity service
// (provisioning a record on first sight), and injects the session
// context into the request. The raw token never reaches Redis; cache
// keys are a short hash of it.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("session resolution failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			cacheKey := auth.QuickHash(token)
			if cfg.Cache != nil {
				if cached, _ := cfg.Cache.GetSessionContext(r.Context(), cacheKey); cached != nil {
					recorder.IncSessionCacheHit()
					ctx := auth.ContextWithSession(r.Context(), cached)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				recorder.IncSessionCacheMiss()
			}

			user, err := cfg.Identity.Resolve(r.Context(), service.ResolveInput{IdentityKey: token})
			if err != nil {
				if errors.Is(err, service.ErrInvalidIdentity) {
					cfg.Logger.Warn("session resolution failed",
						slog.String("reason", "invalid_token"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeSessionError(w)
					return
				}
				cfg.Logger.Error("session resolution error",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionInternalError(w)
				return
			}

			session := &model.SessionContext{
				UserID:      user.ID,
				IdentityKey: user.IdentityKey,
				Email:       user.Email,
				Name:        user.Name,
				Plan:        user.Plan,
			}

			if cfg.Cache != nil {
				_ = cfg.Cache.SetSessionContext(r.Context(), cacheKey, session)
			}

			cfg.Logger.Debug("session resolved",
				slog.String("user_id", session.UserID),
				slog.String("plan", string(session.Plan)),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the identity token from the
// Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// writeSessionError writes a 401 Unauthorized response.
// Uses the same message for all failures to prevent enumeration.
func writeSessionError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"ok":false,"error":{"code":"UNAUTHORIZED","message":"Invalid or missing identity token"}}`))
}

func writeSessionInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"ok":false,"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}`))
}
