package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rollcall/rollcall/internal/auth"
	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/repository"
	"github.com/rollcall/rollcall/internal/token"
)

// UserSource resolves a user by the identity embedded in a token.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// UserCache is an optional read-through cache in front of UserSource.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *token.Manager
	Users  UserSource
	Cache  UserCache // optional
}

// Auth returns a middleware that authenticates requests via the bearer
// token in the Authorization header, resolves the embedded user and
// injects them into the request context. All failures are a 401; the
// body only distinguishes a missing token from an invalid one.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The header is split on whitespace and the second field
			// taken, so "Bearer <token>" and any other prefix word
			// are treated alike.
			fields := strings.Fields(r.Header.Get("Authorization"))
			if len(fields) < 2 {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "TOKEN_MISSING", "Token is missing")
				return
			}

			userID, err := cfg.Tokens.Verify(fields[1])
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", verifyFailureReason(err)),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "TOKEN_INVALID", "Token is invalid")
				return
			}

			user, err := resolveUser(r.Context(), cfg, userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// e.g. token outlived its account
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "unknown_user"),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				} else {
					cfg.Logger.Error("database error during auth",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				writeAuthError(w, "TOKEN_INVALID", "Token is invalid")
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveUser looks the user up in the cache first, then the store.
// Cache errors fall through to the store; store hits are cached
// best-effort.
func resolveUser(ctx context.Context, cfg AuthConfig, userID string) (*model.User, error) {
	if cfg.Cache != nil {
		if user, _ := cfg.Cache.GetUser(ctx, userID); user != nil {
			return user, nil
		}
	}

	user, err := cfg.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cfg.Cache != nil {
		_ = cfg.Cache.SetUser(ctx, user)
	}

	return user, nil
}

func verifyFailureReason(err error) string {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, token.ErrTokenSignature):
		return "bad_signature"
	default:
		return "malformed_token"
	}
}

// writeAuthError writes a 401 Unauthorized response.
func writeAuthError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"` + code + `"}`))
}
