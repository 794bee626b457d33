package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

// Session issues a session cookie when the request has none (or an
// unreadable one) and places the session id in the request context.
type Session struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func NewSession(cookieName string, ttl time.Duration, secure bool) *Session {
	return &Session{CookieName: cookieName, TTL: ttl, Secure: secure}
}

func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(s.CookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			id = uuid.NewString()
			LoggerFromContext(r.Context()).Debug("Issued new session", slog.String("session_id", id))
		}

		http.SetCookie(w, &http.Cookie{
			Name:     s.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(s.TTL.Seconds()),
			HttpOnly: true,
			Secure:   s.Secure,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := WithSessionID(r.Context(), id)
		ctx = WithLogger(ctx, LoggerFromContext(ctx).With(slog.String("session_id", id)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, id)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionContextKey{}).(string)
	return id, ok && id != ""
}
