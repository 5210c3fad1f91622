package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"irportal/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "test@irportal.local",
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses, simulating the state after
// LoadSession has run without needing a real Redis store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession("admin", true)
		ctx := ctxWithSession(context.Background(), sess)

		got := SessionFromCtx(ctx)
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
	})

	t.Run("returns nil when absent", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects without session", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/news", nil)

		RequireAuth(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if *called {
			t.Error("next handler must not run")
		}
	})

	t.Run("passes with session", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/news", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("editor", false)))

		RequireAuth(h).ServeHTTP(rec, r)

		if !*called {
			t.Error("next handler should run")
		}
	})
}

func TestRequire2FA(t *testing.T) {
	t.Run("rejects incomplete 2FA", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/news", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("admin", false)))

		Require2FA(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if *called {
			t.Error("next handler must not run")
		}
	})

	t.Run("passes completed 2FA", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/news", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("admin", true)))

		Require2FA(h).ServeHTTP(rec, r)

		if !*called {
			t.Error("next handler should run")
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("rejects editor role", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/admin/profile/about", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("editor", true)))

		RequireAdmin(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rec.Code)
		}
		if *called {
			t.Error("next handler must not run")
		}
	})

	t.Run("passes admin role", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/admin/profile/about", nil)
		r = r.WithContext(ctxWithSession(r.Context(), newTestSession("admin", true)))

		RequireAdmin(h).ServeHTTP(rec, r)

		if !*called {
			t.Error("next handler should run")
		}
	})
}

func TestCronToken(t *testing.T) {
	const token = "sweep-secret"

	t.Run("rejects missing header", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/internal/publish-scheduled", nil)

		CronToken(token)(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if *called {
			t.Error("next handler must not run")
		}
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/internal/publish-scheduled", nil)
		r.Header.Set("X-Cron-Token", "guess")

		CronToken(token)(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if *called {
			t.Error("next handler must not run")
		}
	})

	t.Run("rejects everything when unconfigured", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/internal/publish-scheduled", nil)
		r.Header.Set("X-Cron-Token", "")

		CronToken("")(h).ServeHTTP(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if *called {
			t.Error("next handler must not run")
		}
	})

	t.Run("passes correct token", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/internal/publish-scheduled", nil)
		r.Header.Set("X-Cron-Token", token)

		CronToken(token)(h).ServeHTTP(rec, r)

		if !*called {
			t.Error("next handler should run")
		}
	})
}
