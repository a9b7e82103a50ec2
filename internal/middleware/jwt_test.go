package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vaughan-dsouza/betasks/internal/models"
	"github.com/vaughan-dsouza/betasks/internal/session"
	"github.com/vaughan-dsouza/betasks/internal/utils"
)

func chain(t *testing.T, now func() time.Time, admin bool) (http.Handler, *session.Manager) {
	t.Helper()
	m, err := session.NewManager(session.Options{Secret: "mw-secret", Now: now})
	if err != nil {
		t.Fatal(err)
	}
	var final http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := utils.ClaimsFrom(r.Context())
		if !ok {
			t.Error("claims missing from context")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]int64{"id": c.ID})
	})
	if admin {
		final = RequireAdmin(final)
	}
	return Authenticate(m)(final), m
}

func do(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	now := time.Now()
	h, m := chain(t, func() time.Time { return now }, false)

	if rec := do(h, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing cookie: expected 401, got %d", rec.Code)
	}
	if rec := do(h, "garbage"); rec.Code != http.StatusForbidden {
		t.Fatalf("bad token: expected 403, got %d", rec.Code)
	}

	tok, _, _ := m.Issue(models.User{ID: 5, Role: models.RoleUser})
	if rec := do(h, tok); rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	now = now.Add(61 * time.Minute)
	if rec := do(h, tok); rec.Code != http.StatusForbidden {
		t.Fatalf("expired token: expected 403, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	h, m := chain(t, time.Now, true)

	user, _, _ := m.Issue(models.User{ID: 2, Role: models.RoleUser})
	if rec := do(h, user); rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", rec.Code)
	}

	admin, _, _ := m.Issue(models.User{ID: 1, Role: models.RoleAdmin})
	if rec := do(h, admin); rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}

	if rec := do(h, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401 before the admin gate, got %d", rec.Code)
	}
}

func TestRequireAdminWithoutClaims(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
