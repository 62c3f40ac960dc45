package wire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubSessions struct {
	repository.SessionRepository
	sessions map[uuid.UUID]*entity.SessionUser
}

func (s stubSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.SessionUser, error) {
	return s.sessions[token], nil
}

type denyLimiter struct{ calls int }

func (l *denyLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	l.calls++
	return false, 1500 * time.Millisecond, nil
}

type routerFixture struct {
	router   http.Handler
	limiter  *denyLimiter
	customer uuid.UUID
	admin    uuid.UUID
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{limiter: &denyLimiter{}, customer: uuid.New(), admin: uuid.New()}

	sessions := stubSessions{sessions: map[uuid.UUID]*entity.SessionUser{
		f.customer: {Session: entity.Session{UserID: uuid.New(), Token: f.customer}, Role: entity.RoleCustomer, IsActive: true},
		f.admin:    {Session: entity.Session{UserID: uuid.New(), Token: f.admin}, Role: entity.RoleAdmin, IsActive: true},
	}}

	// only the session store is reached by the requests below
	repo := &repository.Repository{Session: sessions}
	config := &utils.Config{App: utils.AppConfig{Timezone: "UTC"}}

	app := Wiring(repo, config, usecase.Deps{}, f.limiter, zap.NewNop())
	f.router = app.Router
	return f
}

func (f *routerFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestAccessPolicy(t *testing.T) {
	f := newRouterFixture()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"profile without token", http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized},
		{"bookings with unknown token", http.MethodGet, "/api/bookings", uuid.NewString(), http.StatusUnauthorized},
		{"bookings with malformed token", http.MethodGet, "/api/bookings", "not-a-token", http.StatusUnauthorized},
		{"admin route without token", http.MethodPost, "/api/halls", "", http.StatusUnauthorized},
		{"admin route as customer", http.MethodPost, "/api/halls", f.customer.String(), http.StatusForbidden},
		{"delete movie as customer", http.MethodDelete, "/api/movies/" + uuid.NewString(), f.customer.String(), http.StatusForbidden},
		{"public route with malformed id", http.MethodGet, "/api/halls/abc", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.method, tt.path, tt.token, "{}")
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAdminValidationErrors(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodPost, "/api/halls", f.admin.String(), `{"name": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	if resp.Code != "validation_error" {
		t.Fatalf("code = %q", resp.Code)
	}
	fields, ok := resp.Errors.(map[string]any)
	if !ok {
		t.Fatalf("errors = %#v, want a field map", resp.Errors)
	}
	for _, field := range []string{"name", "capacity", "layout"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("missing error for %s in %v", field, fields)
		}
	}

	rec = f.do(http.MethodPost, "/api/halls", f.admin.String(), `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodPost, "/api/auth/login", "", `{"username": "a", "password": "b"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("login status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("Retry-After = %q, want 2", got)
	}

	// unlimited routes never consult the limiter
	calls := f.limiter.calls
	f.do(http.MethodGet, "/api/auth/me", "", "")
	if f.limiter.calls != calls {
		t.Fatalf("limiter consulted for an unlimited route")
	}
}

func TestAccessString(t *testing.T) {
	cases := map[Access]string{Public: "public", Authenticated: "authenticated", Admin: "admin"}
	for access, want := range cases {
		if got := access.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", access, got, want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(http.MethodGet, "/api/nowhere", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decodeBody(t, rec); resp.Code != "not_found" {
		t.Fatalf("code = %q", resp.Code)
	}
}
