package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/invoice-dashboard/internal/db/dbtest"
	"github.com/example/invoice-dashboard/internal/db/seeders"
	"github.com/example/invoice-dashboard/internal/users"
)

type seedFunc func(ctx context.Context) (seeders.Summary, error)

func (f seedFunc) Seed(ctx context.Context) (seeders.Summary, error) { return f(ctx) }

// emptyError has no description.
type emptyError struct{}

func (emptyError) Error() string { return "" }

func do(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	body := map[string]string{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestSeed(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]string
	}{
		{"success", nil, http.StatusOK, map[string]string{"message": "Database seeded successfully"}},
		{"failure", errors.New("seed customers: boom"), http.StatusInternalServerError, map[string]string{"error": "seed customers: boom"}},
		{"failure without message", emptyError{}, http.StatusInternalServerError, map[string]string{"error": "Failed to seed database"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(seedFunc(func(context.Context) (seeders.Summary, error) {
				return seeders.Summary{}, tt.err
			}), zerolog.Nop())

			rec, body := do(t, s, http.MethodGet, "/seed")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestSeed_MethodNotAllowed(t *testing.T) {
	called := false
	s := New(seedFunc(func(context.Context) (seeders.Summary, error) {
		called = true
		return seeders.Summary{}, nil
	}), zerolog.Nop())

	rec, _ := do(t, s, http.MethodPost, "/seed")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, called)
}

func TestSeed_ContextNotCanceledWithRequest(t *testing.T) {
	var seen error
	s := New(seedFunc(func(ctx context.Context) (seeders.Summary, error) {
		seen = ctx.Err()
		return seeders.Summary{}, nil
	}), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seed", nil).WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, seen)
}

func TestHealth(t *testing.T) {
	s := New(seedFunc(func(context.Context) (seeders.Summary, error) { return seeders.Summary{}, nil }), zerolog.Nop())
	rec, _ := do(t, s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSeed_EndToEnd(t *testing.T) {
	fake := dbtest.New()
	data := seeders.Dataset{Users: []users.User{{ID: "u1", Name: "Alice", Email: "a@x.com", Password: "p"}}}
	seeder := seeders.New(func(context.Context) (seeders.Conn, error) { return fake, nil }, data, seeders.WithLogger(zerolog.Nop()))
	s := New(seeder, zerolog.Nop())

	for i := 0; i < 2; i++ {
		rec, body := do(t, s, http.MethodGet, "/seed")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Database seeded successfully", body["message"])
	}
	assert.Equal(t, 1, fake.Count("users"))
	assert.NotNil(t, fake.Row("users", "u1"))
}

func TestSeed_EndToEndFailure(t *testing.T) {
	fake := dbtest.New()
	fake.FailOn = func(c dbtest.Call, _ []any) error {
		if c.Table == "customers" {
			return errors.New("too many connections")
		}
		return nil
	}
	seeder := seeders.New(func(context.Context) (seeders.Conn, error) { return fake, nil }, seeders.Placeholder(), seeders.WithLogger(zerolog.Nop()))

	rec, body := do(t, New(seeder, zerolog.Nop()), http.MethodGet, "/seed")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body["error"], "too many connections")
	for _, c := range fake.Calls() {
		assert.NotContains(t, []string{"invoices", "revenue"}, c.Table)
	}
}
