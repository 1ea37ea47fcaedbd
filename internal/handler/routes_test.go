package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/skopeo/backend/internal/model"
	"github.com/skopeo/backend/internal/repository"
	"github.com/skopeo/backend/internal/service"
	"github.com/skopeo/backend/migrations"
)

func newTestServer(t *testing.T, store repository.Store) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(store, "http://localhost:5173", "test")
	contacts := NewContactHandler(service.NewContactService(store))
	return Routes(h, contacts, nil, logger)
}

func serve(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("User-Agent", "routes-test")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: decode response: %v; body: %s", method, path, err, rec.Body.String())
		}
	}
	return rec, resp
}

// backends returns every store the API is exercised against.
func backends(t *testing.T) map[string]func(t *testing.T) repository.Store {
	b := map[string]func(t *testing.T) repository.Store{
		"memory": func(t *testing.T) repository.Store { return repository.NewMemoryStore() },
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" || testing.Short() {
		return b
	}
	b["postgres"] = func(t *testing.T) repository.Store {
		ctx := context.Background()
		pool, err := repository.NewPool(ctx, dsn)
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		t.Cleanup(pool.Close)
		schema, err := migrations.FS.ReadFile("000001_init.up.sql")
		if err != nil {
			t.Fatalf("read schema: %v", err)
		}
		if _, err := pool.Exec(ctx, string(schema)); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
		if _, err := pool.Exec(ctx, "TRUNCATE contact_messages, users"); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return repository.NewPgStoreFromPool(pool)
	}
	return b
}

func TestRoutes_ContactLifecycle(t *testing.T) {
	for name, newStore := range backends(t) {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, newStore(t))

			// POST {} -> 201 with defaults
			rec, resp := serve(t, srv, http.MethodPost, "/api/contact", `{}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
			}
			var created struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(resp.Data, &created); err != nil || created.ID == "" {
				t.Fatalf("expected id in data, got %s", resp.Data)
			}

			_, resp = serve(t, srv, http.MethodGet, "/api/contact/"+created.ID, "")
			var empty model.ContactMessage
			if err := json.Unmarshal(resp.Data, &empty); err != nil {
				t.Fatalf("decode message: %v", err)
			}
			if empty.FirstName != "" || empty.Email != "" || empty.Message != "" || empty.Status != model.ContactStatusNew {
				t.Errorf("expected empty defaults and status=new, got %+v", empty)
			}
			if empty.UserAgent != "routes-test" || empty.IPAddress != "192.0.2.1" {
				t.Errorf("expected request metadata captured, got ip=%q ua=%q", empty.IPAddress, empty.UserAgent)
			}

			// round trip
			rec, resp = serve(t, srv, http.MethodPost, "/api/contact",
				`{"firstName":"Jane","lastName":"Doe","email":"jane@x.com","message":"Hi"}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d", rec.Code)
			}
			if err := json.Unmarshal(resp.Data, &created); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			janeID := created.ID

			rec, resp = serve(t, srv, http.MethodGet, "/api/contact/"+janeID, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var jane model.ContactMessage
			if err := json.Unmarshal(resp.Data, &jane); err != nil {
				t.Fatalf("decode message: %v", err)
			}
			if jane.FirstName != "Jane" || jane.LastName != "Doe" || jane.Email != "jane@x.com" || jane.Message != "Hi" || jane.Status != model.ContactStatusNew {
				t.Errorf("round trip mismatch: %+v", jane)
			}

			// invalid status -> 400, record unchanged
			rec, _ = serve(t, srv, http.MethodPatch, "/api/contact/"+janeID+"/status", `{"status":"archived"}`)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400 for archived, got %d", rec.Code)
			}
			_, resp = serve(t, srv, http.MethodGet, "/api/contact/"+janeID, "")
			var unchanged model.ContactMessage
			_ = json.Unmarshal(resp.Data, &unchanged)
			if unchanged.Status != model.ContactStatusNew || !unchanged.UpdatedAt.Equal(jane.UpdatedAt) {
				t.Errorf("record changed after rejected update: %+v", unchanged)
			}

			// resolved -> new is allowed
			for _, st := range []string{"resolved", "new"} {
				rec, resp = serve(t, srv, http.MethodPatch, "/api/contact/"+janeID+"/status", `{"status":"`+st+`"}`)
				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200 for %s, got %d", st, rec.Code)
				}
				var updated model.ContactMessage
				_ = json.Unmarshal(resp.Data, &updated)
				if string(updated.Status) != st {
					t.Errorf("expected status=%s, got %q", st, updated.Status)
				}
			}

			// unknown id
			rec, resp = serve(t, srv, http.MethodPatch, "/api/contact/unknown-id/status", `{"status":"resolved"}`)
			if rec.Code != http.StatusNotFound || resp.Status != "error" {
				t.Errorf("expected 404 error envelope, got %d %+v", rec.Code, resp)
			}
			rec, _ = serve(t, srv, http.MethodGet, "/api/contact/unknown-id", "")
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}

			// list oldest first
			rec, resp = serve(t, srv, http.MethodGet, "/api/contact", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var list []model.ContactMessage
			if err := json.Unmarshal(resp.Data, &list); err != nil {
				t.Fatalf("decode list: %v", err)
			}
			if len(list) != 2 {
				t.Fatalf("expected 2 messages, got %d", len(list))
			}
			if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) }) {
				t.Error("expected list ordered by createdAt ascending")
			}
		})
	}
}

func TestRoutes_ServiceEndpoints(t *testing.T) {
	srv := newTestServer(t, repository.NewMemoryStore())

	rec, _ := serve(t, srv, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on API responses")
	}

	rec, resp := serve(t, srv, http.MethodGet, "/api/status", "")
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Errorf("status: expected 200 success, got %d %+v", rec.Code, resp)
	}

	rec, _ = serve(t, srv, http.MethodGet, "/api/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("ready: expected 200, got %d", rec.Code)
	}

	rec, resp = serve(t, srv, http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound || resp.Status != "error" {
		t.Errorf("unknown route: expected 404 error envelope, got %d %+v", rec.Code, resp)
	}
}

func TestRoutes_RateLimitedSubmit(t *testing.T) {
	store := repository.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := Routes(New(store, "", "test"), NewContactHandler(service.NewContactService(store)), NewRateLimiter(1), logger)

	if rec, _ := serve(t, srv, http.MethodPost, "/api/contact", `{}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec, _ := serve(t, srv, http.MethodPost, "/api/contact", `{}`); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	// reads are not limited
	if rec, _ := serve(t, srv, http.MethodGet, "/api/contact", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
