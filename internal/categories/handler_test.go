package categories_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptvault/internal/categories"
)

type mockSystem struct {
	listFn   func(ctx context.Context) ([]categories.Category, error)
	findFn   func(ctx context.Context, id int64) (*categories.Category, error)
	createFn func(ctx context.Context, cmd categories.CreateCommand) (*categories.Category, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockSystem) Handler(maxBodyBytes int64) *categories.Handler {
	return categories.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), maxBodyBytes)
}

func (m *mockSystem) List(ctx context.Context) ([]categories.Category, error) {
	return m.listFn(ctx)
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*categories.Category, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd categories.CreateCommand) (*categories.Category, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Seed(context.Context) error { return nil }

func setupMux(h *categories.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(context.Context) ([]categories.Category, error) {
			return []categories.Category{{ID: 1, Name: "개발", Color: "#10b981"}}, nil
		},
	}

	mux := setupMux(sys.Handler(1024))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []categories.Category
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "개발" {
		t.Errorf("got %+v", got)
	}
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd categories.CreateCommand) (*categories.Category, error) {
			switch cmd.Name {
			case "":
				return nil, categories.ErrInvalid
			case "개발":
				return nil, categories.ErrDuplicate
			}
			return &categories.Category{ID: 2, Name: cmd.Name, Color: categories.DefaultColor}, nil
		},
	}

	mux := setupMux(sys.Handler(1024))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"created", `{"name":"리서치"}`, http.StatusCreated},
		{"duplicate", `{"name":"개발"}`, http.StatusConflict},
		{"invalid", `{"name":""}`, http.StatusBadRequest},
		{"malformed", `nope`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", "/categories", bytes.NewBufferString(tt.body)))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandlerDelete(t *testing.T) {
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id int64) error {
			switch id {
			case 1:
				return categories.ErrInUse
			case 2:
				return categories.ErrNotFound
			}
			return nil
		},
	}

	mux := setupMux(sys.Handler(1024))

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"in use", "/categories/1", http.StatusConflict},
		{"not found", "/categories/2", http.StatusNotFound},
		{"deleted", "/categories/3", http.StatusNoContent},
		{"bad id", "/categories/x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("DELETE", tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
