package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/previewops/preview-comment/internal/markdown"
)

func newTestRouter() *mux.Router {
	handler := NewHandler("https://x.vercel.app", markdown.Options{
		Seed: "test-seed",
		Pool: []markdown.AsciiChoice{
			{Art: "art-one", Weight: 1},
			{Art: "art-two", Weight: 1},
		},
		Now: func() time.Time { return time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC) },
	})
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestHandlePreview(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Comment preview") {
		t.Error("page title missing")
	}
	if !strings.Contains(body, "Docs Preview") {
		t.Error("rendered markdown missing from page")
	}
}

func TestHandleDebugShowsWholePool(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, art := range []string{"art-one", "art-two"} {
		if !strings.Contains(body, art) {
			t.Errorf("debug page missing %q", art)
		}
	}
}

func TestUnknownMethodRejected(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
