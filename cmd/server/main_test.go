package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/profile-print/internal/config"
	"github.com/janisto/profile-print/internal/http/health"
	"github.com/janisto/profile-print/internal/platform/respond"
	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

func testServer(t *testing.T) (http.Handler, *draft.MemoryStore) {
	t.Helper()
	respond.Install()
	cfg := &config.Config{DraftStore: config.StoreMemory, Exporter: config.ExporterPrint}
	store := draft.NewMemoryStore()
	docs := document.NewService(store, document.NewPrintViewExporter(0))
	return newRouter(cfg, store, docs), store
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-health-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", resp.Code)
	}
	var h health.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if h.Status != "healthy" || h.DraftStore != config.StoreMemory {
		t.Fatalf("unexpected health payload %+v", h)
	}
	if got := resp.Header().Get("X-Request-Id"); got != "test-health-req" {
		t.Errorf("expected request ID to be echoed, got %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}
}

func TestNotFoundReturnsEnvelope(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-404-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	var env respond.Envelope[struct{}]
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal 404 response: %v", err)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected envelope: %s", resp.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodDelete, "/preview", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-405-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}
}

func TestEndToEndViewFlow(t *testing.T) {
	srv, store := testServer(t)

	form := url.Values{
		"name":        {"Jane Doe"},
		"email":       {"jane@x.com"},
		"phoneNumber": {"1234567890"},
		"position":    {"Engineer"},
		"description": {"Loves systems design."},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", resp.Code, resp.Body.String())
	}

	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("expected stored draft, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/draft", nil)
	resp = httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from API, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"name":"Jane Doe"`) {
		t.Errorf("unexpected API body %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/preview", nil)
	resp = httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 preview, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "<h1>Jane Doe</h1>") {
		t.Error("expected rendered header in preview")
	}
}

func TestPreviewWithoutDraftRedirects(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestAPIDraftNotFound(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/draft", nil)
	req.Header.Set("Accept", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var env respond.Envelope[struct{}]
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if env.Error == nil || env.Error.Message != "draft not found" {
		t.Errorf("unexpected envelope %s", resp.Body.String())
	}
}

func TestServerShutdownOnSignal(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              ":0", // random available port
		Handler:           router,
		ReadHeaderTimeout: time.Second,
	}

	listenErr := make(chan error, 1)
	started := make(chan struct{})

	go func() {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			listenErr <- err
			return
		}
		close(started)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	select {
	case <-started:
	case err := <-listenErr:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for server to start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}

	select {
	case err := <-listenErr:
		t.Fatalf("unexpected listen error after shutdown: %v", err)
	default:
	}
}

func TestOpenAPICBORContentTypes(t *testing.T) {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Test API", "1.0.0"))
	addCBORContentTypes(api)

	type TestInput struct {
		Body struct {
			Name string `json:"name"`
		}
	}
	type TestOutput struct {
		Body struct {
			Message string `json:"message"`
		}
	}
	huma.Post(api, "/test", func(_ context.Context, input *TestInput) (*TestOutput, error) {
		out := &TestOutput{}
		out.Body.Message = "Hello, " + input.Body.Name
		return out, nil
	})

	op := api.OpenAPI().Paths["/test"].Post
	if op.RequestBody == nil {
		t.Fatal("expected request body in operation")
	}
	if _, ok := op.RequestBody.Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor in request body content")
	}
	resp200 := op.Responses["200"]
	if resp200 == nil {
		t.Fatal("expected 200 response")
	}
	if _, ok := resp200.Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor in 200 response content")
	}
}
