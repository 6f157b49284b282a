package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpupo63/agency-site-backend/auth"
	"github.com/rpupo63/agency-site-backend/config"
	"github.com/rpupo63/agency-site-backend/database"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rpupo63/agency-site-backend/storage"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type stubNotifier struct {
	sent chan models.ContactMessage
}

func (n *stubNotifier) Name() string { return "stub" }

func (n *stubNotifier) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	n.sent <- msg
	return nil
}

type testAPI struct {
	handler  http.Handler
	db       database.Database
	auth     *auth.Service
	notifier *stubNotifier
	dir      string
}

func newTestAPI(t *testing.T, maxUploadBytes int64) testAPI {
	t.Helper()
	dir := t.TempDir()
	gdb, err := database.Open(filepath.Join(dir, "api.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db := database.New(gdb)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := auth.NewService(db.UserRepo(), db.SessionRepo(), auth.Config{
		Secret:     "api-test-secret-with-enough-length",
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	uploadDir := filepath.Join(dir, "uploads")
	store, err := storage.NewLocalStore(uploadDir, "/uploads")
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	cfg := &config.Config{CORSOrigins: []string{"http://localhost:3000"}}
	cfg.Upload.MaxBytes = maxUploadBytes

	notifier := &stubNotifier{sent: make(chan models.ContactMessage, 4)}
	handler := newRouter(Dependencies{
		Database:  db,
		Auth:      svc,
		Store:     store,
		Notifier:  notifier,
		UploadDir: uploadDir,
	}, withConfig(cfg), withStartupTime(time.Now()))

	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "admin", "admin123", true); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, err := svc.CreateUser(ctx, "editor", "editor123", false); err != nil {
		t.Fatalf("create editor: %v", err)
	}

	return testAPI{handler: handler, db: db, auth: svc, notifier: notifier, dir: uploadDir}
}

func (a testAPI) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body)
	}
	var resp LoginResponse
	decode(t, rec, &resp)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t, config.DefaultUploadMaxBytes)

	rec := a.request(t, http.MethodGet, "/api/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	decode(t, rec, &resp)
	if resp.Status != "ok" || resp.Database != "ok" {
		t.Fatalf("unexpected health: %+v", resp)
	}
}

func TestHealthReportsClosedDatabase(t *testing.T) {
	a := newTestAPI(t, config.DefaultUploadMaxBytes)
	if err := a.db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rec := a.request(t, http.MethodGet, "/api/health", nil, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestAPI(t, config.DefaultUploadMaxBytes)
	a.request(t, http.MethodGet, "/api/projects", nil, "")

	rec := a.request(t, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("agency_http_requests_total")) {
		t.Fatal("request counter missing from exposition")
	}
}

func TestCORSPreflight(t *testing.T) {
	a := newTestAPI(t, config.DefaultUploadMaxBytes)

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPanicsBecomeInternalErrors(t *testing.T) {
	h := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.Error != internalErrorMessage {
		t.Fatalf("error = %q", resp.Error)
	}
}
