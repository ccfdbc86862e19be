package gin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ginpkg "github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/link-checker/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
)

func TestRequestIDLoggerMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	router.ServeHTTP(w, req)

	reqID := w.Header().Get("X-Request-ID")
	const expectedLen = 32
	if len(reqID) != expectedLen {
		t.Errorf("generated request ID length = %d, want %d", len(reqID), expectedLen)
	}
}

func TestRequestIDLoggerMiddleware_PreservesExistingID(t *testing.T) {
	t.Parallel()

	const inboundID = "trace-from-upstream-abc123"

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))

	var gotCtxID string
	router.GET("/test", func(c *ginpkg.Context) {
		gotCtxID = c.GetString("request_id")
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", inboundID)
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != inboundID {
		t.Errorf("response X-Request-ID = %q, want %q", got, inboundID)
	}
	if gotCtxID != inboundID {
		t.Errorf("gin context request_id = %q, want %q", gotCtxID, inboundID)
	}
}

func TestRequestIDLoggerMiddleware_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	oversizedID := strings.Repeat("x", 200)
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", oversizedID)
	router.ServeHTTP(w, req)

	gotID := w.Header().Get("X-Request-ID")
	if gotID == oversizedID || gotID == "" {
		t.Errorf("expected a freshly generated ID, got %q", gotID)
	}
}

func TestRequestIDLoggerMiddleware_UniqueIDs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	const iterations = 100
	ids := make(map[string]bool, iterations)
	for range iterations {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		id := w.Header().Get("X-Request-ID")
		if ids[id] {
			t.Fatalf("duplicate request ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware([]string{"https://dashboard.example.com"}))
	router.GET("/test", func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "https://dashboard.example.com")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware([]string{"https://dashboard.example.com"}))
	router.GET("/test", func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header, got %q", got)
	}
}

func TestCORSMiddleware_NoOriginsConfigured(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(nil))
	router.GET("/test", func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "https://dashboard.example.com")
	router.ServeHTTP(w, req)

	if w.Code == http.StatusNoContent {
		t.Error("preflight answered although no origins are allowed")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header, got %q", got)
	}
}

func TestRecoveryMiddleware_Returns500(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/panic", func(*ginpkg.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", http.NoBody))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestHealth_DegradedRedisStillOK(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("link-checker", 8094).
		WithLogger(logger.NewNop()).
		WithDatabaseHealthCheck(func() error { return nil }).
		WithRedisHealthCheck(func() error { return errors.New("connection refused") }).
		Build()

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body infragin.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != infragin.HealthStatusDegraded {
		t.Errorf("status = %q, want degraded", body.Status)
	}
	if body.Checks["database"].Status != infragin.HealthStatusHealthy {
		t.Errorf("database check = %q, want healthy", body.Checks["database"].Status)
	}
}

func TestHealth_DatabaseDownIsUnavailable(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("link-checker", 8094).
		WithLogger(logger.NewNop()).
		WithDatabaseHealthCheck(func() error { return errors.New("dial tcp: refused") }).
		Build()

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestServerRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	server := infragin.NewServer(infragin.Config{Port: freePort(t)}, logger.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func newTestRouter(t *testing.T) *ginpkg.Engine {
	t.Helper()

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}
