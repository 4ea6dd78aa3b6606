package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bazaar/internal/config"

	"github.com/gofiber/fiber/v2"
)

func TestAppErrorHandler(t *testing.T) {
	s := &Server{config: &config.Config{Port: "5000", Env: "test"}}
	app := s.newApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.5:5432: connection refused")
	})

	t.Run("Unhandled Error Is Generic 500", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if strings.Contains(string(raw), "connection refused") {
			t.Fatalf("driver error leaked to the wire: %s", raw)
		}

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
		if body["error"] != "Internal server error" {
			t.Fatalf("expected generic message, got %v", body["error"])
		}
		if _, ok := body["details"]; ok {
			t.Fatalf("500 responses must not carry details, got %v", body["details"])
		}
	})

	t.Run("Unknown Route Keeps 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}

		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["success"] != false {
			t.Fatalf("expected error envelope, got %v", body)
		}
	})
}

// SetupMiddleware must mount the tracing handler so every response
// carries X-Trace-ID.
func TestSetupMiddleware_TraceHeader(t *testing.T) {
	s, _, _ := setupTestServer(t)

	app := fiber.New()
	s.SetupMiddleware(app)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Trace-ID") == "" {
		t.Fatal("expected X-Trace-ID header on traced responses")
	}
}
