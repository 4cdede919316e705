package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"learnhub/config"
	"learnhub/services/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
}

func whoami(c *fiber.Ctx) error {
	return JsonResponse(c, fiber.StatusOK, true, "ok", UserID(c))
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", JWTMiddleware, whoami)

	token, err := GenerateJWT("user-1", "Ada", "STUDENT", "ada@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-1", decode(t, resp.Body)["data"])

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "user-1"})
	forgedToken, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	numeric := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 7})
	numericToken, err := numeric.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Token " + token,
		"bad sig":      "Bearer " + forgedToken,
		"numeric user": "Bearer " + numericToken,
	} {
		req := httptest.NewRequest("GET", "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", JWTMiddleware, RequireRole("ADMIN"), whoami)

	for role, want := range map[string]int{"ADMIN": fiber.StatusOK, "STUDENT": fiber.StatusForbidden} {
		token, err := GenerateJWT("user-1", "Ada", role, "ada@example.com")
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

type memoryCounter struct {
	mu   sync.Mutex
	hits map[string]int64
}

func (m *memoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int64{}
	}
	m.hits[key]++
	return m.hits[key], window, nil
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	limiter := NewRateLimiter(&memoryCounter{})
	app.Get("/limited", limiter.Limit("verify", 2, time.Minute), whoami)

	for i, want := range []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests} {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, "request %d", i+1)
		if want == fiber.StatusTooManyRequests {
			assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
		}
	}
}

func TestRateLimiterWithoutCounterPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Get("/open", NewRateLimiter(nil).Limit("verify", 1, time.Minute), whoami)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(Metrics(m))
	app.Get("/cart/:id", whoami)

	resp, err := app.Test(httptest.NewRequest("GET", "/cart/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/cart/:id", "200")))
}
