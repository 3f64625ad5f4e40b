package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func rateLimitedRouter(rate int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(rate, time.Minute)
	r := gin.New()
	r.POST("/enhance", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	return r
}

func doRequest(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/enhance", nil)
	req.RemoteAddr = ip + ":54321"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBlocksAfterBudget(t *testing.T) {
	r := rateLimitedRouter(2)

	for i := 0; i < 2; i++ {
		if code := doRequest(r, "10.0.0.1"); code != http.StatusAccepted {
			t.Fatalf("request %d: status %d", i+1, code)
		}
	}
	if code := doRequest(r, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("third request: status %d, want 429", code)
	}
}

func TestRateLimiterIsolatesIPs(t *testing.T) {
	r := rateLimitedRouter(1)

	if code := doRequest(r, "10.0.0.1"); code != http.StatusAccepted {
		t.Fatalf("first IP: status %d", code)
	}
	if code := doRequest(r, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("first IP should be exhausted, status %d", code)
	}
	if code := doRequest(r, "10.0.0.2"); code != http.StatusAccepted {
		t.Errorf("second IP must have its own bucket, status %d", code)
	}
}
