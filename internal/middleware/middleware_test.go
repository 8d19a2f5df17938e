package middleware

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"account-service/internal/redis"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEmailRouter() *gin.Engine {
	r := gin.New()
	r.POST("/check", EmailValidator(), func(c *gin.Context) {
		c.String(http.StatusOK, EmailFromContext(c))
	})
	return r
}

func TestEmailValidatorJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"email":"a@x.com"}`, http.StatusOK},
		{"malformed", `{"email":"not-an-email"}`, http.StatusBadRequest},
		{"missing", `{"id":"abc"}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"invalid json", `{"email":`, http.StatusBadRequest},
	}
	r := newEmailRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d (%s)", tt.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestEmailValidatorKeepsJSONBodyForHandler(t *testing.T) {
	r := gin.New()
	r.POST("/check", EmailValidator(), func(c *gin.Context) {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, body.ID)
	})

	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(`{"email":"a@x.com","id":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "abc" {
		t.Fatalf("expected handler to read id, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestEmailValidatorMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("email", "a@x.com")
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/check", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	newEmailRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "a@x.com" {
		t.Fatalf("expected multipart email accepted, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestMultipartFormRejectsOversizedBody(t *testing.T) {
	r := gin.New()
	r.POST("/upload", MultipartForm(1024), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("profileImage", "big.png")
	_, _ = part.Write(bytes.Repeat([]byte{0xAB}, 4096))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestMultipartFormPassesJSONThrough(t *testing.T) {
	r := gin.New()
	r.POST("/upload", MultipartForm(8), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"email":"a@x.com","username":"long enough"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

type stubLimiter struct {
	result *redis.RateLimitResult
	err    error
}

func (s stubLimiter) AllowLogin(ctx context.Context, ip string) (*redis.RateLimitResult, error) {
	return s.result, s.err
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		limiter stubLimiter
		status  int
	}{
		{"allowed", stubLimiter{result: &redis.RateLimitResult{Allowed: true, Remaining: 4, Limit: 5, ResetIn: time.Minute}}, http.StatusOK},
		{"exceeded", stubLimiter{result: &redis.RateLimitResult{Allowed: false, Limit: 5, ResetIn: time.Minute}}, http.StatusTooManyRequests},
		{"limiter error", stubLimiter{err: errors.New("redis down")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", LoginRateLimitMiddleware(tt.limiter), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			if tt.limiter.err == nil && rr.Header().Get("X-RateLimit-Limit") != "5" {
				t.Fatalf("expected rate limit headers, got %v", rr.Header())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rr.Header().Get(RequestIDHeader); len(got) != 32 {
		t.Fatalf("expected generated 32-char request id, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}
