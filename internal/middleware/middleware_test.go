package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/pkg/jwt"
	pkgredis "github.com/nilehomes/landing/internal/pkg/redis"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Signer) {
	t.Helper()
	signer, err := jwt.NewSigner("middleware-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.GET("/admin/ping", Auth(signer), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		fromCtx, _ := PrincipalFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": p.Email, "ctxEmail": fromCtx.Email})
	})
	return r, signer
}

func TestAuthMissingTokenIsUnauthorized(t *testing.T) {
	r, _ := newAuthRouter(t)
	for _, header := range []string{"", "Bearer ", "bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthInvalidTokenIsForbidden(t *testing.T) {
	r, _ := newAuthRouter(t)
	other, _ := jwt.NewSigner("someone-else", time.Hour)
	foreign, _ := other.Sign(1, "x@y.z", "admin")

	for _, token := range []string{"garbage", foreign} {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("token %q: status = %d, want 403", token, w.Code)
		}
	}
}

func TestAuthValidTokenAttachesPrincipal(t *testing.T) {
	r, signer := newAuthRouter(t)
	token, err := signer.Sign(3, "admin@example.com", "admin")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["email"] != "admin@example.com" || body["ctxEmail"] != "admin@example.com" {
		t.Fatalf("principal not attached: %v", body)
	}
}

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"  abc ":       "abc",
		"Bearer abc":   "abc",
		"BEARER  abc ": "abc",
		"Bearer":       "",
	}
	for in, want := range cases {
		if got := NormalizeToken(in); got != want {
			t.Fatalf("NormalizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := pkgredis.Connect("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	r := gin.New()
	r.POST("/leads", RateLimit(rc, zap.NewNop(), "leads", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/leads", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 2 && w.Header().Get("Retry-After") != "60" {
			t.Fatalf("Retry-After = %q", w.Header().Get("Retry-After"))
		}
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/leads", nil)
	req.RemoteAddr = "198.51.100.1:4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("other client status = %d, want 201", w.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := pkgredis.Connect("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	mr.Close()

	r := gin.New()
	r.POST("/leads", RateLimit(rc, zap.NewNop(), "leads", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leads", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d, want 201 while redis is down", i, w.Code)
		}
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextKeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderRequestID) != "abc-123" || w.Body.String() != "abc-123" {
		t.Fatalf("request id not propagated: header=%q body=%q", w.Header().Get(HeaderRequestID), w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(HeaderRequestID)) != 36 {
		t.Fatalf("generated id = %q", w.Header().Get(HeaderRequestID))
	}
}
