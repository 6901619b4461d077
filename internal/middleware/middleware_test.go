package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))

	secured := r.Group("/", AuthMiddleware(testSecret))
	secured.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    *UserID(c),
			"email": c.GetString(ContextUserEmail),
			"role":  c.GetString(ContextUserRole),
		})
	})
	secured.GET("/staff", RequireRole("staff"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.MapClaims{
		"sub":   1,
		"email": "ana@clinic.test",
		"role":  "staff",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	expired := jwt.MapClaims{
		"sub":   1,
		"email": "ana@clinic.test",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	noEmail := jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, valid, "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, expired, testSecret), http.StatusUnauthorized},
		{"missing email", "Bearer " + signed(t, noEmail, testSecret), http.StatusUnauthorized},
		{"valid", "Bearer " + signed(t, valid, testSecret), http.StatusOK},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter()

	for role, want := range map[string]int{"staff": http.StatusNoContent, "patient": http.StatusForbidden} {
		token := signed(t, jwt.MapClaims{
			"sub":   2,
			"email": "x@clinic.test",
			"role":  role,
			"exp":   time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != want {
			t.Errorf("role %s: expected %d, got %d", role, want, w.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"any origin", nil, "http://localhost:3000", "http://localhost:3000"},
		{"listed origin", []string{"https://portal.clinic.test/"}, "https://portal.clinic.test", "https://portal.clinic.test"},
		{"unlisted origin", []string{"https://portal.clinic.test"}, "https://evil.test", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tt.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodOptions, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusNoContent {
				t.Errorf("expected 204, got %d", w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("allow-origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, zap.NewNop())

	r := gin.New()
	r.GET("/chat", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/chat", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d within burst: got %d", i, code)
		}
	}
	if code := call("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", code)
	}
	if code := call("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other caller should not be limited, got %d", code)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0, zap.NewNop())

	r := gin.New()
	r.GET("/chat", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, w.Code)
		}
	}
}
