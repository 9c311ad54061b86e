package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/api/models"
)

func setupRouter(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(OnlyAllowLocal, Session(60))
	router.POST("/upload", UploadRateLimit(perMinute), func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return router
}

func request(router *gin.Engine, remote string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.RemoteAddr = remote
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOnlyAllowLocal(t *testing.T) {
	router := setupRouter(0)
	if w := request(router, "203.0.113.7:5000", nil); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for remote client, got %d", w.Code)
	}
	if w := request(router, "[::1]:5000", nil); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for ::1, got %d", w.Code)
	}
}

func TestSessionCookieIssuedOnce(t *testing.T) {
	router := setupRouter(0)
	w := request(router, "127.0.0.1:5000", nil)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("Expected a session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	if w.Body.String() != cookies[0].Value {
		t.Errorf("handler saw session %q, cookie is %q", w.Body.String(), cookies[0].Value)
	}

	w = request(router, "127.0.0.1:5000", cookies[0])
	if len(w.Result().Cookies()) != 0 {
		t.Error("valid cookie should not be reissued")
	}
	if w.Body.String() != cookies[0].Value {
		t.Error("session id changed between requests")
	}

	w = request(router, "127.0.0.1:5000", &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	if len(w.Result().Cookies()) != 1 {
		t.Error("invalid cookie should be replaced")
	}
}

func TestUploadRateLimit(t *testing.T) {
	models.ResetLimiters()
	router := setupRouter(1)
	if w := request(router, "127.0.0.1:5000", nil); w.Code != http.StatusOK {
		t.Fatalf("first request got %d", w.Code)
	}
	if w := request(router, "127.0.0.1:5000", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
}
