package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func TestAuthRequiredRedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("beacon_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/admin/secret", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/secret", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rr.Code)
	}
	if location := rr.Header().Get("Location"); location != "/admin/login" {
		t.Fatalf("expected redirect to /admin/login, got %q", location)
	}
}

func TestAuthRequiredAllowsSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("beacon_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/session", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("user_id", uint(1))
		session.Save()
		c.String(http.StatusOK, "ok")
	})
	r.GET("/admin/secret", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	login := httptest.NewRequest(http.MethodGet, "/session", nil)
	loginRec := httptest.NewRecorder()
	r.ServeHTTP(loginRec, login)

	req := httptest.NewRequest(http.MethodGet, "/admin/secret", nil)
	for _, c := range loginRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
