package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beacon/internal/config"
	"github.com/beacon/internal/db"
	"github.com/beacon/internal/handler"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTest(t *testing.T) (*gin.Engine, *handler.API, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 模板与静态文件使用相对路径，测试需要从仓库根目录运行
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to read working directory: %v", err)
	}
	if err := os.Chdir("../.."); err != nil {
		t.Fatalf("failed to change working directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origWD) })

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&db.User{},
		&db.CarouselImage{},
		&db.TeamMember{},
		&db.Event{},
		&db.BlogPost{},
		&db.ContactInfo{},
		&db.ContactSubmission{},
		&db.VolunteerSignup{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	uploadDir := t.TempDir()
	cfg := config.AppConfig{
		ListenAddr:    ":0",
		SessionSecret: "test-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/uploads",
	}

	api := handler.NewAPI(gdb, uploadDir, cfg.UploadURLPath)
	t.Cleanup(api.Display().Stop)

	return SetupRouter(cfg, api), api, uploadDir
}

func seedAdminUser(t *testing.T, api *handler.API, email, password string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := api.DB().Create(&db.User{Email: email, Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}
}

func TestPublicPagesRender(t *testing.T) {
	r, _, _ := setupRouterTest(t)

	for _, path := range []string{"/", "/about", "/events", "/blog", "/donate", "/volunteer", "/contact"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d for %s, got %d", http.StatusOK, path, rr.Code)
		}
	}
}

func TestUnknownBlogSlugReturnsNotFound(t *testing.T) {
	r, _, _ := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/blog/no-such-post", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestAdminPagesRequireLogin(t *testing.T) {
	r, _, _ := setupRouterTest(t)

	for _, path := range []string{"/admin/dashboard", "/admin/carousel", "/admin/blog", "/admin/settings"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusFound {
			t.Fatalf("expected redirect for %s, got %d", path, rr.Code)
		}
		if location := rr.Header().Get("Location"); location != "/admin/login" {
			t.Fatalf("expected redirect to /admin/login for %s, got %q", path, location)
		}
	}
}

func TestLoginFlow(t *testing.T) {
	r, api, _ := setupRouterTest(t)
	seedAdminUser(t, api, "admin@beacon.org", "secret-pass")

	form := url.Values{}
	form.Set("email", "admin@beacon.org")
	form.Set("password", "wrong")
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d for bad password, got %d", http.StatusUnauthorized, rr.Code)
	}

	form.Set("password", "secret-pass")
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", rr.Code)
	}

	dashboard := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range rr.Result().Cookies() {
		dashboard.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, dashboard)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected dashboard after login, got %d", rr.Code)
	}
}

func TestLoginTrimsEmailWhitespace(t *testing.T) {
	r, api, _ := setupRouterTest(t)
	seedAdminUser(t, api, "admin@beacon.org", "secret-pass")

	form := url.Values{}
	form.Set("email", "  admin@beacon.org  ")
	form.Set("password", "secret-pass")
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected padded email to log in, got %d", rr.Code)
	}
}

func TestContactFormSubmission(t *testing.T) {
	r, api, _ := setupRouterTest(t)

	form := url.Values{}
	form.Set("name", "Dana Lee")
	form.Set("email", "dana@example.com")
	form.Set("subject", "Hello")
	form.Set("message", "Keep up the good work.")
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var count int64
	api.DB().Model(&db.ContactSubmission{}).Where("status = ?", db.SubmissionStatusNew).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 new submission, got %d", count)
	}
}

func TestUploadsAliasServesFiles(t *testing.T) {
	r, _, uploadDir := setupRouterTest(t)

	fileName := "example.txt"
	fileContent := []byte("hello uploads")
	if err := os.WriteFile(filepath.Join(uploadDir, fileName), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+fileName, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(fileContent) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}
