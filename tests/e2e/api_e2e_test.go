package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/beacon/internal/config"
	"github.com/beacon/internal/db"
	"github.com/beacon/internal/handler"
	"github.com/beacon/internal/router"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler http.Handler
	public  *localClient
	admin   *localClient
	baseURL string
	api     *handler.API
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_SiteAndDashboard(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("public pages", suite.testPublicPages)
	t.Run("content publishing", suite.testContentPublishing)
	t.Run("visitor intake", suite.testVisitorIntake)
	t.Run("display control", suite.testDisplayControl)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 模板使用相对路径，需要从仓库根目录加载
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to read working directory: %v", err)
	}
	if strings.HasSuffix(wd, "tests/e2e") {
		if err := os.Chdir("../.."); err != nil {
			t.Fatalf("failed to change working directory: %v", err)
		}
		t.Cleanup(func() { os.Chdir(wd) })
	}

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
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
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	hashed, err := bcrypt.GenerateFromPassword([]byte("e2e-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := gdb.Create(&db.User{Email: "admin@beacon.org", Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	teamSvc := service.NewTeamService(gdb)
	if _, err := teamSvc.Create(service.TeamMemberInput{Name: "Sarah Johnson", Role: "Executive Director"}); err != nil {
		t.Fatalf("failed to seed team member: %v", err)
	}

	carouselSvc := service.NewCarouselService(gdb)
	for i := 1; i <= 2; i++ {
		if _, err := carouselSvc.Create(service.CarouselImageInput{
			ImageURL: fmt.Sprintf("/uploads/hero-%d.jpg", i),
			Title:    fmt.Sprintf("Hero %d", i),
		}); err != nil {
			t.Fatalf("failed to seed carousel image: %v", err)
		}
	}

	uploadDir := t.TempDir()
	cfg := config.AppConfig{
		SessionSecret: "test-session-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/uploads",
	}

	api := handler.NewAPI(gdb, uploadDir, cfg.UploadURLPath)
	t.Cleanup(api.Display().Stop)
	engine := router.SetupRouter(cfg, api)

	return &e2eSuite{
		handler: engine,
		public:  newLocalClient(engine, false),
		admin:   newLocalClient(engine, true),
		baseURL: "http://example.test",
		api:     api,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()

	form := url.Values{}
	form.Set("email", "admin@beacon.org")
	form.Set("password", "e2e-secret")

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) get(t *testing.T, client *localClient, path string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request for %s: %v", path, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body for %s: %v", path, err)
	}
	return resp, body
}

func (s *e2eSuite) doJSON(t *testing.T, method, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request for %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body for %s: %v", path, err)
	}
	return resp, body
}

func (s *e2eSuite) testPublicPages(t *testing.T) {
	for _, path := range []string{"/", "/about", "/events", "/blog", "/donate", "/volunteer", "/contact", "/healthz"} {
		resp, _ := s.get(t, s.public, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, resp.StatusCode)
		}
	}

	resp, body := s.get(t, s.public, "/about")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("Sarah Johnson")) {
		t.Fatalf("expected seeded team member on about page")
	}

	// 未登录访问后台应跳转到登录页
	resp, _ = s.get(t, s.public, "/admin/dashboard")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for anonymous dashboard access, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testContentPublishing(t *testing.T) {
	resp, body := s.doJSON(t, http.MethodPost, "/admin/api/posts", map[string]string{
		"title":   "Spring Gala Recap",
		"slug":    "spring-gala-recap",
		"excerpt": "A night to remember.",
		"content": "# Spring Gala\n\nThanks to everyone who came out.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("failed to create post: %d %s", resp.StatusCode, body)
	}

	var created struct {
		Post struct {
			ID uint `json:"id"`
		} `json:"post"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	// 草稿对外不可见
	resp, _ = s.get(t, s.public, "/blog/spring-gala-recap")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected draft to be hidden, got %d", resp.StatusCode)
	}

	resp, body = s.doJSON(t, http.MethodPut, fmt.Sprintf("/admin/api/posts/%d/publish", created.Post.ID), map[string]bool{"published": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed to publish post: %d %s", resp.StatusCode, body)
	}

	resp, body = s.get(t, s.public, "/blog/spring-gala-recap")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected published post to render, got %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("Spring Gala")) {
		t.Fatal("expected rendered post content")
	}
}

func (s *e2eSuite) testVisitorIntake(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Dana Lee")
	form.Set("email", "dana@example.com")
	form.Set("subject", "Saturday hours")
	form.Set("message", "Is the pantry open this weekend?")

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/contact", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to build contact request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.public.Do(req)
	if err != nil {
		t.Fatalf("contact request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected contact submission to succeed, got %d", resp.StatusCode)
	}

	resp, body := s.doJSON(t, http.MethodGet, "/admin/api/messages?status=new", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed to list messages: %d %s", resp.StatusCode, body)
	}

	var listed struct {
		Messages []struct {
			ID      uint   `json:"id"`
			Subject string `json:"subject"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &listed); err != nil {
		t.Fatalf("failed to decode messages: %v", err)
	}
	if len(listed.Messages) != 1 || listed.Messages[0].Subject != "Saturday hours" {
		t.Fatalf("unexpected inbox contents: %+v", listed.Messages)
	}

	resp, body = s.doJSON(t, http.MethodPut, fmt.Sprintf("/admin/api/messages/%d/status", listed.Messages[0].ID), map[string]string{"status": "responded"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed to update message status: %d %s", resp.StatusCode, body)
	}
}

func (s *e2eSuite) testDisplayControl(t *testing.T) {
	resp, body := s.doJSON(t, http.MethodPost, "/admin/api/display/reload", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed to reload display: %d %s", resp.StatusCode, body)
	}

	resp, body = s.get(t, s.public, "/api/display")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected display state, got %d", resp.StatusCode)
	}

	var state struct {
		Index  int  `json:"index"`
		Total  int  `json:"total"`
		Paused bool `json:"paused"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("failed to decode display state: %v", err)
	}
	if state.Total != 2 || state.Paused {
		t.Fatalf("unexpected display state: %+v", state)
	}

	resp, body = s.doJSON(t, http.MethodPost, "/admin/api/display/next", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed to advance display: %d %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("failed to decode display state: %v", err)
	}
	if state.Index != 1 || !state.Paused {
		t.Fatalf("expected paused display at index 1, got %+v", state)
	}

	resp, _ = s.doJSON(t, http.MethodPost, "/admin/api/display/resume", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed to resume display, got %d", resp.StatusCode)
	}
}
