package handler

import (
	"net/http"
	"time"

	"github.com/beacon/internal/carousel"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	blogs      *service.BlogService
	carousels  *service.CarouselService
	events     *service.EventService
	team       *service.TeamService
	contacts   *service.ContactService
	volunteers *service.VolunteerService
	display    *service.DisplayService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, uploadDir, uploadURL string) *API {
	carouselService := service.NewCarouselService(db)

	return &API{
		db:         db,
		blogs:      service.NewBlogService(db),
		carousels:  carouselService,
		events:     service.NewEventService(db),
		team:       service.NewTeamService(db),
		contacts:   service.NewContactService(db),
		volunteers: service.NewVolunteerService(db),
		display:    service.NewDisplayService(carouselService, carousel.DefaultInterval),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Display exposes the lobby display service so the router can reload it
// at startup and stop it on shutdown.
func (a *API) Display() *service.DisplayService {
	return a.display
}

// renderPublic 在渲染前台模板时自动附加站点联系方式与年份。
func (a *API) renderPublic(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["contact"]; !exists {
		info, err := a.contacts.GetInfo(siteOwnerID)
		if err == nil && info != nil {
			payload["contact"] = info
		}
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}

// HealthCheck 提供部署与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}
