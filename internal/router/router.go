package router

import (
	"html/template"

	"github.com/beacon/internal/config"
	"github.com/beacon/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("beacon_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"eq": func(a, b interface{}) bool {
			return a == b
		},
	})
	r.LoadHTMLGlob("web/template/**/*.html")

	// 静态文件服务
	r.Static("/static", "./web/static")
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/healthz", api.HealthCheck)

	// 前台页面
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/events", api.ShowEvents)
	r.GET("/blog", api.ShowBlog)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.GET("/donate", api.ShowDonate)
	r.GET("/volunteer", api.ShowVolunteer)
	r.POST("/volunteer", api.SubmitVolunteer)
	r.GET("/contact", api.ShowContact)
	r.POST("/contact", api.SubmitContact)

	// 大屏轮播状态（供前台轮询）
	r.GET("/api/display", api.GetDisplayState)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/carousel", api.ShowCarouselManagement)
			auth.GET("/team", api.ShowTeamManagement)
			auth.GET("/events", api.ShowEventManagement)
			auth.GET("/blog", api.ShowBlogManagement)
			auth.GET("/messages", api.ShowMessageInbox)
			auth.GET("/volunteers", api.ShowVolunteerManagement)
			auth.GET("/settings", api.ShowSettings)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/carousel", api.ListCarouselImages)
				apiGroup.POST("/carousel", api.CreateCarouselImage)
				apiGroup.PUT("/carousel/reorder", api.ReorderCarouselImages)
				apiGroup.PUT("/carousel/:id", api.UpdateCarouselImage)
				apiGroup.DELETE("/carousel/:id", api.DeleteCarouselImage)

				apiGroup.GET("/team", api.ListTeamMembers)
				apiGroup.POST("/team", api.CreateTeamMember)
				apiGroup.PUT("/team/reorder", api.ReorderTeamMembers)
				apiGroup.PUT("/team/:id", api.UpdateTeamMember)
				apiGroup.DELETE("/team/:id", api.DeleteTeamMember)

				apiGroup.GET("/events", api.ListEvents)
				apiGroup.POST("/events", api.CreateEvent)
				apiGroup.PUT("/events/:id", api.UpdateEvent)
				apiGroup.DELETE("/events/:id", api.DeleteEvent)

				apiGroup.GET("/posts", api.ListBlogPosts)
				apiGroup.GET("/posts/:id", api.GetBlogPost)
				apiGroup.POST("/posts", api.CreateBlogPost)
				apiGroup.PUT("/posts/:id", api.UpdateBlogPost)
				apiGroup.PUT("/posts/:id/publish", api.PublishBlogPost)
				apiGroup.DELETE("/posts/:id", api.DeleteBlogPost)

				apiGroup.GET("/messages", api.ListMessages)
				apiGroup.GET("/messages/:id", api.GetMessage)
				apiGroup.PUT("/messages/:id/status", api.UpdateMessageStatus)
				apiGroup.DELETE("/messages/:id", api.DeleteMessage)

				apiGroup.GET("/volunteers", api.ListVolunteerSignups)
				apiGroup.PUT("/volunteers/:id/status", api.UpdateVolunteerSignupStatus)
				apiGroup.DELETE("/volunteers/:id", api.DeleteVolunteerSignup)

				apiGroup.GET("/contact-info", api.GetContactInfo)
				apiGroup.PUT("/contact-info", api.UpdateContactInfo)

				apiGroup.POST("/upload", api.UploadImage)

				apiGroup.POST("/display/next", api.DisplayNext)
				apiGroup.POST("/display/previous", api.DisplayPrevious)
				apiGroup.POST("/display/select", api.DisplaySelect)
				apiGroup.POST("/display/resume", api.DisplayResume)
				apiGroup.POST("/display/reload", api.DisplayReload)
			}
		}
	}

	return r
}
