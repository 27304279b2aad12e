package handler

import (
	"net/http"
	"strings"

	"github.com/beacon/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderPublic(c, http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
	})
}

// Login 处理管理员登录请求，成功后写入会话并跳转到后台
func (a *API) Login(c *gin.Context) {
	// EnsureUser 存储前会去除首尾空白，查找时保持一致
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	// 查找用户
	var user db.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		a.renderPublic(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid email or password",
		})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.renderPublic(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid email or password",
		})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("email", user.Email)
	if err := session.Save(); err != nil {
		a.renderPublic(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Admin Login",
			"error": "Failed to save session",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理管理员登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板，汇总各实体数量与最新留言
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	email := session.Get("email")

	var carouselCount, teamCount, eventCount, postCount int64
	a.db.Model(&db.CarouselImage{}).Count(&carouselCount)
	a.db.Model(&db.TeamMember{}).Count(&teamCount)
	a.db.Model(&db.Event{}).Count(&eventCount)
	a.db.Model(&db.BlogPost{}).Count(&postCount)

	newMessages, _ := a.contacts.CountSubmissionsByStatus(db.SubmissionStatusNew)
	pendingSignups, _ := a.volunteers.CountByStatus(db.SignupStatusPending)

	recent, err := a.contacts.ListSubmissions("")
	if err != nil {
		recent = nil
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":          "管理面板",
		"email":          email,
		"carouselCount":  carouselCount,
		"teamCount":      teamCount,
		"eventCount":     eventCount,
		"postCount":      postCount,
		"newMessages":    newMessages,
		"pendingSignups": pendingSignups,
		"recentMessages": recent,
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
