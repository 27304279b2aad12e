package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/db"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type blogCreateRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl"`
	Category  string `json:"category"`
	ReadTime  int    `json:"readTime"`
	Published bool   `json:"published"`
}

type blogUpdateRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	ImageURL  *string `json:"imageUrl"`
	Category  *string `json:"category"`
	ReadTime  *int    `json:"readTime"`
	Published *bool   `json:"published"`
}

type blogPublishRequest struct {
	Published bool `json:"published"`
}

// ShowBlogManagement 渲染文章管理页面
func (a *API) ShowBlogManagement(c *gin.Context) {
	c.HTML(http.StatusOK, "blog.html", gin.H{
		"title": "文章管理",
	})
}

// ListBlogPosts 返回后台管理用的文章列表（含草稿）
func (a *API) ListBlogPosts(c *gin.Context) {
	posts, err := a.blogs.List(service.BlogFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	items := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		items = append(items, blogPostPayload(post))
	}

	c.JSON(http.StatusOK, gin.H{"posts": items})
}

// GetBlogPost 返回单篇文章
func (a *API) GetBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.blogs.Get(id)
	if err != nil {
		handleBlogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": blogPostPayload(*post)})
}

// CreateBlogPost 创建新文章
func (a *API) CreateBlogPost(c *gin.Context) {
	var payload blogCreateRequest
	if !bindJSON(c, &payload, "请填写完整的文章信息") {
		return
	}

	post, err := a.blogs.Create(service.BlogPostInput{
		Title:     payload.Title,
		Slug:      payload.Slug,
		Excerpt:   payload.Excerpt,
		Content:   payload.Content,
		ImageURL:  payload.ImageURL,
		Category:  payload.Category,
		ReadTime:  payload.ReadTime,
		Published: payload.Published,
		UserID:    siteOwnerID,
	})
	if err != nil {
		handleBlogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "文章创建成功",
		"post":    blogPostPayload(*post),
	})
}

// UpdateBlogPost 更新文章，未提供的字段保持原值
func (a *API) UpdateBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload blogUpdateRequest
	if !bindJSON(c, &payload, "请填写完整的文章信息") {
		return
	}

	post, err := a.blogs.Update(id, service.BlogPostUpdate{
		Title:     payload.Title,
		Slug:      payload.Slug,
		Excerpt:   payload.Excerpt,
		Content:   payload.Content,
		ImageURL:  payload.ImageURL,
		Category:  payload.Category,
		ReadTime:  payload.ReadTime,
		Published: payload.Published,
	})
	if err != nil {
		handleBlogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "文章已更新",
		"post":    blogPostPayload(*post),
	})
}

// PublishBlogPost 切换文章发布状态
func (a *API) PublishBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload blogPublishRequest
	if !bindJSON(c, &payload, "发布状态格式不正确") {
		return
	}

	post, err := a.blogs.SetPublished(id, payload.Published)
	if err != nil {
		handleBlogError(c, err)
		return
	}

	message := "文章已发布"
	if !post.Published {
		message = "文章已撤回为草稿"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"post":    blogPostPayload(*post),
	})
}

// DeleteBlogPost 删除指定文章
func (a *API) DeleteBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.blogs.Delete(id); err != nil {
		handleBlogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}

func blogPostPayload(post db.BlogPost) gin.H {
	payload := gin.H{
		"id":        post.ID,
		"title":     post.Title,
		"slug":      post.Slug,
		"excerpt":   post.Excerpt,
		"content":   post.Content,
		"imageUrl":  post.ImageURL,
		"category":  post.Category,
		"readTime":  post.ReadTime,
		"published": post.Published,
	}
	if post.PublishedAt != nil {
		payload["publishedAt"] = post.PublishedAt
	} else {
		payload["publishedAt"] = nil
	}
	return payload
}

func handleBlogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBlogPostNotFound):
		respondError(c, http.StatusNotFound, "文章不存在")
	case errors.Is(err, service.ErrBlogSlugTaken):
		respondError(c, http.StatusBadRequest, "该 slug 已被占用")
	case errors.Is(err, service.ErrBlogPostInvalidInput):
		respondError(c, http.StatusBadRequest, "请检查必填项")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
