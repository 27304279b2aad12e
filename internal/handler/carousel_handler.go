package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/db"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type carouselCreateRequest struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type carouselUpdateRequest struct {
	ImageURL  *string `json:"imageUrl"`
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	SortOrder *int    `json:"order"`
	Active    *bool   `json:"active"`
}

type reorderRequest struct {
	IDs []uint `json:"ids"`
}

// ShowCarouselManagement 渲染轮播图管理页面
func (a *API) ShowCarouselManagement(c *gin.Context) {
	c.HTML(http.StatusOK, "carousel.html", gin.H{
		"title": "轮播图管理",
	})
}

// ListCarouselImages 返回后台管理用的轮播图列表
func (a *API) ListCarouselImages(c *gin.Context) {
	images, err := a.carousels.List(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取轮播图失败")
		return
	}

	items := make([]gin.H, 0, len(images))
	for _, image := range images {
		items = append(items, carouselImagePayload(image))
	}

	c.JSON(http.StatusOK, gin.H{"images": items})
}

// CreateCarouselImage 创建新的轮播图
func (a *API) CreateCarouselImage(c *gin.Context) {
	var payload carouselCreateRequest
	if !bindJSON(c, &payload, "请填写完整的轮播图信息") {
		return
	}

	image, err := a.carousels.Create(service.CarouselImageInput{
		ImageURL: payload.ImageURL,
		Title:    payload.Title,
		Subtitle: payload.Subtitle,
		UserID:   siteOwnerID,
	})
	if err != nil {
		handleCarouselError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "轮播图创建成功",
		"image":   carouselImagePayload(*image),
	})
}

// UpdateCarouselImage 更新轮播图，未提供的字段保持原值
func (a *API) UpdateCarouselImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的轮播图ID")
		return
	}

	var payload carouselUpdateRequest
	if !bindJSON(c, &payload, "请填写完整的轮播图信息") {
		return
	}

	image, err := a.carousels.Update(id, service.CarouselImageUpdate{
		ImageURL:  payload.ImageURL,
		Title:     payload.Title,
		Subtitle:  payload.Subtitle,
		SortOrder: payload.SortOrder,
		Active:    payload.Active,
	})
	if err != nil {
		handleCarouselError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "轮播图已更新",
		"image":   carouselImagePayload(*image),
	})
}

// DeleteCarouselImage 删除指定轮播图
func (a *API) DeleteCarouselImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的轮播图ID")
		return
	}

	if err := a.carousels.Delete(id); err != nil {
		handleCarouselError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "轮播图已删除"})
}

// ReorderCarouselImages 更新排序
func (a *API) ReorderCarouselImages(c *gin.Context) {
	var payload reorderRequest
	if !bindJSON(c, &payload, "排序数据格式不正确") {
		return
	}

	if err := a.carousels.Reorder(payload.IDs); err != nil {
		respondError(c, http.StatusInternalServerError, "更新排序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

func carouselImagePayload(image db.CarouselImage) gin.H {
	return gin.H{
		"id":       image.ID,
		"imageUrl": image.ImageURL,
		"title":    image.Title,
		"subtitle": image.Subtitle,
		"order":    image.SortOrder,
		"active":   image.Active,
	}
}

func handleCarouselError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCarouselImageNotFound):
		respondError(c, http.StatusNotFound, "轮播图不存在")
	case errors.Is(err, service.ErrCarouselInvalidInput):
		respondError(c, http.StatusBadRequest, "请检查必填项")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
