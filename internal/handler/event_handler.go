package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/beacon/internal/db"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

// eventDateLayout 是前后台交换活动日期使用的格式
const eventDateLayout = "2006-01-02"

type eventCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

type eventUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	Attendees   *int    `json:"attendees"`
	Active      *bool   `json:"active"`
}

// ShowEventManagement 渲染活动管理页面
func (a *API) ShowEventManagement(c *gin.Context) {
	c.HTML(http.StatusOK, "events.html", gin.H{
		"title": "活动管理",
	})
}

// ListEvents 返回后台管理用的活动列表
func (a *API) ListEvents(c *gin.Context) {
	events, err := a.events.List(service.EventFilter{Category: c.Query("category")})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取活动失败")
		return
	}

	items := make([]gin.H, 0, len(events))
	for _, event := range events {
		items = append(items, eventPayload(event))
	}

	c.JSON(http.StatusOK, gin.H{"events": items})
}

// CreateEvent 创建新的活动
func (a *API) CreateEvent(c *gin.Context) {
	var payload eventCreateRequest
	if !bindJSON(c, &payload, "请填写完整的活动信息") {
		return
	}

	date, err := parseEventDate(payload.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "活动日期格式不正确")
		return
	}

	event, err := a.events.Create(service.EventInput{
		Title:       payload.Title,
		Description: payload.Description,
		Date:        date,
		TimeOfDay:   payload.Time,
		Location:    payload.Location,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		UserID:      siteOwnerID,
	})
	if err != nil {
		handleEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "活动创建成功",
		"event":   eventPayload(*event),
	})
}

// UpdateEvent 更新活动，未提供的字段保持原值
func (a *API) UpdateEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var payload eventUpdateRequest
	if !bindJSON(c, &payload, "请填写完整的活动信息") {
		return
	}

	update := service.EventUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		TimeOfDay:   payload.Time,
		Location:    payload.Location,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		Attendees:   payload.Attendees,
		Active:      payload.Active,
	}
	if payload.Date != nil {
		date, err := parseEventDate(*payload.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "活动日期格式不正确")
			return
		}
		update.Date = &date
	}

	event, err := a.events.Update(id, update)
	if err != nil {
		handleEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "活动已更新",
		"event":   eventPayload(*event),
	})
}

// DeleteEvent 删除指定活动
func (a *API) DeleteEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := a.events.Delete(id); err != nil {
		handleEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "活动已删除"})
}

func parseEventDate(raw string) (time.Time, error) {
	return time.Parse(eventDateLayout, strings.TrimSpace(raw))
}

func eventPayload(event db.Event) gin.H {
	return gin.H{
		"id":          event.ID,
		"title":       event.Title,
		"description": event.Description,
		"date":        event.Date.Format(eventDateLayout),
		"time":        event.TimeOfDay,
		"location":    event.Location,
		"imageUrl":    event.ImageURL,
		"category":    event.Category,
		"attendees":   event.Attendees,
		"active":      event.Active,
	}
}

func handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		respondError(c, http.StatusNotFound, "活动不存在")
	case errors.Is(err, service.ErrEventInvalidInput):
		respondError(c, http.StatusBadRequest, "请检查必填项")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
