package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/carousel"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type displaySelectRequest struct {
	Index int `json:"index"`
}

// GetDisplayState 返回大厅展示端当前播放状态，供展示页轮询
func (a *API) GetDisplayState(c *gin.Context) {
	state, err := a.display.State()
	if err != nil {
		handleDisplayError(c, err)
		return
	}

	c.JSON(http.StatusOK, displayStatePayload(state))
}

// DisplayNext 手动切换到下一张并暂停自动播放
func (a *API) DisplayNext(c *gin.Context) {
	state, err := a.display.Next()
	if err != nil {
		handleDisplayError(c, err)
		return
	}

	c.JSON(http.StatusOK, displayStatePayload(state))
}

// DisplayPrevious 手动切换到上一张并暂停自动播放
func (a *API) DisplayPrevious(c *gin.Context) {
	state, err := a.display.Previous()
	if err != nil {
		handleDisplayError(c, err)
		return
	}

	c.JSON(http.StatusOK, displayStatePayload(state))
}

// DisplaySelect 手动跳转到指定幻灯片并暂停自动播放
func (a *API) DisplaySelect(c *gin.Context) {
	var payload displaySelectRequest
	if !bindJSON(c, &payload, "幻灯片索引格式不正确") {
		return
	}

	state, err := a.display.Select(payload.Index)
	if err != nil {
		handleDisplayError(c, err)
		return
	}

	c.JSON(http.StatusOK, displayStatePayload(state))
}

// DisplayResume 重新开启自动播放
func (a *API) DisplayResume(c *gin.Context) {
	state, err := a.display.Resume()
	if err != nil {
		handleDisplayError(c, err)
		return
	}

	c.JSON(http.StatusOK, displayStatePayload(state))
}

// DisplayReload 在轮播图编辑后重建展示端播放序列
func (a *API) DisplayReload(c *gin.Context) {
	if err := a.display.Reload(); err != nil {
		respondError(c, http.StatusInternalServerError, "重建播放序列失败")
		return
	}

	state, err := a.display.State()
	if err != nil {
		if errors.Is(err, service.ErrDisplayEmpty) {
			c.JSON(http.StatusOK, gin.H{"message": "播放序列已重建", "empty": true})
			return
		}
		respondError(c, http.StatusInternalServerError, "重建播放序列失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "播放序列已重建",
		"state":   displayStatePayload(state),
	})
}

func displayStatePayload(state service.DisplayState) gin.H {
	return gin.H{
		"index":  state.Index,
		"total":  state.Total,
		"paused": state.Paused,
		"slide": gin.H{
			"imageUrl": state.Slide.ImageURL,
			"title":    state.Slide.Title,
			"subtitle": state.Slide.Subtitle,
		},
	}
}

func handleDisplayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDisplayEmpty):
		respondError(c, http.StatusNotFound, "当前没有可展示的轮播图")
	case errors.Is(err, carousel.ErrSlideOutOfRange):
		respondError(c, http.StatusBadRequest, "幻灯片索引超出范围")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
