package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type contactInfoRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ShowSettings 渲染站点设置页面
func (a *API) ShowSettings(c *gin.Context) {
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"title": "站点设置",
	})
}

// GetContactInfo 返回当前站点联系方式
func (a *API) GetContactInfo(c *gin.Context) {
	info, err := a.contacts.GetInfo(siteOwnerID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取联系方式失败")
		return
	}

	if info == nil {
		c.JSON(http.StatusOK, gin.H{"info": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"info": gin.H{
		"email":   info.Email,
		"phone":   info.Phone,
		"address": info.Address,
	}})
}

// UpdateContactInfo 保存站点联系方式，不存在时创建
func (a *API) UpdateContactInfo(c *gin.Context) {
	var payload contactInfoRequest
	if !bindJSON(c, &payload, "请填写完整的联系方式") {
		return
	}

	info, err := a.contacts.UpsertInfo(siteOwnerID, service.ContactInfoInput{
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrContactInfoInvalidInput) {
			respondError(c, http.StatusBadRequest, "请检查必填项")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存联系方式失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "联系方式已保存",
		"info": gin.H{
			"email":   info.Email,
			"phone":   info.Phone,
			"address": info.Address,
		},
	})
}
