package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/db"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type signupStatusRequest struct {
	Status string `json:"status"`
}

// ShowVolunteerManagement 渲染志愿者报名管理页面
func (a *API) ShowVolunteerManagement(c *gin.Context) {
	c.HTML(http.StatusOK, "volunteers.html", gin.H{
		"title": "志愿者报名",
	})
}

// ListVolunteerSignups 返回志愿者报名列表，支持按状态过滤
func (a *API) ListVolunteerSignups(c *gin.Context) {
	signups, err := a.volunteers.List(c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取报名失败")
		return
	}

	items := make([]gin.H, 0, len(signups))
	for _, signup := range signups {
		items = append(items, signupPayload(signup))
	}

	c.JSON(http.StatusOK, gin.H{"signups": items})
}

// UpdateVolunteerSignupStatus 审核报名（pending/approved/rejected）
func (a *API) UpdateVolunteerSignupStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的报名ID")
		return
	}

	var payload signupStatusRequest
	if !bindJSON(c, &payload, "状态数据格式不正确") {
		return
	}

	signup, err := a.volunteers.UpdateStatus(id, payload.Status)
	if err != nil {
		handleSignupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "报名状态已更新",
		"signup":  signupPayload(*signup),
	})
}

// DeleteVolunteerSignup 删除指定报名
func (a *API) DeleteVolunteerSignup(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的报名ID")
		return
	}

	if err := a.volunteers.Delete(id); err != nil {
		handleSignupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "报名已删除"})
}

func signupPayload(signup db.VolunteerSignup) gin.H {
	return gin.H{
		"id":              signup.ID,
		"name":            signup.Name,
		"email":           signup.Email,
		"phone":           signup.Phone,
		"interests":       signup.Interests,
		"commitmentLevel": signup.CommitmentLevel,
		"skills":          signup.Skills,
		"message":         signup.Message,
		"status":          signup.Status,
		"createdAt":       signup.CreatedAt,
	}
}

func handleSignupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSignupNotFound):
		respondError(c, http.StatusNotFound, "报名不存在")
	case errors.Is(err, service.ErrSignupStatusInvalid):
		respondError(c, http.StatusBadRequest, "报名状态无效")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
