package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/db"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type submissionStatusRequest struct {
	Status string `json:"status"`
}

// ShowMessageInbox 渲染访客留言收件箱页面
func (a *API) ShowMessageInbox(c *gin.Context) {
	c.HTML(http.StatusOK, "messages.html", gin.H{
		"title": "访客留言",
	})
}

// ListMessages 返回访客留言列表，支持按状态过滤
func (a *API) ListMessages(c *gin.Context) {
	submissions, err := a.contacts.ListSubmissions(c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取留言失败")
		return
	}

	items := make([]gin.H, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, submissionPayload(submission))
	}

	c.JSON(http.StatusOK, gin.H{"messages": items})
}

// GetMessage 返回单条留言详情
func (a *API) GetMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	submission, err := a.contacts.GetSubmission(id)
	if err != nil {
		handleSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": submissionPayload(*submission)})
}

// UpdateMessageStatus 流转留言状态（new/read/responded）
func (a *API) UpdateMessageStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	var payload submissionStatusRequest
	if !bindJSON(c, &payload, "状态数据格式不正确") {
		return
	}

	submission, err := a.contacts.UpdateSubmissionStatus(id, payload.Status)
	if err != nil {
		handleSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "留言状态已更新",
		"submission": submissionPayload(*submission),
	})
}

// DeleteMessage 删除指定留言
func (a *API) DeleteMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	if err := a.contacts.DeleteSubmission(id); err != nil {
		handleSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "留言已删除"})
}

func submissionPayload(submission db.ContactSubmission) gin.H {
	return gin.H{
		"id":        submission.ID,
		"name":      submission.Name,
		"email":     submission.Email,
		"subject":   submission.Subject,
		"message":   submission.Message,
		"status":    submission.Status,
		"createdAt": submission.CreatedAt,
	}
}

func handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		respondError(c, http.StatusNotFound, "留言不存在")
	case errors.Is(err, service.ErrSubmissionStatusInvalid):
		respondError(c, http.StatusBadRequest, "留言状态无效")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
