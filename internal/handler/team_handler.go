package handler

import (
	"errors"
	"net/http"

	"github.com/beacon/internal/db"
	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
)

type teamCreateRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl"`
}

type teamUpdateRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Bio       *string `json:"bio"`
	ImageURL  *string `json:"imageUrl"`
	SortOrder *int    `json:"order"`
	Active    *bool   `json:"active"`
}

// ShowTeamManagement 渲染团队成员管理页面
func (a *API) ShowTeamManagement(c *gin.Context) {
	c.HTML(http.StatusOK, "team.html", gin.H{
		"title": "团队成员管理",
	})
}

// ListTeamMembers 返回后台管理用的团队成员列表
func (a *API) ListTeamMembers(c *gin.Context) {
	members, err := a.team.List(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取团队成员失败")
		return
	}

	items := make([]gin.H, 0, len(members))
	for _, member := range members {
		items = append(items, teamMemberPayload(member))
	}

	c.JSON(http.StatusOK, gin.H{"members": items})
}

// CreateTeamMember 创建新的团队成员
func (a *API) CreateTeamMember(c *gin.Context) {
	var payload teamCreateRequest
	if !bindJSON(c, &payload, "请填写完整的成员信息") {
		return
	}

	member, err := a.team.Create(service.TeamMemberInput{
		Name:     payload.Name,
		Role:     payload.Role,
		Bio:      payload.Bio,
		ImageURL: payload.ImageURL,
		UserID:   siteOwnerID,
	})
	if err != nil {
		handleTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "成员创建成功",
		"member":  teamMemberPayload(*member),
	})
}

// UpdateTeamMember 更新团队成员，未提供的字段保持原值
func (a *API) UpdateTeamMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的成员ID")
		return
	}

	var payload teamUpdateRequest
	if !bindJSON(c, &payload, "请填写完整的成员信息") {
		return
	}

	member, err := a.team.Update(id, service.TeamMemberUpdate{
		Name:      payload.Name,
		Role:      payload.Role,
		Bio:       payload.Bio,
		ImageURL:  payload.ImageURL,
		SortOrder: payload.SortOrder,
		Active:    payload.Active,
	})
	if err != nil {
		handleTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成员信息已更新",
		"member":  teamMemberPayload(*member),
	})
}

// DeleteTeamMember 删除指定团队成员
func (a *API) DeleteTeamMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的成员ID")
		return
	}

	if err := a.team.Delete(id); err != nil {
		handleTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成员已删除"})
}

// ReorderTeamMembers 更新排序
func (a *API) ReorderTeamMembers(c *gin.Context) {
	var payload reorderRequest
	if !bindJSON(c, &payload, "排序数据格式不正确") {
		return
	}

	if err := a.team.Reorder(payload.IDs); err != nil {
		respondError(c, http.StatusInternalServerError, "更新排序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

func teamMemberPayload(member db.TeamMember) gin.H {
	return gin.H{
		"id":       member.ID,
		"name":     member.Name,
		"role":     member.Role,
		"bio":      member.Bio,
		"imageUrl": member.ImageURL,
		"order":    member.SortOrder,
		"active":   member.Active,
	}
}

func handleTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamMemberNotFound):
		respondError(c, http.StatusNotFound, "成员不存在")
	case errors.Is(err, service.ErrTeamMemberInvalidInput):
		respondError(c, http.StatusBadRequest, "请检查必填项")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
