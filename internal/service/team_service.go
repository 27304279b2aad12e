package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beacon/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrTeamMemberNotFound 在指定的团队成员不存在时返回
	ErrTeamMemberNotFound = errors.New("team member not found")
	// ErrTeamMemberInvalidInput 在输入数据不完整时返回
	ErrTeamMemberInvalidInput = errors.New("invalid team member input")
)

// TeamService 负责维护关于我们页面的团队成员
type TeamService struct {
	db *gorm.DB
}

// NewTeamService 构造 TeamService
func NewTeamService(gdb *gorm.DB) *TeamService {
	return &TeamService{db: gdb}
}

// TeamMemberInput 描述创建团队成员时可设置的字段
type TeamMemberInput struct {
	Name     string
	Role     string
	Bio      string
	ImageURL string
	UserID   uint
}

// TeamMemberUpdate 描述更新团队成员时可修改的字段，nil 表示保持原值
type TeamMemberUpdate struct {
	Name      *string
	Role      *string
	Bio       *string
	ImageURL  *string
	SortOrder *int
	Active    *bool
}

// List 返回团队成员集合，按排序值升序
func (s *TeamService) List(activeOnly bool) ([]db.TeamMember, error) {
	query := s.db.Model(&db.TeamMember{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var members []db.TeamMember
	if err := query.Order("sort_order ASC, id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// Get 根据主键获取团队成员
func (s *TeamService) Get(id uint) (*db.TeamMember, error) {
	var member db.TeamMember
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &member, nil
}

// Create 新建团队成员，自动追加到排序末尾并默认展示
func (s *TeamService) Create(input TeamMemberInput) (*db.TeamMember, error) {
	if err := validateTeamMemberInput(input); err != nil {
		return nil, err
	}

	order, err := s.nextSortOrder()
	if err != nil {
		return nil, err
	}

	member := db.TeamMember{
		Name:      strings.TrimSpace(input.Name),
		Role:      strings.TrimSpace(input.Role),
		Bio:       strings.TrimSpace(input.Bio),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		SortOrder: order,
		Active:    true,
		UserID:    input.UserID,
	}

	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return &member, nil
}

// Update 更新指定团队成员，未提供的字段保持原值
func (s *TeamService) Update(id uint, update TeamMemberUpdate) (*db.TeamMember, error) {
	var member db.TeamMember
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("find team member: %w", err)
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrTeamMemberInvalidInput)
		}
		member.Name = strings.TrimSpace(*update.Name)
	}
	if update.Role != nil {
		if strings.TrimSpace(*update.Role) == "" {
			return nil, fmt.Errorf("%w: role is required", ErrTeamMemberInvalidInput)
		}
		member.Role = strings.TrimSpace(*update.Role)
	}
	if update.Bio != nil {
		member.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.ImageURL != nil {
		member.ImageURL = strings.TrimSpace(*update.ImageURL)
	}
	if update.SortOrder != nil {
		member.SortOrder = *update.SortOrder
	}
	if update.Active != nil {
		member.Active = *update.Active
	}

	if err := s.db.Save(&member).Error; err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return &member, nil
}

// SetActive 控制成员是否在前台展示
func (s *TeamService) SetActive(id uint, active bool) (*db.TeamMember, error) {
	return s.Update(id, TeamMemberUpdate{Active: &active})
}

// Delete 删除指定团队成员
func (s *TeamService) Delete(id uint) error {
	var member db.TeamMember
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamMemberNotFound
		}
		return fmt.Errorf("find team member: %w", err)
	}
	if err := s.db.Delete(&member).Error; err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return nil
}

// Reorder 按给定顺序重排排序字段
func (s *TeamService) Reorder(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			if err := tx.Model(&db.TeamMember{}).Where("id = ?", id).Update("sort_order", index+1).Error; err != nil {
				return fmt.Errorf("reorder team members: %w", err)
			}
		}
		return nil
	})
}

func (s *TeamService) nextSortOrder() (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.TeamMember{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("resolve team sort order: %w", err)
	}
	return maxOrder + 1, nil
}

func validateTeamMemberInput(input TeamMemberInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrTeamMemberInvalidInput)
	}
	if strings.TrimSpace(input.Role) == "" {
		return fmt.Errorf("%w: role is required", ErrTeamMemberInvalidInput)
	}
	return nil
}
