package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beacon/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrSignupNotFound 在指定的志愿者报名不存在时返回
	ErrSignupNotFound = errors.New("volunteer signup not found")
	// ErrSignupInvalidInput 在报名表单数据不完整时返回
	ErrSignupInvalidInput = errors.New("invalid volunteer signup input")
	// ErrSignupStatusInvalid 在状态取值非法时返回
	ErrSignupStatusInvalid = errors.New("volunteer signup status is invalid")
)

// VolunteerService 负责志愿者报名的收件与审核流转
type VolunteerService struct {
	db *gorm.DB
}

// NewVolunteerService 构造 VolunteerService
func NewVolunteerService(gdb *gorm.DB) *VolunteerService {
	return &VolunteerService{db: gdb}
}

// SignupInput 描述志愿者报名表单提交的字段
type SignupInput struct {
	Name            string
	Email           string
	Phone           string
	Interests       string
	CommitmentLevel string
	Skills          string
	Message         string
}

// Submit 接收志愿者报名，初始状态固定为 pending
func (s *VolunteerService) Submit(input SignupInput) (*db.VolunteerSignup, error) {
	if err := validateSignupInput(input); err != nil {
		return nil, err
	}

	signup := db.VolunteerSignup{
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		Interests:       strings.TrimSpace(input.Interests),
		CommitmentLevel: strings.TrimSpace(input.CommitmentLevel),
		Skills:          strings.TrimSpace(input.Skills),
		Message:         strings.TrimSpace(input.Message),
		Status:          db.SignupStatusPending,
	}

	if err := s.db.Create(&signup).Error; err != nil {
		return nil, fmt.Errorf("create volunteer signup: %w", err)
	}
	return &signup, nil
}

// List 返回报名集合，最新的在前
// status 非空时按状态过滤
func (s *VolunteerService) List(status string) ([]db.VolunteerSignup, error) {
	query := s.db.Model(&db.VolunteerSignup{})
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var signups []db.VolunteerSignup
	if err := query.Order("created_at DESC").Find(&signups).Error; err != nil {
		return nil, fmt.Errorf("list volunteer signups: %w", err)
	}
	return signups, nil
}

// Get 根据主键获取报名
func (s *VolunteerService) Get(id uint) (*db.VolunteerSignup, error) {
	var signup db.VolunteerSignup
	if err := s.db.First(&signup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, fmt.Errorf("get volunteer signup: %w", err)
	}
	return &signup, nil
}

// UpdateStatus 由管理员审核报名
func (s *VolunteerService) UpdateStatus(id uint, status string) (*db.VolunteerSignup, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validSignupStatus(status) {
		return nil, ErrSignupStatusInvalid
	}

	var signup db.VolunteerSignup
	if err := s.db.First(&signup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, fmt.Errorf("find volunteer signup: %w", err)
	}

	signup.Status = status
	if err := s.db.Save(&signup).Error; err != nil {
		return nil, fmt.Errorf("update volunteer signup: %w", err)
	}
	return &signup, nil
}

// Delete 删除指定报名
func (s *VolunteerService) Delete(id uint) error {
	var signup db.VolunteerSignup
	if err := s.db.First(&signup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSignupNotFound
		}
		return fmt.Errorf("find volunteer signup: %w", err)
	}
	if err := s.db.Delete(&signup).Error; err != nil {
		return fmt.Errorf("delete volunteer signup: %w", err)
	}
	return nil
}

// CountByStatus 统计各状态下的报名数量，用于后台面板
func (s *VolunteerService) CountByStatus(status string) (int64, error) {
	query := s.db.Model(&db.VolunteerSignup{})
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count volunteer signups: %w", err)
	}
	return count, nil
}

func validSignupStatus(status string) bool {
	switch status {
	case db.SignupStatusPending, db.SignupStatusApproved, db.SignupStatusRejected:
		return true
	}
	return false
}

func validateSignupInput(input SignupInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrSignupInvalidInput)
	}
	if strings.TrimSpace(input.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrSignupInvalidInput)
	}
	if strings.TrimSpace(input.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrSignupInvalidInput)
	}
	if strings.TrimSpace(input.Interests) == "" {
		return fmt.Errorf("%w: interests are required", ErrSignupInvalidInput)
	}
	if strings.TrimSpace(input.CommitmentLevel) == "" {
		return fmt.Errorf("%w: commitment level is required", ErrSignupInvalidInput)
	}
	if strings.TrimSpace(input.Skills) == "" {
		return fmt.Errorf("%w: skills are required", ErrSignupInvalidInput)
	}
	return nil
}
