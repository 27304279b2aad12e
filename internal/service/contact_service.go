package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beacon/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrSubmissionNotFound 在指定的留言不存在时返回
	ErrSubmissionNotFound = errors.New("contact submission not found")
	// ErrSubmissionInvalidInput 在表单数据不完整时返回
	ErrSubmissionInvalidInput = errors.New("invalid contact submission input")
	// ErrSubmissionStatusInvalid 在状态取值非法时返回
	ErrSubmissionStatusInvalid = errors.New("contact submission status is invalid")
	// ErrContactInfoInvalidInput 在联系方式数据不完整时返回
	ErrContactInfoInvalidInput = errors.New("invalid contact info input")
)

// ContactService 负责站点联系方式的 upsert 维护与访客留言的收件处理
type ContactService struct {
	db *gorm.DB
}

// NewContactService 构造 ContactService
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ContactInfoInput 描述站点联系方式的全部字段
type ContactInfoInput struct {
	Email   string
	Phone   string
	Address string
}

// SubmissionInput 描述访客联系表单提交的字段
type SubmissionInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// GetInfo 返回指定账号的联系方式，不存在时返回 nil 而非错误
func (s *ContactService) GetInfo(userID uint) (*db.ContactInfo, error) {
	var info db.ContactInfo
	if err := s.db.Where("user_id = ?", userID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact info: %w", err)
	}
	return &info, nil
}

// UpsertInfo 更新联系方式，账号下尚无记录时创建
func (s *ContactService) UpsertInfo(userID uint, input ContactInfoInput) (*db.ContactInfo, error) {
	if err := validateContactInfoInput(input); err != nil {
		return nil, err
	}

	var info db.ContactInfo
	err := s.db.Where("user_id = ?", userID).First(&info).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find contact info: %w", err)
		}

		info = db.ContactInfo{
			UserID:  userID,
			Email:   strings.TrimSpace(input.Email),
			Phone:   strings.TrimSpace(input.Phone),
			Address: strings.TrimSpace(input.Address),
		}
		if err := s.db.Create(&info).Error; err != nil {
			return nil, fmt.Errorf("create contact info: %w", err)
		}
		return &info, nil
	}

	info.Email = strings.TrimSpace(input.Email)
	info.Phone = strings.TrimSpace(input.Phone)
	info.Address = strings.TrimSpace(input.Address)

	if err := s.db.Save(&info).Error; err != nil {
		return nil, fmt.Errorf("update contact info: %w", err)
	}
	return &info, nil
}

// Submit 接收访客留言，初始状态固定为 new
func (s *ContactService) Submit(input SubmissionInput) (*db.ContactSubmission, error) {
	if err := validateSubmissionInput(input); err != nil {
		return nil, err
	}

	submission := db.ContactSubmission{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  db.SubmissionStatusNew,
	}

	if err := s.db.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return &submission, nil
}

// ListSubmissions 返回留言集合，最新的在前
// status 非空时按状态过滤
func (s *ContactService) ListSubmissions(status string) ([]db.ContactSubmission, error) {
	query := s.db.Model(&db.ContactSubmission{})
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var submissions []db.ContactSubmission
	if err := query.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return submissions, nil
}

// GetSubmission 根据主键获取留言
func (s *ContactService) GetSubmission(id uint) (*db.ContactSubmission, error) {
	var submission db.ContactSubmission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get contact submission: %w", err)
	}
	return &submission, nil
}

// UpdateSubmissionStatus 由管理员流转留言状态
func (s *ContactService) UpdateSubmissionStatus(id uint, status string) (*db.ContactSubmission, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validSubmissionStatus(status) {
		return nil, ErrSubmissionStatusInvalid
	}

	var submission db.ContactSubmission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find contact submission: %w", err)
	}

	submission.Status = status
	if err := s.db.Save(&submission).Error; err != nil {
		return nil, fmt.Errorf("update contact submission: %w", err)
	}
	return &submission, nil
}

// DeleteSubmission 删除指定留言
func (s *ContactService) DeleteSubmission(id uint) error {
	var submission db.ContactSubmission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("find contact submission: %w", err)
	}
	if err := s.db.Delete(&submission).Error; err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	return nil
}

// CountSubmissionsByStatus 统计各状态下的留言数量，用于后台面板
func (s *ContactService) CountSubmissionsByStatus(status string) (int64, error) {
	query := s.db.Model(&db.ContactSubmission{})
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count contact submissions: %w", err)
	}
	return count, nil
}

func validSubmissionStatus(status string) bool {
	switch status {
	case db.SubmissionStatusNew, db.SubmissionStatusRead, db.SubmissionStatusResponded:
		return true
	}
	return false
}

func validateContactInfoInput(input ContactInfoInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrContactInfoInvalidInput)
	}
	if strings.TrimSpace(input.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrContactInfoInvalidInput)
	}
	if strings.TrimSpace(input.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrContactInfoInvalidInput)
	}
	return nil
}

func validateSubmissionInput(input SubmissionInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrSubmissionInvalidInput)
	}
	if strings.TrimSpace(input.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrSubmissionInvalidInput)
	}
	if strings.TrimSpace(input.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrSubmissionInvalidInput)
	}
	if strings.TrimSpace(input.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrSubmissionInvalidInput)
	}
	return nil
}
