package db

import "gorm.io/gorm"

// VolunteerSignup 保存志愿者报名表单提交的记录
// Interests 与 Skills 为逗号分隔的文本，前端多选框直接拼接
type VolunteerSignup struct {
	gorm.Model
	Name            string `gorm:"size:120;not null"`
	Email           string `gorm:"size:120;not null"`
	Phone           string `gorm:"size:60;not null"`
	Interests       string `gorm:"type:text;not null"`
	CommitmentLevel string `gorm:"size:80;not null"`
	Skills          string `gorm:"type:text;not null"`
	Message         string `gorm:"type:text"`
	Status          string `gorm:"size:20;default:pending"` // pending, approved, rejected
}

const (
	// SignupStatusPending 表示待审核的报名。
	SignupStatusPending = "pending"
	// SignupStatusApproved 表示审核通过。
	SignupStatusApproved = "approved"
	// SignupStatusRejected 表示已拒绝。
	SignupStatusRejected = "rejected"
)
