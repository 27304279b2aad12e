package db

import "gorm.io/gorm"

// ContactInfo 保存站点对外展示的联系方式，按账号唯一，采用 upsert 语义维护
type ContactInfo struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex;not null"`
	Email   string `gorm:"size:120"`
	Phone   string `gorm:"size:60"`
	Address string `gorm:"size:255"`
}

// TableName 自定义表名，避免被复数化为 contact_infos 之外的形式
func (ContactInfo) TableName() string {
	return "contact_infos"
}

// ContactSubmission 保存访客通过联系表单提交的留言
type ContactSubmission struct {
	gorm.Model
	Name    string `gorm:"size:120;not null"`
	Email   string `gorm:"size:120;not null"`
	Subject string `gorm:"size:200;not null"`
	Message string `gorm:"type:text;not null"`
	Status  string `gorm:"size:20;default:new"` // new, read, responded
}

const (
	// SubmissionStatusNew 表示尚未处理的新留言。
	SubmissionStatusNew = "new"
	// SubmissionStatusRead 表示管理员已读。
	SubmissionStatusRead = "read"
	// SubmissionStatusResponded 表示已回复。
	SubmissionStatusResponded = "responded"
)
