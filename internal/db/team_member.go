package db

import "gorm.io/gorm"

// TeamMember 定义团队成员模型，展示在关于我们页面
// SortOrder 值越小越靠前
type TeamMember struct {
	gorm.Model
	Name      string `gorm:"size:120;not null"`
	Role      string `gorm:"size:120;not null"`
	Bio       string `gorm:"type:text"`
	ImageURL  string `gorm:"size:255"`
	SortOrder int    `gorm:"default:0"`
	Active    bool   `gorm:"default:true"`
	UserID    uint
}
