package db

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost 定义了博客文章模型
// Content 存储 Markdown 原文，渲染在展示层完成
// PublishedAt 仅由发布状态切换驱动，不允许直接写入
type BlogPost struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:200;uniqueIndex;not null"`
	Excerpt     string `gorm:"type:text"`
	Content     string `gorm:"type:text"`
	ImageURL    string `gorm:"size:255"`
	Category    string `gorm:"size:80"`
	ReadTime    int    `gorm:"default:0"` // 预计阅读分钟数
	Published   bool   `gorm:"default:false"`
	PublishedAt *time.Time
	UserID      uint
	User        User
}
