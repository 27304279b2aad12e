package db

import (
	"time"

	"gorm.io/gorm"
)

// Event 定义公益活动模型
// Date 表示活动日期，TimeOfDay 保存展示用的时间段文本（如 "9:00 AM - 2:00 PM"）
type Event struct {
	gorm.Model
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"not null"`
	TimeOfDay   string    `gorm:"size:80"`
	Location    string    `gorm:"size:200"`
	ImageURL    string    `gorm:"size:255"`
	Category    string    `gorm:"size:80"`
	Attendees   int       `gorm:"default:0"`
	Active      bool      `gorm:"default:true"`
	UserID      uint
}
