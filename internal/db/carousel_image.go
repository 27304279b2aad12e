package db

import "gorm.io/gorm"

// CarouselImage 定义首页轮播图模型
// SortOrder 从 1 开始，决定展示顺序；Active=false 的图片不参与展示
type CarouselImage struct {
	gorm.Model
	ImageURL  string `gorm:"size:255;not null"`
	Title     string `gorm:"size:200;not null"`
	Subtitle  string `gorm:"size:255"`
	SortOrder int    `gorm:"default:0"`
	Active    bool   `gorm:"default:true"`
	UserID    uint
}

// TableName 自定义表名以保持命名一致。
func (CarouselImage) TableName() string {
	return "carousel_images"
}
