package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beacon/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrCarouselImageNotFound 在指定的轮播图不存在时返回
	ErrCarouselImageNotFound = errors.New("carousel image not found")
	// ErrCarouselInvalidInput 在输入数据不完整时返回
	ErrCarouselInvalidInput = errors.New("invalid carousel image input")
)

// CarouselService 负责维护首页轮播图
// 提供排序、启用停用与增删改查能力，与 handler 解耦
type CarouselService struct {
	db *gorm.DB
}

// NewCarouselService 构造 CarouselService
func NewCarouselService(gdb *gorm.DB) *CarouselService {
	return &CarouselService{db: gdb}
}

// CarouselImageInput 描述创建轮播图时可设置的字段
type CarouselImageInput struct {
	ImageURL string
	Title    string
	Subtitle string
	UserID   uint
}

// CarouselImageUpdate 描述更新轮播图时可修改的字段，nil 表示保持原值
type CarouselImageUpdate struct {
	ImageURL  *string
	Title     *string
	Subtitle  *string
	SortOrder *int
	Active    *bool
}

// List 返回轮播图集合，按排序值升序
// 如果 activeOnly 为 true，则仅返回启用中的图片
func (s *CarouselService) List(activeOnly bool) ([]db.CarouselImage, error) {
	query := s.db.Model(&db.CarouselImage{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var images []db.CarouselImage
	if err := query.Order("sort_order ASC, id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list carousel images: %w", err)
	}
	return images, nil
}

// Get 根据主键获取轮播图
func (s *CarouselService) Get(id uint) (*db.CarouselImage, error) {
	var image db.CarouselImage
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarouselImageNotFound
		}
		return nil, fmt.Errorf("get carousel image: %w", err)
	}
	return &image, nil
}

// Create 新建轮播图，自动追加到当前排序末尾并默认启用
func (s *CarouselService) Create(input CarouselImageInput) (*db.CarouselImage, error) {
	if err := validateCarouselInput(input); err != nil {
		return nil, err
	}

	order, err := s.nextSortOrder()
	if err != nil {
		return nil, err
	}

	image := db.CarouselImage{
		ImageURL:  strings.TrimSpace(input.ImageURL),
		Title:     strings.TrimSpace(input.Title),
		Subtitle:  strings.TrimSpace(input.Subtitle),
		SortOrder: order,
		Active:    true,
		UserID:    input.UserID,
	}

	if err := s.db.Create(&image).Error; err != nil {
		return nil, fmt.Errorf("create carousel image: %w", err)
	}
	return &image, nil
}

// Update 更新指定轮播图，未提供的字段保持原值
func (s *CarouselService) Update(id uint, update CarouselImageUpdate) (*db.CarouselImage, error) {
	var image db.CarouselImage
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarouselImageNotFound
		}
		return nil, fmt.Errorf("find carousel image: %w", err)
	}

	if update.ImageURL != nil {
		if strings.TrimSpace(*update.ImageURL) == "" {
			return nil, fmt.Errorf("%w: image url is required", ErrCarouselInvalidInput)
		}
		image.ImageURL = strings.TrimSpace(*update.ImageURL)
	}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrCarouselInvalidInput)
		}
		image.Title = strings.TrimSpace(*update.Title)
	}
	if update.Subtitle != nil {
		image.Subtitle = strings.TrimSpace(*update.Subtitle)
	}
	if update.SortOrder != nil {
		image.SortOrder = *update.SortOrder
	}
	if update.Active != nil {
		image.Active = *update.Active
	}

	if err := s.db.Save(&image).Error; err != nil {
		return nil, fmt.Errorf("update carousel image: %w", err)
	}
	return &image, nil
}

// SetActive 启用或停用指定轮播图
func (s *CarouselService) SetActive(id uint, active bool) (*db.CarouselImage, error) {
	return s.Update(id, CarouselImageUpdate{Active: &active})
}

// Delete 删除指定轮播图
func (s *CarouselService) Delete(id uint) error {
	var image db.CarouselImage
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCarouselImageNotFound
		}
		return fmt.Errorf("find carousel image: %w", err)
	}
	if err := s.db.Delete(&image).Error; err != nil {
		return fmt.Errorf("delete carousel image: %w", err)
	}
	return nil
}

// Reorder 按给定顺序重排排序字段
// 传入的 IDs 会被依次赋值 1,2,3...，未包含的条目保持原排序
func (s *CarouselService) Reorder(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			if err := tx.Model(&db.CarouselImage{}).Where("id = ?", id).Update("sort_order", index+1).Error; err != nil {
				return fmt.Errorf("reorder carousel images: %w", err)
			}
		}
		return nil
	})
}

func (s *CarouselService) nextSortOrder() (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.CarouselImage{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("resolve carousel sort order: %w", err)
	}
	return maxOrder + 1, nil
}

func validateCarouselInput(input CarouselImageInput) error {
	if strings.TrimSpace(input.ImageURL) == "" {
		return fmt.Errorf("%w: image url is required", ErrCarouselInvalidInput)
	}
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrCarouselInvalidInput)
	}
	return nil
}
