package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beacon/internal/db"
	"gorm.io/gorm"
)

var (
	ErrBlogPostNotFound     = errors.New("blog post not found")
	ErrBlogPostInvalidInput = errors.New("invalid blog post input")
	ErrBlogSlugTaken        = errors.New("blog post slug already in use")
)

// BlogService handles blog post CRUD and the publish lifecycle.
type BlogService struct {
	db *gorm.DB
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb}
}

// BlogFilter describes filters for listing blog posts.
type BlogFilter struct {
	Search    string
	Category  string
	Published *bool
}

// BlogPostInput represents fields accepted when creating a blog post.
type BlogPostInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	ImageURL  string
	Category  string
	ReadTime  int
	Published bool
	UserID    uint
}

// BlogPostUpdate 描述更新文章时可修改的字段
// 指针为 nil 的字段保持原值不变
type BlogPostUpdate struct {
	Title     *string
	Slug      *string
	Excerpt   *string
	Content   *string
	ImageURL  *string
	Category  *string
	ReadTime  *int
	Published *bool
}

// List returns blog posts matching the filter, most recently published first.
func (s *BlogService) List(filter BlogFilter) ([]db.BlogPost, error) {
	query := s.db.Model(&db.BlogPost{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ?", like, like)
	}

	var posts []db.BlogPost
	if err := query.Order("published_at DESC, created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return posts, nil
}

// ListPublished returns published posts for the public blog.
func (s *BlogService) ListPublished() ([]db.BlogPost, error) {
	published := true
	return s.List(BlogFilter{Published: &published})
}

// Get fetches a blog post by id.
func (s *BlogService) Get(id uint) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return &post, nil
}

// GetBySlug fetches a blog post by slug. When publishedOnly is true,
// draft posts are treated as not found.
func (s *BlogService) GetBySlug(slug string, publishedOnly bool) (*db.BlogPost, error) {
	query := s.db.Where("slug = ?", strings.TrimSpace(slug))
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var post db.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("get blog post by slug: %w", err)
	}
	return &post, nil
}

// Create inserts a new blog post.
func (s *BlogService) Create(input BlogPostInput) (*db.BlogPost, error) {
	if err := validateBlogPostInput(input); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	taken, err := s.slugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrBlogSlugTaken
	}

	post := db.BlogPost{
		Title:    strings.TrimSpace(input.Title),
		Slug:     slug,
		Excerpt:  strings.TrimSpace(input.Excerpt),
		Content:  input.Content,
		ImageURL: strings.TrimSpace(input.ImageURL),
		Category: strings.TrimSpace(input.Category),
		ReadTime: input.ReadTime,
		UserID:   input.UserID,
	}
	applyPublication(&post, input.Published)

	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return &post, nil
}

// Update modifies an existing blog post. Only fields present in the
// update are changed; every publish flip goes through applyPublication.
func (s *BlogService) Update(id uint, update BlogPostUpdate) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("find blog post: %w", err)
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrBlogPostInvalidInput)
		}
		post.Title = strings.TrimSpace(*update.Title)
	}
	if update.Slug != nil {
		slug := strings.TrimSpace(*update.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug is required", ErrBlogPostInvalidInput)
		}
		taken, err := s.slugTaken(slug, post.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrBlogSlugTaken
		}
		post.Slug = slug
	}
	if update.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*update.Excerpt)
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*update.ImageURL)
	}
	if update.Category != nil {
		post.Category = strings.TrimSpace(*update.Category)
	}
	if update.ReadTime != nil {
		post.ReadTime = *update.ReadTime
	}
	if update.Published != nil {
		applyPublication(&post, *update.Published)
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return &post, nil
}

// SetPublished flips the publish flag of a post.
func (s *BlogService) SetPublished(id uint, published bool) (*db.BlogPost, error) {
	return s.Update(id, BlogPostUpdate{Published: &published})
}

// Delete removes a blog post.
func (s *BlogService) Delete(id uint) error {
	var post db.BlogPost
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogPostNotFound
		}
		return fmt.Errorf("find blog post: %w", err)
	}
	if err := s.db.Delete(&post).Error; err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	return nil
}

// applyPublication 是发布状态的唯一入口：
// 切换为已发布时补写 PublishedAt，撤回发布时清空
func applyPublication(post *db.BlogPost, published bool) {
	post.Published = published
	if published {
		if post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		return
	}
	post.PublishedAt = nil
}

func (s *BlogService) slugTaken(slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return count > 0, nil
}

func validateBlogPostInput(input BlogPostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrBlogPostInvalidInput)
	}
	if strings.TrimSpace(input.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrBlogPostInvalidInput)
	}
	if strings.TrimSpace(input.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrBlogPostInvalidInput)
	}
	return nil
}
