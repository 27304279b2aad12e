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
	// ErrEventNotFound 在指定的活动不存在时返回
	ErrEventNotFound = errors.New("event not found")
	// ErrEventInvalidInput 在输入数据不完整时返回
	ErrEventInvalidInput = errors.New("invalid event input")
)

// EventService 负责维护公益活动
type EventService struct {
	db *gorm.DB
}

// NewEventService 构造 EventService
func NewEventService(gdb *gorm.DB) *EventService {
	return &EventService{db: gdb}
}

// EventFilter describes filters for listing events.
type EventFilter struct {
	Category   string
	ActiveOnly bool
}

// EventInput 描述创建活动时可设置的字段
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	TimeOfDay   string
	Location    string
	ImageURL    string
	Category    string
	UserID      uint
}

// EventUpdate 描述更新活动时可修改的字段，nil 表示保持原值
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	TimeOfDay   *string
	Location    *string
	ImageURL    *string
	Category    *string
	Attendees   *int
	Active      *bool
}

// List 返回活动集合，按日期升序
func (s *EventService) List(filter EventFilter) ([]db.Event, error) {
	query := s.db.Model(&db.Event{})
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var events []db.Event
	if err := query.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Get 根据主键获取活动
func (s *EventService) Get(id uint) (*db.Event, error) {
	var event db.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

// Create 新建活动，默认启用且报名人数为 0
func (s *EventService) Create(input EventInput) (*db.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := db.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		TimeOfDay:   strings.TrimSpace(input.TimeOfDay),
		Location:    strings.TrimSpace(input.Location),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Category:    strings.TrimSpace(input.Category),
		Active:      true,
		UserID:      input.UserID,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

// Update 更新指定活动，未提供的字段保持原值
func (s *EventService) Update(id uint, update EventUpdate) (*db.Event, error) {
	var event db.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrEventInvalidInput)
		}
		event.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		event.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		if update.Date.IsZero() {
			return nil, fmt.Errorf("%w: date is required", ErrEventInvalidInput)
		}
		event.Date = *update.Date
	}
	if update.TimeOfDay != nil {
		event.TimeOfDay = strings.TrimSpace(*update.TimeOfDay)
	}
	if update.Location != nil {
		event.Location = strings.TrimSpace(*update.Location)
	}
	if update.ImageURL != nil {
		event.ImageURL = strings.TrimSpace(*update.ImageURL)
	}
	if update.Category != nil {
		event.Category = strings.TrimSpace(*update.Category)
	}
	if update.Attendees != nil {
		if *update.Attendees < 0 {
			return nil, fmt.Errorf("%w: attendees cannot be negative", ErrEventInvalidInput)
		}
		event.Attendees = *update.Attendees
	}
	if update.Active != nil {
		event.Active = *update.Active
	}

	if err := s.db.Save(&event).Error; err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

// SetActive 启用或下架指定活动
func (s *EventService) SetActive(id uint, active bool) (*db.Event, error) {
	return s.Update(id, EventUpdate{Active: &active})
}

// Delete 删除指定活动
func (s *EventService) Delete(id uint) error {
	var event db.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}
	if err := s.db.Delete(&event).Error; err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func validateEventInput(input EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrEventInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrEventInvalidInput)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrEventInvalidInput)
	}
	if strings.TrimSpace(input.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrEventInvalidInput)
	}
	return nil
}
