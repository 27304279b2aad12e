package service

import (
	"errors"
	"sync"
	"time"

	"github.com/beacon/internal/carousel"
)

// ErrDisplayEmpty 在没有任何启用中的轮播图可供展示时返回
var ErrDisplayEmpty = errors.New("display has no active slides")

// DisplayService runs the lobby display rotation: a carousel player over
// the active carousel images. The slide set is fixed per player; editing
// images in the dashboard takes effect through an explicit Reload, which
// rebuilds the player and restarts autoplay.
type DisplayService struct {
	mu        sync.Mutex
	carousels *CarouselService
	interval  time.Duration
	player    *carousel.Player
}

// DisplayState 描述展示端轮播的当前状态
type DisplayState struct {
	Index  int
	Total  int
	Paused bool
	Slide  carousel.Slide
}

// NewDisplayService 构造 DisplayService，interval 不为正时使用默认周期
func NewDisplayService(carousels *CarouselService, interval time.Duration) *DisplayService {
	if interval <= 0 {
		interval = carousel.DefaultInterval
	}
	return &DisplayService{carousels: carousels, interval: interval}
}

// Reload 读取当前启用中的轮播图并重建播放器
// 没有可用图片时展示端进入空状态
func (s *DisplayService) Reload() error {
	images, err := s.carousels.List(true)
	if err != nil {
		return err
	}

	slides := make([]carousel.Slide, 0, len(images))
	for _, image := range images {
		slides = append(slides, carousel.Slide{
			ImageURL: image.ImageURL,
			Title:    image.Title,
			Subtitle: image.Subtitle,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Stop()
		s.player = nil
	}

	if len(slides) == 0 {
		return nil
	}

	rotation, err := carousel.NewRotation(slides)
	if err != nil {
		return err
	}
	s.player = carousel.NewPlayer(rotation, s.interval)
	return nil
}

// State 返回展示端当前状态
func (s *DisplayService) State() (DisplayState, error) {
	rotation, err := s.rotation()
	if err != nil {
		return DisplayState{}, err
	}

	index, slide := rotation.Current()
	return DisplayState{
		Index:  index,
		Total:  rotation.Len(),
		Paused: rotation.Paused(),
		Slide:  slide,
	}, nil
}

// Next 手动切换到下一张
func (s *DisplayService) Next() (DisplayState, error) {
	rotation, err := s.rotation()
	if err != nil {
		return DisplayState{}, err
	}
	rotation.Next()
	return s.State()
}

// Previous 手动切换到上一张
func (s *DisplayService) Previous() (DisplayState, error) {
	rotation, err := s.rotation()
	if err != nil {
		return DisplayState{}, err
	}
	rotation.Previous()
	return s.State()
}

// Select 手动跳转到指定幻灯片
func (s *DisplayService) Select(index int) (DisplayState, error) {
	rotation, err := s.rotation()
	if err != nil {
		return DisplayState{}, err
	}
	if err := rotation.Select(index); err != nil {
		return DisplayState{}, err
	}
	return s.State()
}

// Resume 重新开启自动播放
func (s *DisplayService) Resume() (DisplayState, error) {
	rotation, err := s.rotation()
	if err != nil {
		return DisplayState{}, err
	}
	rotation.Resume()
	return s.State()
}

// Stop 停止播放器，用于服务关闭时的清理
func (s *DisplayService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Stop()
		s.player = nil
	}
}

func (s *DisplayService) rotation() (*carousel.Rotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil, ErrDisplayEmpty
	}
	return s.player.Rotation(), nil
}

// Slides 返回展示端正在使用的幻灯片序列
func (s *DisplayService) Slides() ([]carousel.Slide, error) {
	rotation, err := s.rotation()
	if err != nil {
		return nil, err
	}
	return rotation.Slides(), nil
}
