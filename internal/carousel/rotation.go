package carousel

import (
	"errors"
	"sync"
)

var (
	// ErrNoSlides 在轮播序列为空时返回
	ErrNoSlides = errors.New("carousel requires at least one slide")
	// ErrSlideOutOfRange 在指定的幻灯片索引越界时返回
	ErrSlideOutOfRange = errors.New("carousel slide index out of range")
)

// Slide 表示轮播中的一张幻灯片
type Slide struct {
	ImageURL string
	Title    string
	Subtitle string
}

// Rotation is the carousel state machine. It starts in autoplay: timer
// ticks advance the current slide cyclically. Any manual navigation
// (Next/Previous/Select) pauses autoplay, and the transition is one-way;
// rotation only restarts through an explicit Resume.
//
// The slide sequence is fixed for the lifetime of a Rotation, so the
// current index is always a valid position in it.
type Rotation struct {
	mu     sync.Mutex
	slides []Slide
	index  int
	paused bool
}

// NewRotation 基于给定的幻灯片序列创建初始状态为自动播放的 Rotation
func NewRotation(slides []Slide) (*Rotation, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	copied := make([]Slide, len(slides))
	copy(copied, slides)

	return &Rotation{slides: copied}, nil
}

// Advance moves to the next slide on a timer tick. A tick that arrives
// after a manual navigation is a no-op, so a stale tick can never
// override the visitor's explicit choice.
func (r *Rotation) Advance() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return r.index
	}

	r.index = (r.index + 1) % len(r.slides)
	return r.index
}

// Next 手动切换到下一张并暂停自动播放
func (r *Rotation) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paused = true
	r.index = (r.index + 1) % len(r.slides)
	return r.index
}

// Previous 手动切换到上一张并暂停自动播放
func (r *Rotation) Previous() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paused = true
	r.index = (r.index - 1 + len(r.slides)) % len(r.slides)
	return r.index
}

// Select 手动跳转到指定幻灯片并暂停自动播放
func (r *Rotation) Select(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.slides) {
		return ErrSlideOutOfRange
	}

	r.paused = true
	r.index = index
	return nil
}

// Resume 重新开启自动播放
func (r *Rotation) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paused = false
}

// Current 返回当前索引与对应的幻灯片
func (r *Rotation) Current() (int, Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.index, r.slides[r.index]
}

// Paused 返回是否处于暂停状态
func (r *Rotation) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.paused
}

// Len 返回幻灯片数量
func (r *Rotation) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.slides)
}

// Slides 返回幻灯片序列的副本
func (r *Rotation) Slides() []Slide {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]Slide, len(r.slides))
	copy(copied, r.slides)
	return copied
}
