package carousel

import (
	"sync"
	"time"
)

// DefaultInterval 是自动播放的默认切换周期
const DefaultInterval = 5 * time.Second

// Player drives a Rotation from a recurring timer. Stop must be called
// on teardown to release the ticker goroutine.
type Player struct {
	rotation *Rotation

	stopTicker func()
	done       chan struct{}
	stopOnce   sync.Once
}

// NewPlayer 启动一个按 interval 周期推进 rotation 的播放器
func NewPlayer(rotation *Rotation, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	return newPlayer(rotation, ticker.C, ticker.Stop)
}

func newPlayer(rotation *Rotation, ticks <-chan time.Time, stopTicker func()) *Player {
	p := &Player{
		rotation:   rotation,
		stopTicker: stopTicker,
		done:       make(chan struct{}),
	}

	go p.loop(ticks)
	return p
}

func (p *Player) loop(ticks <-chan time.Time) {
	for {
		select {
		case <-ticks:
			p.rotation.Advance()
		case <-p.done:
			return
		}
	}
}

// Rotation 返回播放器驱动的状态机
func (p *Player) Rotation() *Rotation {
	return p.rotation
}

// Stop 取消定时器并退出播放协程，可安全重复调用
func (p *Player) Stop() {
	p.stopOnce.Do(func() {
		if p.stopTicker != nil {
			p.stopTicker()
		}
		close(p.done)
	})
}
