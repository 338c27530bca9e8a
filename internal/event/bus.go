package event

import (
	"sync"
	"time"

	"github.com/blues/ivs/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Bus 进程内事件总线，账本变更通过协程池分发给订阅者。
// 订阅者消费不及时时事件被丢弃，不阻塞账本写入路径。
type Bus struct {
	pool       *ants.Pool
	mu         sync.RWMutex
	subs       map[int64]chan Event
	nextId     int64
	bufferSize int
	closed     bool
}

// NewBus 创建事件总线
func NewBus(poolSize, bufferSize int) (*Bus, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	if bufferSize <= 0 {
		bufferSize = 64
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Bus{
		pool:       pool,
		subs:       make(map[int64]chan Event),
		bufferSize: bufferSize,
	}, nil
}

// Subscribe 订阅事件，返回只读通道和取消函数
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextId
	b.nextId++
	ch := make(chan Event, b.bufferSize)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish 发布事件，分发在协程池中执行
func (b *Bus) Publish(t Type, payload interface{}) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	b.mu.RUnlock()

	ev := Event{Type: t, Payload: payload, Timestamp: time.Now()}
	if err := b.pool.Submit(func() {
		b.dispatch(ev)
	}); err != nil {
		logger.Error("Failed to submit event %s to pool: %v", t, err)
	}
}

// dispatch 分发给所有订阅者，缓冲满则丢弃
func (b *Bus) dispatch(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			logger.Warn("Event subscriber buffer full, dropping event %s", ev.Type)
		}
	}
}

// Close 关闭总线并释放协程池
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.mu.Unlock()

	b.pool.Release()
}
