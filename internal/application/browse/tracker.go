package browse

import (
	"context"
	"sync"
)

// tracker 请求代际计数器
// 每次发起新请求都会开启新一代,旧一代的响应到达时被丢弃
// done 在当前代完成或被取代时关闭,供 Settled 等待
type tracker struct {
	mu     sync.Mutex
	gen    uint64
	done   chan struct{}
	closed bool
}

func newTracker() *tracker {
	t := &tracker{done: make(chan struct{})}
	close(t.done)
	t.closed = true
	return t
}

// next 开启新一代并返回其编号
func (t *tracker) next() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resolveLocked()
	t.gen++
	t.done = make(chan struct{})
	t.closed = false
	return t.gen
}

// current 判断 id 是否仍是最新一代
func (t *tracker) current(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return id == t.gen
}

// resolve 标记 id 这一代已完成,过期的 id 被忽略
func (t *tracker) resolve(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == t.gen {
		t.resolveLocked()
	}
}

// invalidate 作废所有未完成的请求
func (t *tracker) invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resolveLocked()
	t.gen++
}

func (t *tracker) resolveLocked() {
	if !t.closed {
		close(t.done)
		t.closed = true
	}
}

// wait 阻塞直到最新一代完成
func (t *tracker) wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		done, settled := t.done, t.closed
		t.mu.Unlock()
		if settled {
			return nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
