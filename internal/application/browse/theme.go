package browse

import "sync/atomic"

// Theme 进程级的明暗主题开关
type Theme struct {
	dark atomic.Bool
}

func NewTheme(dark bool) *Theme {
	t := &Theme{}
	t.dark.Store(dark)
	return t
}

// Toggle 切换主题,返回切换后的值
func (t *Theme) Toggle() bool {
	for {
		old := t.dark.Load()
		if t.dark.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (t *Theme) IsDark() bool {
	return t.dark.Load()
}

// Name dark 或 light
func (t *Theme) Name() string {
	if t.IsDark() {
		return "dark"
	}
	return "light"
}
