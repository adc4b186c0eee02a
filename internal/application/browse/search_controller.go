package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const (
	componentSearch = "search"

	// DefaultSearchDebounce 输入稳定多久后才发出搜索请求
	DefaultSearchDebounce = 300 * time.Millisecond
)

// SearchState 搜索控制器的只读快照
type SearchState struct {
	Query     string                  `json:"query"`
	Searching bool                    `json:"searching"`
	Loading   bool                    `json:"loading"`
	Results   []entities.MovieSummary `json:"results"`
}

// SearchController 关键字搜索,只展示第一页
// 每次输入都会取代上一次,防抖间隔内的连续输入只发出一个请求
type SearchController struct {
	source   contracts.MovieSource
	report   contracts.ErrorReporter
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	query     string
	searching bool
	loading   bool
	results   []entities.MovieSummary
	timer     *time.Timer
	closed    bool
	requests  *tracker
}

// NewSearchController debounce 为0时每次输入立即请求
func NewSearchController(ctx context.Context, source contracts.MovieSource, report contracts.ErrorReporter, debounce time.Duration) *SearchController {
	if report == nil {
		report = func(string, error) {}
	}
	if debounce < 0 {
		debounce = 0
	}
	cctx, cancel := context.WithCancel(ctx)

	return &SearchController{
		source:   source,
		report:   report,
		debounce: debounce,
		ctx:      cctx,
		cancel:   cancel,
		results:  []entities.MovieSummary{},
		requests: newTracker(),
	}
}

// SetQuery 更新关键字
// 空白关键字清空结果并退出搜索状态,不发请求
func (c *SearchController) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.query = query
	c.stopTimerLocked()
	id := c.requests.next()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.searching = false
		c.loading = false
		c.results = []entities.MovieSummary{}
		c.requests.resolve(id)
		return
	}

	c.searching = true
	c.loading = true
	if c.debounce == 0 {
		go c.fetch(id, trimmed)
		return
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fetch(id, trimmed)
	})
}

// Retry 立即重发当前关键字的搜索,关键字为空时返回 false
func (c *SearchController) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	trimmed := strings.TrimSpace(c.query)
	if c.closed || trimmed == "" {
		return false
	}

	c.stopTimerLocked()
	id := c.requests.next()
	c.searching = true
	c.loading = true
	go c.fetch(id, trimmed)
	return true
}

// Clear 回到初始状态
func (c *SearchController) Clear() {
	c.SetQuery("")
}

func (c *SearchController) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *SearchController) fetch(id uint64, query string) {
	// 防抖期间已被取代
	if !c.requests.current(id) {
		return
	}

	logger.Debug("搜索请求", "generation", id, "query", query)
	page, err := c.source.SearchMovies(c.ctx, query)

	c.mu.Lock()
	if c.closed || !c.requests.current(id) {
		c.mu.Unlock()
		logger.Debug("丢弃过期的搜索响应", "generation", id, "query", query)
		return
	}

	c.loading = false
	if err != nil {
		c.mu.Unlock()

		logger.Warn("搜索失败", "query", query, "error", err)
		c.report(componentSearch, err)
		c.requests.resolve(id)
		return
	}

	c.results = append(make([]entities.MovieSummary, 0, len(page.Results)), page.Results...)
	c.mu.Unlock()
	c.requests.resolve(id)
}

// State 返回当前状态的副本
func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SearchState{
		Query:     c.query,
		Searching: c.searching,
		Loading:   c.loading,
		Results:   append([]entities.MovieSummary{}, c.results...),
	}
}

// Settled 等待最新一次搜索完成(包括防抖等待)
func (c *SearchController) Settled(ctx context.Context) error {
	return c.requests.wait(ctx)
}

// Close 作废未完成的搜索
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.loading = false
	c.stopTimerLocked()
	c.requests.invalidate()
	c.cancel()
}
