package browse

import (
	"context"
	"sync"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const componentList = "list"

// ListState 列表控制器的只读快照
type ListState struct {
	Params       valueobjects.ListParams `json:"params"`
	Results      []entities.MovieSummary `json:"results"`
	Loading      bool                    `json:"loading"`
	LoadedPage   int                     `json:"loaded_page"`
	TotalPages   int                     `json:"total_pages"`
	TotalResults int                     `json:"total_results"`
	HasMore      bool                    `json:"has_more"`
	Genres       []entities.Genre        `json:"genres"`
}

// ListController 趋势榜/发现页的分页列表
//
// 参数变化(视图、时间窗口、排序、类型)会同步地把页码重置为1并清空结果,
// 然后发起新请求;LoadMore 只递增页码并把新一页追加到末尾。
// 每个请求都带有代际编号,被取代的请求返回时不产生任何影响。
type ListController struct {
	source contracts.MovieSource
	report contracts.ErrorReporter

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	params       valueobjects.ListParams
	results      []entities.MovieSummary
	loading      bool
	loadedPage   int
	totalPages   int
	totalResults int
	closed       bool
	requests     *tracker

	genreMu    sync.RWMutex
	genres     []entities.Genre
	genresDone chan struct{}
}

// NewListController 创建控制器,立即加载类型表和今日趋势第一页
func NewListController(ctx context.Context, source contracts.MovieSource, report contracts.ErrorReporter) *ListController {
	if report == nil {
		report = func(string, error) {}
	}
	cctx, cancel := context.WithCancel(ctx)

	c := &ListController{
		source:     source,
		report:     report,
		ctx:        cctx,
		cancel:     cancel,
		params:     valueobjects.DefaultListParams(),
		results:    []entities.MovieSummary{},
		requests:   newTracker(),
		genres:     []entities.Genre{},
		genresDone: make(chan struct{}),
	}

	go c.loadGenres()

	c.mu.Lock()
	c.startLocked()
	c.mu.Unlock()
	return c
}

func (c *ListController) loadGenres() {
	defer close(c.genresDone)

	genres, err := c.source.ListGenres(c.ctx)
	if err != nil {
		logger.Warn("加载类型表失败", "error", err)
		c.report(componentList, err)
		return
	}

	c.genreMu.Lock()
	c.genres = append([]entities.Genre{}, genres...)
	c.genreMu.Unlock()
	logger.Debug("类型表已加载", "count", len(genres))
}

// SetView 切换趋势榜/发现页,相同值不做任何事
func (c *ListController) SetView(view valueobjects.ViewMode) bool {
	if !view.IsValid() {
		return false
	}
	return c.mutate(func(p *valueobjects.ListParams) bool {
		if p.View == view {
			return false
		}
		p.View = view
		return true
	})
}

// SetTimeWindow 切换趋势榜时间窗口
func (c *ListController) SetTimeWindow(window valueobjects.TimeWindow) bool {
	if !window.IsValid() {
		return false
	}
	return c.mutate(func(p *valueobjects.ListParams) bool {
		if p.TimeWindow == window {
			return false
		}
		p.TimeWindow = window
		return true
	})
}

// SetSortKey 切换发现页排序
func (c *ListController) SetSortKey(key valueobjects.SortKey) bool {
	if !key.IsValid() {
		return false
	}
	return c.mutate(func(p *valueobjects.ListParams) bool {
		if p.SortBy == key {
			return false
		}
		p.SortBy = key
		return true
	})
}

// ToggleGenre 已选中则移除,否则追加
func (c *ListController) ToggleGenre(id int) bool {
	if id <= 0 {
		return false
	}
	return c.mutate(func(p *valueobjects.ListParams) bool {
		p.Genres = p.Genres.Toggle(id)
		return true
	})
}

// Reload 以当前参数重新加载第一页
func (c *ListController) Reload() bool {
	return c.mutate(func(*valueobjects.ListParams) bool { return true })
}

func (c *ListController) mutate(apply func(p *valueobjects.ListParams) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !apply(&c.params) {
		return false
	}

	c.params.Page = 1
	c.results = []entities.MovieSummary{}
	c.loadedPage = 0
	c.totalPages = 0
	c.totalResults = 0
	c.startLocked()
	return true
}

// LoadMore 加载下一页
// 请求进行中或已到最后一页时忽略,返回是否真正发起了请求
func (c *ListController) LoadMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.loading || !c.hasMoreLocked() {
		return false
	}
	c.params.Page = c.loadedPage + 1
	c.startLocked()
	return true
}

func (c *ListController) hasMoreLocked() bool {
	return c.loadedPage > 0 && c.loadedPage < c.totalPages
}

func (c *ListController) startLocked() {
	id := c.requests.next()
	c.loading = true
	params := c.params.Clone()

	logger.Debug("列表请求",
		"generation", id,
		"view", params.View,
		"time_window", params.TimeWindow,
		"sort_by", params.SortBy,
		"genres", params.Genres.CSV(),
		"page", params.Page)

	go c.fetch(id, params)
}

func (c *ListController) fetch(id uint64, params valueobjects.ListParams) {
	page, err := c.source.ListMovies(c.ctx, params)

	c.mu.Lock()
	if c.closed || !c.requests.current(id) {
		c.mu.Unlock()
		logger.Debug("丢弃过期的列表响应", "generation", id, "page", params.Page)
		return
	}

	c.loading = false
	if err != nil {
		// 加载更多失败时页码回退到最后成功的一页
		if c.loadedPage > 0 {
			c.params.Page = c.loadedPage
		}
		c.mu.Unlock()

		logger.Warn("列表加载失败", "page", params.Page, "error", err)
		c.report(componentList, err)
		c.requests.resolve(id)
		return
	}

	if params.Page == 1 {
		c.results = make([]entities.MovieSummary, 0, len(page.Results))
	}
	c.results = append(c.results, page.Results...)
	c.loadedPage = params.Page
	c.totalPages = page.TotalPages
	c.totalResults = page.TotalResults
	count := len(c.results)
	c.mu.Unlock()
	c.requests.resolve(id)

	logger.Debug("列表已更新", "generation", id, "page", params.Page, "count", count)
}

// State 返回当前状态的副本
func (c *ListController) State() ListState {
	c.mu.Lock()
	state := ListState{
		Params:       c.params.Clone(),
		Results:      append([]entities.MovieSummary{}, c.results...),
		Loading:      c.loading,
		LoadedPage:   c.loadedPage,
		TotalPages:   c.totalPages,
		TotalResults: c.totalResults,
		HasMore:      c.hasMoreLocked(),
	}
	c.mu.Unlock()

	state.Genres = c.Genres()
	return state
}

// Genres 类型表,加载完成前为空
func (c *ListController) Genres() []entities.Genre {
	c.genreMu.RLock()
	defer c.genreMu.RUnlock()
	return append([]entities.Genre{}, c.genres...)
}

// Settled 等待类型表和当前一代请求完成
func (c *ListController) Settled(ctx context.Context) error {
	select {
	case <-c.genresDone:
	case <-ctx.Done():
		return ctx.Err()
	}
	return c.requests.wait(ctx)
}

// Close 作废所有未完成的请求,之后的修改操作均被忽略
func (c *ListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.loading = false
	c.requests.invalidate()
	c.cancel()
}
