package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
	"github.com/easayliu/movie-browser/pkg/logger"
)

// DefaultSettleTimeout Snapshot 等待控制器完成的上限
const DefaultSettleTimeout = 10 * time.Second

// Options 会话参数
type Options struct {
	SearchDebounce time.Duration
	SettleTimeout  time.Duration
	Images         valueobjects.ImageResolver
}

// DefaultOptions 默认会话参数
func DefaultOptions() Options {
	return Options{
		SearchDebounce: DefaultSearchDebounce,
		SettleTimeout:  DefaultSettleTimeout,
		Images:         valueobjects.DefaultImageResolver(),
	}
}

// Notice 最近一次错误,展示为可关闭的提示
type Notice struct {
	Component string              `json:"component"`
	Code      apperrors.ErrorCode `json:"code"`
	Message   string              `json:"message"`
	At        time.Time           `json:"at"`
}

// Session 一个客户端的浏览会话
// 组合列表、搜索、详情三个控制器和视图状态机,主题由所有会话共享
type Session struct {
	ID string

	list   *ListController
	search *SearchController
	detail *DetailLoader
	theme  *Theme
	opts   Options

	mu       sync.Mutex
	router   *ViewRouter
	notice   *Notice
	lastSeen time.Time
}

// NewSession 创建会话,列表控制器随之开始加载
func NewSession(ctx context.Context, id string, source contracts.MovieSource, theme *Theme, opts Options) *Session {
	if theme == nil {
		theme = NewTheme(false)
	}
	if opts.SettleTimeout <= 0 {
		opts.SettleTimeout = DefaultSettleTimeout
	}
	if opts.Images.BaseURL == "" {
		opts.Images = valueobjects.DefaultImageResolver()
	}

	s := &Session{
		ID:       id,
		theme:    theme,
		opts:     opts,
		router:   NewViewRouter(),
		lastSeen: time.Now(),
	}
	s.list = NewListController(ctx, source, s.reportError)
	s.search = NewSearchController(ctx, source, s.reportError, opts.SearchDebounce)
	s.detail = NewDetailLoader(ctx, source, s.reportError)
	return s
}

func (s *Session) reportError(component string, err error) {
	notice := &Notice{
		Component: component,
		Code:      apperrors.CodeOf(err),
		Message:   userMessage(err),
		At:        time.Now(),
	}

	s.mu.Lock()
	s.notice = notice
	s.mu.Unlock()

	logger.Warn("会话请求失败", "session", s.ID, "component", component, "code", notice.Code, "error", err)
}

func userMessage(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrorCodeNotFound:
		return "The requested movie could not be found."
	case apperrors.ErrorCodeUnauthorized:
		return "The movie database rejected the API key."
	case apperrors.ErrorCodeRateLimit:
		return "Too many requests, please slow down."
	case apperrors.ErrorCodeTimeout:
		return "The movie database took too long to respond."
	case apperrors.ErrorCodeMalformedResponse:
		return "The movie database returned an unexpected response."
	default:
		return "Could not reach the movie database."
	}
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}

// Touch 刷新最近交互时间
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
}

// LastSeen 最近一次交互时间
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Theme 共享主题
func (s *Session) Theme() *Theme {
	return s.theme
}

// SelectMovie 打开详情页
func (s *Session) SelectMovie(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.router.SelectItem(id)
	s.detail.Load(id)
}

// Back 离开详情页
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.router.Back()
	s.detail.Clear()
}

// Home 回到列表并清空搜索
func (s *Session) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.router.Home()
	s.search.Clear()
	s.detail.Clear()
}

// Search 更新搜索关键字
func (s *Session) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.search.SetQuery(query)
	s.router.QueryChanged(strings.TrimSpace(query) != "")
}

func (s *Session) SetView(view valueobjects.ViewMode) bool {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s.list.SetView(view)
}

func (s *Session) SetTimeWindow(window valueobjects.TimeWindow) bool {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s.list.SetTimeWindow(window)
}

func (s *Session) SetSortKey(key valueobjects.SortKey) bool {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s.list.SetSortKey(key)
}

func (s *Session) ToggleGenre(id int) bool {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s.list.ToggleGenre(id)
}

func (s *Session) LoadMore() bool {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s.list.LoadMore()
}

// Reload 重新加载列表第一页,用于错误提示中的重试
func (s *Session) Reload() bool {
	s.mu.Lock()
	s.touch()
	s.notice = nil
	s.mu.Unlock()
	return s.list.Reload()
}

// Retry 按错误来源重试失败的请求,没有错误时重新加载列表
func (s *Session) Retry() bool {
	s.mu.Lock()
	s.touch()
	component := componentList
	if s.notice != nil {
		component = s.notice.Component
	}
	s.notice = nil
	s.mu.Unlock()

	switch component {
	case componentSearch:
		return s.search.Retry()
	case componentDetail:
		return s.detail.Retry()
	default:
		return s.list.Reload()
	}
}

// DismissError 关闭错误提示
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

// View 当前视图
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.State()
}

// 控制器状态,供渲染层使用
func (s *Session) ListSnapshot() ListState     { return s.list.State() }
func (s *Session) SearchSnapshot() SearchState { return s.search.State() }
func (s *Session) DetailSnapshot() DetailState { return s.detail.State() }

// Close 作废会话内所有未完成的请求
func (s *Session) Close() {
	s.list.Close()
	s.search.Close()
	s.detail.Close()
	logger.Debug("会话已关闭", "session", s.ID)
}

// Settled 等待当前视图对应的控制器完成,超时不视为错误
func (s *Session) Settled(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.SettleTimeout)
	defer cancel()

	var err error
	switch s.View() {
	case ViewDetail:
		err = s.detail.Settled(ctx)
	case ViewSearching:
		err = s.search.Settled(ctx)
	default:
		err = s.list.Settled(ctx)
	}
	if err != nil {
		logger.Debug("等待控制器超时,渲染当前状态", "session", s.ID, "error", err)
	}
}

// Snapshot 等待当前视图稳定后生成视图模型
func (s *Session) Snapshot(ctx context.Context) *Snapshot {
	s.Settled(ctx)
	return s.Peek()
}

// Peek 不等待,直接生成当前视图模型
func (s *Session) Peek() *Snapshot {
	s.mu.Lock()
	view := s.router.State()
	selected := s.router.Selected()
	var notice *Notice
	if s.notice != nil {
		n := *s.notice
		notice = &n
	}
	s.mu.Unlock()

	list := s.list.State()
	search := s.search.State()

	snap := &Snapshot{
		SessionID:  s.ID,
		View:       view,
		DarkTheme:  s.theme.IsDark(),
		Theme:      s.theme.Name(),
		Query:      search.Query,
		Params:     list.Params,
		TimeWindow: list.Params.TimeWindow.Label(),
		SortLabel:  list.Params.SortBy.Label(),
		Genres:     genreOptions(list.Genres, list.Params.Genres),
		Error:      notice,
		Items:      []Card{},
	}

	switch view {
	case ViewDetail:
		d := s.detail.State()
		snap.Title = "Movie Details"
		snap.Loading = d.Busy
		snap.SelectedID = selected
		snap.NotFound = d.Status == DetailNotFound
		if d.Detail != nil {
			snap.Detail = s.detailView(d.Detail)
			snap.Title = d.Detail.Title
		}
	case ViewSearching:
		snap.Title = "Search Results"
		if search.Loading {
			snap.Title += " (Loading...)"
		}
		snap.Loading = search.Loading
		snap.Items = s.cards(search.Results)
	default:
		snap.Title = list.Params.View.Title()
		snap.Loading = list.Loading
		snap.Items = s.cards(list.Results)
		snap.HasMore = list.HasMore
		snap.Page = list.LoadedPage
		snap.TotalPages = list.TotalPages
		snap.TotalResults = list.TotalResults
	}
	return snap
}

func (s *Session) cards(movies []entities.MovieSummary) []Card {
	out := make([]Card, 0, len(movies))
	for _, m := range movies {
		out = append(out, Card{
			ID:        m.ID,
			Title:     m.Title,
			PosterURL: s.opts.Images.Poster(m.PosterPath),
			Year:      m.Year(),
			Rating:    m.RatingLabel(),
		})
	}
	return out
}

func (s *Session) detailView(d *entities.MovieDetail) *DetailView {
	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}
	return &DetailView{
		ID:          d.ID,
		Title:       d.Title,
		Tagline:     d.Tagline,
		Overview:    d.Overview,
		Year:        d.Year(),
		Rating:      d.RatingLabel(),
		Runtime:     d.RuntimeLabel(),
		PosterURL:   s.opts.Images.Poster(d.PosterPath),
		BackdropURL: s.opts.Images.Backdrop(d.BackdropPath),
		Genres:      genres,
		Cast:        d.Cast,
		Crew:        d.Crew,
	}
}

func genreOptions(genres []entities.Genre, selected valueobjects.GenreSelection) []GenreOption {
	out := make([]GenreOption, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreOption{ID: g.ID, Name: g.Name, Selected: selected.Contains(g.ID)})
	}
	return out
}
