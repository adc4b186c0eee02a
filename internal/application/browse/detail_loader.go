package browse

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const componentDetail = "detail"

// DetailStatus 详情加载状态
type DetailStatus string

const (
	DetailIdle     DetailStatus = "idle"
	DetailLoading  DetailStatus = "loading"
	DetailReady    DetailStatus = "ready"
	DetailNotFound DetailStatus = "not_found"
)

// DetailState 详情加载器的只读快照
type DetailState struct {
	MovieID int                   `json:"movie_id"`
	Status  DetailStatus          `json:"status"`
	Busy    bool                  `json:"busy"`
	Detail  *entities.MovieDetail `json:"detail,omitempty"`
}

// DetailLoader 并发获取详情和演职员表
// 演职员表失败时以空列表展示详情;详情失败或记录无效时进入 NotFound
type DetailLoader struct {
	source contracts.MovieSource
	report contracts.ErrorReporter

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	movieID  int
	status   DetailStatus
	detail   *entities.MovieDetail
	closed   bool
	requests *tracker
}

func NewDetailLoader(ctx context.Context, source contracts.MovieSource, report contracts.ErrorReporter) *DetailLoader {
	if report == nil {
		report = func(string, error) {}
	}
	cctx, cancel := context.WithCancel(ctx)

	return &DetailLoader{
		source:   source,
		report:   report,
		ctx:      cctx,
		cancel:   cancel,
		status:   DetailIdle,
		requests: newTracker(),
	}
}

// Load 加载指定电影,取代之前未完成的加载
func (l *DetailLoader) Load(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.loadLocked(id)
}

// Retry 重新加载当前电影,没有选中电影时返回 false
func (l *DetailLoader) Retry() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.movieID <= 0 {
		return false
	}
	l.loadLocked(l.movieID)
	return true
}

func (l *DetailLoader) loadLocked(id int) {
	reqID := l.requests.next()
	l.movieID = id
	l.detail = nil

	if id <= 0 {
		l.status = DetailNotFound
		l.requests.resolve(reqID)
		return
	}

	l.status = DetailLoading
	go l.fetch(reqID, id)
}

func (l *DetailLoader) fetch(reqID uint64, id int) {
	var (
		detail     *entities.MovieDetail
		credits    *entities.Credits
		creditsErr error
		g          errgroup.Group
	)

	g.Go(func() error {
		d, err := l.source.GetMovie(l.ctx, id)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	g.Go(func() error {
		c, err := l.source.GetCredits(l.ctx, id)
		if err != nil {
			creditsErr = err
			return nil
		}
		credits = c
		return nil
	})
	err := g.Wait()

	l.mu.Lock()
	if l.closed || !l.requests.current(reqID) {
		l.mu.Unlock()
		logger.Debug("丢弃过期的详情响应", "movie_id", id)
		return
	}

	switch {
	case err != nil || !detail.Usable():
		l.status = DetailNotFound
		l.detail = nil
	default:
		detail.ApplyCredits(credits)
		l.status = DetailReady
		l.detail = detail
	}
	l.mu.Unlock()

	if err != nil {
		logger.Warn("详情加载失败", "movie_id", id, "error", err)
		l.report(componentDetail, err)
	}
	if creditsErr != nil {
		logger.Warn("演职员表加载失败", "movie_id", id, "error", creditsErr)
		l.report(componentDetail, creditsErr)
	}
	l.requests.resolve(reqID)
}

// Clear 丢弃当前详情
func (l *DetailLoader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests.invalidate()
	l.movieID = 0
	l.status = DetailIdle
	l.detail = nil
}

// State 返回当前状态,Detail 为副本
func (l *DetailLoader) State() DetailState {
	l.mu.Lock()
	defer l.mu.Unlock()

	state := DetailState{
		MovieID: l.movieID,
		Status:  l.status,
		Busy:    l.status == DetailLoading,
	}
	if l.detail != nil {
		d := *l.detail
		d.Genres = append([]entities.Genre{}, l.detail.Genres...)
		d.Cast = append([]entities.CastMember{}, l.detail.Cast...)
		d.Crew = append([]entities.CrewMember{}, l.detail.Crew...)
		state.Detail = &d
	}
	return state
}

// Settled 等待当前加载完成
func (l *DetailLoader) Settled(ctx context.Context) error {
	return l.requests.wait(ctx)
}

func (l *DetailLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.requests.invalidate()
	l.cancel()
}
