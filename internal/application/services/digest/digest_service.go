package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const DefaultLimit = 10

// Service 趋势榜摘要推送
type Service struct {
	source   contracts.MovieSource
	notifier contracts.NotificationService
	limit    int
	window   valueobjects.TimeWindow
	timeout  time.Duration
}

func NewService(source contracts.MovieSource, notifier contracts.NotificationService, limit int, window string) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	w := valueobjects.TimeWindow(window)
	if !w.IsValid() {
		w = valueobjects.TimeWindowDay
	}
	return &Service{
		source:   source,
		notifier: notifier,
		limit:    limit,
		window:   w,
		timeout:  time.Minute,
	}
}

// Preview 拉取趋势榜第一页并生成推送内容
func (s *Service) Preview(ctx context.Context) (contracts.Notification, error) {
	params := valueobjects.DefaultListParams()
	params.TimeWindow = s.window

	page, err := s.source.ListMovies(ctx, params)
	if err != nil {
		return contracts.Notification{}, fmt.Errorf("failed to load trending movies: %w", err)
	}
	return s.Build(page.Results), nil
}

// Run 生成摘要并推送前 limit 条
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg, err := s.Preview(ctx)
	if err != nil {
		return err
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	logger.Info("Trending digest sent", "window", s.window, "count", len(msg.Lines))
	return nil
}

// RunJob 供调度器调用,错误只记录
func (s *Service) RunJob() {
	if err := s.Run(context.Background()); err != nil {
		logger.Error("Trending digest failed", "error", err)
	}
}

// Build 生成推送内容
func (s *Service) Build(movies []entities.MovieSummary) contracts.Notification {
	msg := contracts.Notification{
		Title: fmt.Sprintf("🔥 Trending Movies · %s", s.window.Label()),
	}
	if len(movies) > s.limit {
		movies = movies[:s.limit]
	}
	if len(movies) == 0 {
		msg.Lines = []string{"No trending movies right now."}
		return msg
	}
	for i, m := range movies {
		msg.Lines = append(msg.Lines, fmt.Sprintf("%d. %s (%s) ★ %s", i+1, m.Title, m.Year(), m.RatingLabel()))
	}
	return msg
}
