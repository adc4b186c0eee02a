package browse

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
)

// mockSource MovieSource 的 mock 实现
type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListMovies(ctx context.Context, params valueobjects.ListParams) (*entities.MoviePage, error) {
	args := m.Called(ctx, params)
	page, _ := args.Get(0).(*entities.MoviePage)
	return page, args.Error(1)
}

func (m *mockSource) SearchMovies(ctx context.Context, query string) (*entities.MoviePage, error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*entities.MoviePage)
	return page, args.Error(1)
}

func (m *mockSource) GetMovie(ctx context.Context, id int) (*entities.MovieDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*entities.MovieDetail)
	return detail, args.Error(1)
}

func (m *mockSource) GetCredits(ctx context.Context, id int) (*entities.Credits, error) {
	args := m.Called(ctx, id)
	credits, _ := args.Get(0).(*entities.Credits)
	return credits, args.Error(1)
}

func (m *mockSource) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]entities.Genre)
	return genres, args.Error(1)
}

// errorSink 记录上报的错误
type errorSink struct {
	mu     sync.Mutex
	errors []string
}

func (s *errorSink) report(component string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, component+": "+err.Error())
}

func (s *errorSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors)
}

var testGenres = []entities.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 35, Name: "Comedy"},
}

// moviePage 生成 id 从 firstID 开始连续的 n 条结果
func moviePage(page, n, firstID, totalPages int) *entities.MoviePage {
	results := make([]entities.MovieSummary, n)
	for i := range results {
		id := firstID + i
		results[i] = entities.MovieSummary{ID: id, Title: "Movie", ReleaseDate: "2024-01-01", VoteAverage: 7.5}
	}
	return &entities.MoviePage{Page: page, Results: results, TotalPages: totalPages, TotalResults: totalPages * n}
}

func pageIs(n int) interface{} {
	return mock.MatchedBy(func(p valueobjects.ListParams) bool { return p.Page == n })
}

func ids(movies []entities.MovieSummary) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

type settler interface {
	Settled(ctx context.Context) error
}

func settle(t *testing.T, s settler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Settled(ctx))
}
