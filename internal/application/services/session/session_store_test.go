package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
)

// stubSource 固定返回一页结果
type stubSource struct{}

func (stubSource) ListMovies(context.Context, valueobjects.ListParams) (*entities.MoviePage, error) {
	return &entities.MoviePage{Page: 1, TotalPages: 1, Results: []entities.MovieSummary{{ID: 1, Title: "A"}}}, nil
}

func (stubSource) SearchMovies(context.Context, string) (*entities.MoviePage, error) {
	return &entities.MoviePage{Page: 1, TotalPages: 1}, nil
}

func (stubSource) GetMovie(_ context.Context, id int) (*entities.MovieDetail, error) {
	return &entities.MovieDetail{MovieSummary: entities.MovieSummary{ID: id, Title: "A"}}, nil
}

func (stubSource) GetCredits(context.Context, int) (*entities.Credits, error) {
	return &entities.Credits{}, nil
}

func (stubSource) ListGenres(context.Context) ([]entities.Genre, error) {
	return []entities.Genre{{ID: 28, Name: "Action"}}, nil
}

func newTestStore(ttl time.Duration) *Store {
	return NewStore(context.Background(), stubSource{}, browse.NewTheme(false), browse.DefaultOptions(), ttl)
}

func TestStore_CreateAndGet(t *testing.T) {
	store := newTestStore(time.Minute)
	defer store.CloseAll()

	sess := store.Create()
	require.NotEmpty(t, sess.ID)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
	_, ok = store.Get("")
	assert.False(t, ok)
}

func TestStore_OpenIsIdempotent(t *testing.T) {
	store := newTestStore(time.Minute)
	defer store.CloseAll()

	a, created := store.Open("tg:42")
	assert.True(t, created)
	b, created := store.Open("tg:42")
	assert.False(t, created)
	assert.Same(t, a, b)
	assert.Equal(t, 1, store.Len())
}

func TestStore_SessionsShareTheme(t *testing.T) {
	store := newTestStore(time.Minute)
	defer store.CloseAll()

	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a.ID, b.ID)

	a.Theme().Toggle()
	assert.True(t, b.Theme().IsDark())
	assert.True(t, store.Theme().IsDark())
}

func TestStore_SweepEvictsIdleSessions(t *testing.T) {
	store := newTestStore(50 * time.Millisecond)
	defer store.CloseAll()

	idle := store.Create()
	active, _ := store.Open("tg:1")
	assert.Zero(t, store.Sweep())

	time.Sleep(80 * time.Millisecond)
	active.Touch()
	assert.Equal(t, 1, store.Sweep())

	_, ok := store.Get(idle.ID)
	assert.False(t, ok)
	_, ok = store.Get("tg:1")
	assert.True(t, ok)
	assert.False(t, idle.SetView(valueobjects.ViewDiscover), "evicted sessions ignore further changes")

	store.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 1, store.Sweep())
}

func TestStore_Remove(t *testing.T) {
	store := newTestStore(time.Minute)
	sess := store.Create()
	store.Remove(sess.ID)
	assert.Zero(t, store.Len())
	assert.True(t, strings.Count(sess.ID, "-") == 4, "session ids are uuids")
}
