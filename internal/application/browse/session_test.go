package browse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
)

func newTestSession(t *testing.T, src *mockSource) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.SearchDebounce = 0
	opts.SettleTimeout = 2 * time.Second

	s := NewSession(context.Background(), "test-session", src, NewTheme(false), opts)
	t.Cleanup(s.Close)
	return s
}

func listingSource() *mockSource {
	src := new(mockSource)
	src.On("ListGenres", mock.Anything).Return(testGenres, nil)
	src.On("ListMovies", mock.Anything, pageIs(1)).Return(moviePage(1, 20, 1, 3), nil)
	src.On("ListMovies", mock.Anything, pageIs(2)).Return(moviePage(2, 20, 21, 3), nil)
	return src
}

func TestSession_InitialSnapshot(t *testing.T) {
	s := newTestSession(t, listingSource())

	snap := s.Snapshot(context.Background())
	assert.Equal(t, ViewListing, snap.View)
	assert.Equal(t, "Trending Movies", snap.Title)
	assert.Equal(t, "light", snap.Theme)
	assert.Len(t, snap.Items, 20)
	assert.True(t, snap.HasMore)
	assert.Len(t, snap.Genres, 3)
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.Error)

	card := snap.Items[0]
	assert.Equal(t, "2024", card.Year)
	assert.Equal(t, "7.5", card.Rating)
	assert.Equal(t, valueobjects.DefaultPosterPlaceholder, card.PosterURL)
}

func TestSession_DiscoverGenresAndLoadMore(t *testing.T) {
	s := newTestSession(t, listingSource())
	s.Snapshot(context.Background())

	require.True(t, s.SetView(valueobjects.ViewDiscover))
	require.True(t, s.ToggleGenre(28))
	snap := s.Snapshot(context.Background())
	assert.Equal(t, "Discover Movies", snap.Title)
	assert.True(t, snap.IsDiscover())
	assert.True(t, snap.Genres[0].Selected)
	assert.False(t, snap.Genres[1].Selected)

	require.True(t, s.LoadMore())
	snap = s.Snapshot(context.Background())
	assert.Len(t, snap.Items, 40)
	assert.Equal(t, 2, snap.Page)
}

func TestSession_SearchSelectBackHome(t *testing.T) {
	src := listingSource()
	src.On("SearchMovies", mock.Anything, "fight").Return(moviePage(1, 2, 550, 1), nil)
	src.On("GetMovie", mock.Anything, 550).Return(fightClub(), nil)
	src.On("GetCredits", mock.Anything, 550).Return(&entities.Credits{}, nil)

	s := newTestSession(t, src)

	s.Search("fight")
	snap := s.Snapshot(context.Background())
	assert.Equal(t, ViewSearching, snap.View)
	assert.Equal(t, "Search Results", snap.Title)
	assert.Equal(t, []int{550, 551}, cardIDs(snap.Items))

	s.SelectMovie(550)
	snap = s.Snapshot(context.Background())
	assert.Equal(t, ViewDetail, snap.View)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "Fight Club", snap.Title)
	assert.Equal(t, "2h 19m", snap.Detail.Runtime)
	assert.Equal(t, []string{"Drama"}, snap.Detail.Genres)

	s.Back()
	snap = s.Snapshot(context.Background())
	assert.Equal(t, ViewListing, snap.View)
	assert.Nil(t, snap.Detail)
	assert.Equal(t, "fight", snap.Query, "back keeps the query")

	s.Search("fight")
	s.Home()
	snap = s.Snapshot(context.Background())
	assert.Equal(t, ViewListing, snap.View)
	assert.Empty(t, snap.Query)
	assert.Empty(t, s.SearchSnapshot().Results)
}

func TestSession_EmptySearchAlwaysResets(t *testing.T) {
	src := listingSource()
	src.On("SearchMovies", mock.Anything, "alien").Return(moviePage(1, 3, 1, 1), nil)
	s := newTestSession(t, src)

	s.Search("alien")
	s.Snapshot(context.Background())
	s.Search("  ")

	snap := s.Snapshot(context.Background())
	assert.Equal(t, ViewListing, snap.View)
	st := s.SearchSnapshot()
	assert.False(t, st.Searching)
	assert.Empty(t, st.Results)
}

func TestSession_SearchLoadingTitle(t *testing.T) {
	release := make(chan struct{})
	src := listingSource()
	src.On("SearchMovies", mock.Anything, "slow").
		Run(func(mock.Arguments) { <-release }).
		Return(moviePage(1, 1, 1, 1), nil)
	s := newTestSession(t, src)

	s.Search("slow")
	snap := s.Peek()
	assert.Equal(t, "Search Results (Loading...)", snap.Title)
	assert.True(t, snap.Loading)

	close(release)
	snap = s.Snapshot(context.Background())
	assert.Equal(t, "Search Results", snap.Title)
}

func TestSession_QueryDuringDetailKeepsDetail(t *testing.T) {
	src := listingSource()
	src.On("SearchMovies", mock.Anything, "matrix").Return(moviePage(1, 1, 603, 1), nil)
	src.On("GetMovie", mock.Anything, 550).Return(fightClub(), nil)
	src.On("GetCredits", mock.Anything, 550).Return(&entities.Credits{}, nil)
	s := newTestSession(t, src)

	s.SelectMovie(550)
	s.Search("matrix")
	snap := s.Snapshot(context.Background())
	assert.Equal(t, ViewDetail, snap.View)
	assert.Equal(t, "matrix", snap.Query)
}

func TestSession_ErrorNotice(t *testing.T) {
	src := new(mockSource)
	src.On("ListGenres", mock.Anything).Return(testGenres, nil)
	src.On("ListMovies", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeNetwork, "request failed", errors.New("dial tcp"))).Once()
	src.On("ListMovies", mock.Anything, mock.Anything).Return(moviePage(1, 20, 1, 1), nil)

	s := newTestSession(t, src)
	snap := s.Snapshot(context.Background())
	require.NotNil(t, snap.Error)
	assert.Equal(t, apperrors.ErrorCodeNetwork, snap.Error.Code)
	assert.Equal(t, "list", snap.Error.Component)
	assert.Empty(t, snap.Items)

	require.True(t, s.Reload())
	snap = s.Snapshot(context.Background())
	assert.Nil(t, snap.Error)
	assert.Len(t, snap.Items, 20)
}

func TestSession_DetailNotFound(t *testing.T) {
	src := listingSource()
	src.On("GetMovie", mock.Anything, 999).Return(nil, apperrors.NewServiceError(apperrors.ErrorCodeNotFound, "resource not found"))
	src.On("GetCredits", mock.Anything, 999).Return(nil, apperrors.NewServiceError(apperrors.ErrorCodeNotFound, "resource not found"))
	s := newTestSession(t, src)

	s.SelectMovie(999)
	snap := s.Snapshot(context.Background())
	assert.True(t, snap.NotFound)
	assert.Nil(t, snap.Detail)
	assert.Equal(t, 999, snap.SelectedID)

	s.DismissError()
	assert.Nil(t, s.Peek().Error)
}

func TestSession_ThemeIsShared(t *testing.T) {
	theme := NewTheme(false)
	a := NewSession(context.Background(), "a", listingSource(), theme, DefaultOptions())
	b := NewSession(context.Background(), "b", listingSource(), theme, DefaultOptions())
	defer a.Close()
	defer b.Close()

	a.Theme().Toggle()
	assert.True(t, b.Peek().DarkTheme)
}

func TestSession_LastSeenAdvances(t *testing.T) {
	s := newTestSession(t, listingSource())
	before := s.LastSeen()
	time.Sleep(5 * time.Millisecond)
	s.SetView(valueobjects.ViewDiscover)
	assert.True(t, s.LastSeen().After(before))
}

func cardIDs(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestSession_RetryRepeatsFailedSearch(t *testing.T) {
	src := listingSource()
	src.On("SearchMovies", mock.Anything, "alien").
		Return(nil, apperrors.NewServiceError(apperrors.ErrorCodeTimeout, "request timed out")).Once()
	src.On("SearchMovies", mock.Anything, "alien").Return(moviePage(1, 2, 348, 1), nil)

	s := newTestSession(t, src)
	s.Snapshot(context.Background())

	s.Search("alien")
	snap := s.Snapshot(context.Background())
	require.NotNil(t, snap.Error)
	assert.Equal(t, "search", snap.Error.Component)
	assert.Empty(t, snap.Items)

	require.True(t, s.Retry())
	snap = s.Snapshot(context.Background())
	assert.Nil(t, snap.Error)
	assert.Equal(t, ViewSearching, snap.View)
	assert.Equal(t, []int{348, 349}, cardIDs(snap.Items))
	src.AssertNumberOfCalls(t, "ListMovies", 1)
	src.AssertNumberOfCalls(t, "SearchMovies", 2)
}

func TestSession_RetryReloadsFailedDetail(t *testing.T) {
	src := listingSource()
	src.On("GetMovie", mock.Anything, 550).
		Return(nil, apperrors.NewServiceError(apperrors.ErrorCodeNetwork, "request failed")).Once()
	src.On("GetMovie", mock.Anything, 550).Return(fightClub(), nil)
	src.On("GetCredits", mock.Anything, 550).Return(&entities.Credits{}, nil)

	s := newTestSession(t, src)
	s.Snapshot(context.Background())

	s.SelectMovie(550)
	snap := s.Snapshot(context.Background())
	assert.True(t, snap.NotFound)
	require.NotNil(t, snap.Error)
	assert.Equal(t, "detail", snap.Error.Component)

	require.True(t, s.Retry())
	snap = s.Snapshot(context.Background())
	assert.Nil(t, snap.Error)
	assert.False(t, snap.NotFound)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "Fight Club", snap.Title)
	src.AssertNumberOfCalls(t, "ListMovies", 1)
}

func TestSession_RetryWithoutErrorReloadsList(t *testing.T) {
	src := listingSource()
	s := newTestSession(t, src)
	s.Snapshot(context.Background())

	require.True(t, s.Retry())
	s.Snapshot(context.Background())
	src.AssertNumberOfCalls(t, "ListMovies", 2)
}
