package browse

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easayliu/movie-browser/internal/domain/entities"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
)

func fightClub() *entities.MovieDetail {
	return &entities.MovieDetail{
		MovieSummary: entities.MovieSummary{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
		Runtime:      139,
		Overview:     "An insomniac office worker...",
		Genres:       []entities.Genre{{ID: 18, Name: "Drama"}},
	}
}

func TestDetailLoader_CreditsFailureStillShowsDetail(t *testing.T) {
	src := new(mockSource)
	src.On("GetMovie", mock.Anything, 550).Return(fightClub(), nil)
	src.On("GetCredits", mock.Anything, 550).Return(nil, errors.New("credits unavailable"))

	sink := &errorSink{}
	l := NewDetailLoader(context.Background(), src, sink.report)
	defer l.Close()

	l.Load(550)
	settle(t, l)

	st := l.State()
	require.Equal(t, DetailReady, st.Status)
	require.NotNil(t, st.Detail)
	assert.Equal(t, "Fight Club", st.Detail.Title)
	assert.Equal(t, "An insomniac office worker...", st.Detail.Overview)
	assert.NotNil(t, st.Detail.Cast)
	assert.Empty(t, st.Detail.Cast)
	assert.NotNil(t, st.Detail.Crew)
	assert.Empty(t, st.Detail.Crew)
	assert.Equal(t, 1, sink.count())
}

func TestDetailLoader_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		detail *entities.MovieDetail
		err    error
	}{
		{name: "源返回404", err: apperrors.NewServiceError(apperrors.ErrorCodeNotFound, "resource not found")},
		{name: "无效记录", detail: &entities.MovieDetail{}},
		{name: "标题为空", detail: &entities.MovieDetail{MovieSummary: entities.MovieSummary{ID: 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(mockSource)
			src.On("GetMovie", mock.Anything, 7).Return(tt.detail, tt.err)
			src.On("GetCredits", mock.Anything, 7).Return(&entities.Credits{}, nil)

			l := NewDetailLoader(context.Background(), src, nil)
			defer l.Close()

			l.Load(7)
			settle(t, l)

			st := l.State()
			assert.Equal(t, DetailNotFound, st.Status)
			assert.Nil(t, st.Detail)
			assert.False(t, st.Busy)
		})
	}
}

func TestDetailLoader_InvalidID(t *testing.T) {
	src := new(mockSource)
	l := NewDetailLoader(context.Background(), src, nil)
	defer l.Close()

	l.Load(0)
	settle(t, l)
	assert.Equal(t, DetailNotFound, l.State().Status)
	src.AssertNotCalled(t, "GetMovie", mock.Anything, mock.Anything)
}

func TestDetailLoader_TruncatesCastAndFiltersCrew(t *testing.T) {
	cast := make([]entities.CastMember, 14)
	for i := range cast {
		cast[i] = entities.CastMember{ID: i + 1, Name: fmt.Sprintf("Actor %d", i+1)}
	}
	crew := []entities.CrewMember{
		{ID: 1, Name: "Chuck", Job: "Novel"},
		{ID: 2, Name: "David", Job: "Director"},
		{ID: 3, Name: "Jim", Job: "Writer"},
		{ID: 4, Name: "Jeff", Job: "Director of Photography"},
		{ID: 3, Name: "Jim", Job: "Director"},
	}

	src := new(mockSource)
	src.On("GetMovie", mock.Anything, 550).Return(fightClub(), nil)
	src.On("GetCredits", mock.Anything, 550).Return(&entities.Credits{Cast: cast, Crew: crew}, nil)

	l := NewDetailLoader(context.Background(), src, nil)
	defer l.Close()
	l.Load(550)
	settle(t, l)

	d := l.State().Detail
	require.NotNil(t, d)
	require.Len(t, d.Cast, entities.MaxCastMembers)
	assert.Equal(t, 1, d.Cast[0].ID)
	assert.Equal(t, 10, d.Cast[9].ID)

	keys := make([]string, len(d.Crew))
	for i, c := range d.Crew {
		keys[i] = c.Key()
	}
	assert.Equal(t, []string{"2-Director", "3-Writer", "3-Director"}, keys)
}

func TestDetailLoader_BusyAndClear(t *testing.T) {
	release := make(chan struct{})
	src := new(mockSource)
	src.On("GetMovie", mock.Anything, 550).
		Run(func(mock.Arguments) { <-release }).
		Return(fightClub(), nil)
	src.On("GetCredits", mock.Anything, 550).Return(&entities.Credits{}, nil)

	l := NewDetailLoader(context.Background(), src, nil)
	defer l.Close()

	l.Load(550)
	st := l.State()
	assert.True(t, st.Busy)
	assert.Equal(t, DetailLoading, st.Status)

	l.Clear()
	settle(t, l)
	close(release)

	assert.Never(t, func() bool {
		return l.State().Status != DetailIdle
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestDetailLoader_LatestSelectionWins(t *testing.T) {
	release := make(chan struct{})
	other := fightClub()
	other.ID, other.Title = 603, "The Matrix"

	src := new(mockSource)
	src.On("GetMovie", mock.Anything, 550).
		Run(func(mock.Arguments) { <-release }).
		Return(fightClub(), nil)
	src.On("GetMovie", mock.Anything, 603).Return(other, nil)
	src.On("GetCredits", mock.Anything, mock.Anything).Return(&entities.Credits{}, nil)

	l := NewDetailLoader(context.Background(), src, nil)
	defer l.Close()

	l.Load(550)
	l.Load(603)
	settle(t, l)
	close(release)

	assert.Never(t, func() bool {
		d := l.State().Detail
		return d == nil || d.ID != 603
	}, 100*time.Millisecond, 10*time.Millisecond)
}
