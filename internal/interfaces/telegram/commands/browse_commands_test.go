package commands

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/application/services/session"
	"github.com/easayliu/movie-browser/internal/domain/entities"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
)

type sent struct {
	kind      string
	chatID    int64
	messageID int
	text      string
	photo     string
}

// fakeSender 记录所有发出的消息
type fakeSender struct {
	mu       sync.Mutex
	messages []sent
	editOK   bool
}

func (f *fakeSender) SendHTML(chatID int64, text string, _ *tgbotapi.InlineKeyboardMarkup) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sent{kind: "send", chatID: chatID, text: text})
	return len(f.messages)
}

func (f *fakeSender) EditHTML(chatID int64, messageID int, text string, _ *tgbotapi.InlineKeyboardMarkup) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.editOK {
		return false
	}
	f.messages = append(f.messages, sent{kind: "edit", chatID: chatID, messageID: messageID, text: text})
	return true
}

func (f *fakeSender) SendPhoto(chatID int64, photoURL, caption string, _ *tgbotapi.InlineKeyboardMarkup) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sent{kind: "photo", chatID: chatID, text: caption, photo: photoURL})
	return len(f.messages)
}

func (f *fakeSender) last() sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return sent{}
	}
	return f.messages[len(f.messages)-1]
}

var _ types.MessageSender = (*fakeSender)(nil)

// catalogSource 按视图返回不同标题的固定结果
type catalogSource struct{}

func (catalogSource) ListMovies(_ context.Context, p valueobjects.ListParams) (*entities.MoviePage, error) {
	title := "Trending " + string(p.TimeWindow)
	if p.View == valueobjects.ViewDiscover {
		title = "Discover " + string(p.SortBy)
	}
	return &entities.MoviePage{
		Page:       p.Page,
		TotalPages: 2,
		Results:    []entities.MovieSummary{{ID: 100 + p.Page, Title: title, ReleaseDate: "2024-01-01", VoteAverage: 7}},
	}, nil
}

func (catalogSource) SearchMovies(_ context.Context, q string) (*entities.MoviePage, error) {
	return &entities.MoviePage{Page: 1, TotalPages: 1, Results: []entities.MovieSummary{{ID: 9, Title: "Found " + q}}}, nil
}

func (catalogSource) GetMovie(_ context.Context, id int) (*entities.MovieDetail, error) {
	if id != 550 {
		return nil, apperrors.NewServiceError(apperrors.ErrorCodeNotFound, "movie not found")
	}
	return &entities.MovieDetail{MovieSummary: entities.MovieSummary{ID: 550, Title: "Fight Club", PosterPath: "/p.jpg"}}, nil
}

func (catalogSource) GetCredits(context.Context, int) (*entities.Credits, error) {
	return &entities.Credits{}, nil
}

func (catalogSource) ListGenres(context.Context) ([]entities.Genre, error) {
	return []entities.Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}}, nil
}

func newTestCommands(t *testing.T) (*BrowseCommands, *fakeSender, *session.Store) {
	t.Helper()
	opts := browse.DefaultOptions()
	opts.SearchDebounce = 0
	opts.SettleTimeout = 2 * time.Second
	store := session.NewStore(context.Background(), catalogSource{}, browse.NewTheme(false), opts, time.Minute)
	t.Cleanup(store.CloseAll)

	sender := &fakeSender{}
	return NewBrowseCommands(context.Background(), store, sender), sender, store
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text, cmd, args string
	}{
		{"/start", "/start", ""},
		{"/search@MovieBot  fight club ", "/search", "fight club"},
		{"/TRENDING week", "/trending", "week"},
		{"  blade runner", "", "blade runner"},
	}
	for _, tt := range tests {
		cmd, args := ParseCommand(tt.text)
		assert.Equal(t, tt.cmd, cmd, tt.text)
		assert.Equal(t, tt.args, args, tt.text)
	}
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "tg:-100123", SessionKey(-100123))
}

func TestHandleTrending_Week(t *testing.T) {
	bc, sender, store := newTestCommands(t)

	bc.HandleTrending(types.Reply{ChatID: 1}, "week")

	msg := sender.last()
	assert.Equal(t, "send", msg.kind)
	assert.Contains(t, msg.text, "<b>Trending Movies</b> · This Week")
	assert.Contains(t, msg.text, "Trending week")

	sess, ok := store.Get(SessionKey(1))
	require.True(t, ok)
	assert.Equal(t, valueobjects.TimeWindowWeek, sess.ListSnapshot().Params.TimeWindow)
}

func TestHandleTrending_BadWindow(t *testing.T) {
	bc, sender, _ := newTestCommands(t)
	bc.HandleTrending(types.Reply{ChatID: 1}, "month")
	assert.Contains(t, sender.last().text, "Usage: /trending")
}

func TestHandleDiscover_EditsCallbackMessage(t *testing.T) {
	bc, sender, _ := newTestCommands(t)
	sender.editOK = true

	bc.HandleDiscover(types.Reply{ChatID: 2, MessageID: 77}, "rating")

	msg := sender.last()
	assert.Equal(t, "edit", msg.kind)
	assert.Equal(t, 77, msg.messageID)
	assert.Contains(t, msg.text, "Discover vote_average.desc")
}

func TestHandleSearch_LeavesDetailAndHomeClears(t *testing.T) {
	bc, sender, store := newTestCommands(t)

	bc.HandleMovie(types.Reply{ChatID: 3}, "550")
	msg := sender.last()
	assert.Equal(t, "photo", msg.kind)
	assert.True(t, strings.HasSuffix(msg.photo, "/w500/p.jpg"))
	assert.Contains(t, msg.text, "<b>Fight Club</b>")

	bc.HandleSearch(types.Reply{ChatID: 3}, "alien")
	assert.Contains(t, sender.last().text, "Found alien")

	sess, _ := store.Get(SessionKey(3))
	assert.Equal(t, browse.ViewSearching, sess.View())

	bc.HandleHome(types.Reply{ChatID: 3})
	assert.Equal(t, browse.ViewListing, sess.View())
	assert.Empty(t, sess.SearchSnapshot().Query)
}

func TestHandleMovie_NotFoundAndUsage(t *testing.T) {
	bc, sender, _ := newTestCommands(t)

	bc.HandleMovie(types.Reply{ChatID: 4}, "1")
	assert.Contains(t, sender.last().text, "Movie not found")

	bc.HandleMovie(types.Reply{ChatID: 4}, "abc")
	assert.Contains(t, sender.last().text, "Usage: /movie")
}

func TestHandleGenres_TogglesAndSwitchesToDiscover(t *testing.T) {
	bc, sender, store := newTestCommands(t)

	bc.HandleGenres(types.Reply{ChatID: 5})
	assert.Contains(t, sender.last().text, "Tap genres")

	bc.HandleToggleGenre(types.Reply{ChatID: 5}, 28)
	assert.Contains(t, sender.last().text, "Selected: Action")

	sess, _ := store.Get(SessionKey(5))
	params := sess.ListSnapshot().Params
	assert.Equal(t, valueobjects.ViewDiscover, params.View)
	assert.Equal(t, valueobjects.GenreSelection{28}, params.Genres)
}

func TestHandleMore(t *testing.T) {
	bc, sender, _ := newTestCommands(t)

	bc.HandleTrending(types.Reply{ChatID: 6}, "")
	bc.HandleMore(types.Reply{ChatID: 6})
	assert.Contains(t, sender.last().text, "Page 2 of 2")

	bc.HandleMore(types.Reply{ChatID: 6})
	assert.Equal(t, "No more movies to load.", sender.last().text)
}

func TestHandleTheme_SharedAcrossChats(t *testing.T) {
	bc, _, store := newTestCommands(t)

	assert.Equal(t, "Theme switched to dark", bc.HandleTheme(7))
	assert.True(t, store.Theme().IsDark())
	assert.Equal(t, "Theme switched to light", bc.HandleTheme(8))
}
