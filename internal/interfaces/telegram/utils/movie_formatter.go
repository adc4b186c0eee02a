package utils

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/callbacks"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
)

const checkMark = "✓ "

// FormatSnapshot 按会话当前视图生成消息正文和内联键盘
func FormatSnapshot(snap *browse.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	if snap.IsDetail() {
		return FormatDetail(snap)
	}
	return FormatListing(snap)
}

// FormatListing 列表或搜索结果
func FormatListing(snap *browse.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	writeNotice(&sb, snap)

	switch {
	case snap.IsSearching():
		fmt.Fprintf(&sb, "<b>Search Results</b> for “%s”\n", html.EscapeString(snap.Query))
	case snap.IsDiscover():
		fmt.Fprintf(&sb, "<b>%s</b> · %s", html.EscapeString(snap.Title), snap.SortLabel)
		if names := selectedGenres(snap); len(names) > 0 {
			fmt.Fprintf(&sb, " · %s", html.EscapeString(strings.Join(names, ", ")))
		}
		sb.WriteString("\n")
	default:
		fmt.Fprintf(&sb, "<b>%s</b> · %s\n", html.EscapeString(snap.Title), snap.TimeWindow)
	}
	if snap.IsListing() && snap.TotalPages > 0 {
		fmt.Fprintf(&sb, "<i>Page %d of %d · %d movies</i>\n", snap.Page, snap.TotalPages, snap.TotalResults)
	}
	sb.WriteString("\n")

	start := visibleStart(snap.Items)
	for i, card := range snap.Items[start:] {
		fmt.Fprintf(&sb, "%d. <b>%s</b> (%s) ★ %s\n", start+i+1, html.EscapeString(card.Title), card.Year, card.Rating)
	}

	switch {
	case snap.Loading:
		sb.WriteString("Loading...\n")
	case len(snap.Items) == 0 && snap.IsSearching():
		fmt.Fprintf(&sb, "No movies match “%s”.\n", html.EscapeString(snap.Query))
	case len(snap.Items) == 0:
		sb.WriteString("No movies to show.\n")
	}

	return strings.TrimRight(sb.String(), "\n"), listingKeyboard(snap, start)
}

// FormatDetail 详情页正文
func FormatDetail(snap *browse.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	writeNotice(&sb, snap)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("← Back", callbacks.Data(callbacks.ActionBack)),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Home", callbacks.Data(callbacks.ActionHome)),
	))

	d := snap.Detail
	switch {
	case snap.NotFound:
		sb.WriteString("<b>Movie not found</b>\nThe movie you are looking for does not exist.")
		return sb.String(), &keyboard
	case d == nil:
		sb.WriteString("Loading...")
		return sb.String(), &keyboard
	}

	fmt.Fprintf(&sb, "<b>%s</b> (%s)\n", html.EscapeString(d.Title), d.Year)
	if d.Tagline != "" {
		fmt.Fprintf(&sb, "<i>%s</i>\n", html.EscapeString(d.Tagline))
	}

	facts := []string{"★ " + d.Rating}
	if d.Runtime != "" {
		facts = append(facts, d.Runtime)
	}
	if len(d.Genres) > 0 {
		facts = append(facts, strings.Join(d.Genres, ", "))
	}
	sb.WriteString(html.EscapeString(strings.Join(facts, " · ")))
	sb.WriteString("\n")

	if d.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", html.EscapeString(d.Overview))
	}
	if len(d.Crew) > 0 {
		crew := make([]string, 0, len(d.Crew))
		for _, m := range d.Crew {
			crew = append(crew, fmt.Sprintf("%s (%s)", m.Name, m.Job))
		}
		fmt.Fprintf(&sb, "\n<b>Crew:</b> %s", html.EscapeString(strings.Join(crew, ", ")))
	}
	if len(d.Cast) > 0 {
		cast := make([]string, 0, len(d.Cast))
		for _, m := range d.Cast {
			if m.Character != "" {
				cast = append(cast, m.Name+" as "+m.Character)
			} else {
				cast = append(cast, m.Name)
			}
		}
		fmt.Fprintf(&sb, "\n<b>Cast:</b> %s", html.EscapeString(strings.Join(cast, ", ")))
	}

	return strings.TrimRight(sb.String(), "\n"), &keyboard
}

// FormatGenres 类型选择面板
func FormatGenres(snap *browse.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	writeNotice(&sb, snap)
	sb.WriteString("<b>Genres</b>\n")
	if names := selectedGenres(snap); len(names) > 0 {
		fmt.Fprintf(&sb, "Selected: %s", html.EscapeString(strings.Join(names, ", ")))
	} else if len(snap.Genres) == 0 {
		sb.WriteString("Genres are not available right now.")
	} else {
		sb.WriteString("Tap genres to filter Discover Movies.")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, g := range snap.Genres {
		label := g.Name
		if g.Selected {
			label = checkMark + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbacks.GenreData(g.ID)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Done", callbacks.Data(callbacks.ActionList)),
	))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return sb.String(), &keyboard
}

// PosterURL 详情页可发送的海报地址,占位图等相对地址返回空
func PosterURL(snap *browse.Snapshot) string {
	if snap.Detail == nil || !strings.HasPrefix(snap.Detail.PosterURL, "http") {
		return ""
	}
	return snap.Detail.PosterURL
}

func writeNotice(sb *strings.Builder, snap *browse.Snapshot) {
	if snap.Error != nil {
		fmt.Fprintf(sb, "⚠️ %s\n\n", html.EscapeString(snap.Error.Message))
	}
}

// visibleStart 只展示最近一页
func visibleStart(items []browse.Card) int {
	if len(items) > types.MaxListItems {
		return len(items) - types.MaxListItems
	}
	return 0
}

func selectedGenres(snap *browse.Snapshot) []string {
	var names []string
	for _, g := range snap.Genres {
		if g.Selected {
			names = append(names, g.Name)
		}
	}
	return names
}

func listingKeyboard(snap *browse.Snapshot, start int) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for i, card := range snap.Items[start:] {
		label := fmt.Sprintf("%d. %s", start+i+1, truncate(card.Title, types.MaxButtonTitle))
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbacks.MovieData(card.ID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if snap.Error != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Retry", callbacks.Data(callbacks.ActionRetry)),
			tgbotapi.NewInlineKeyboardButtonData("✖ Dismiss", callbacks.Data(callbacks.ActionDismiss)),
		))
	}

	if snap.IsSearching() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Home", callbacks.Data(callbacks.ActionHome)),
		))
		keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
		return &keyboard
	}

	if snap.IsDiscover() {
		var sorts []tgbotapi.InlineKeyboardButton
		for _, key := range valueobjects.SortKeys {
			sorts = append(sorts, tgbotapi.NewInlineKeyboardButtonData(
				mark(key == snap.Params.SortBy, key.Label()), callbacks.Data(callbacks.ActionSort, key.String())))
		}
		rows = append(rows, sorts, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎭 Genres", callbacks.Data(callbacks.ActionGenres)),
		))
	} else {
		var windows []tgbotapi.InlineKeyboardButton
		for _, w := range []valueobjects.TimeWindow{valueobjects.TimeWindowDay, valueobjects.TimeWindowWeek} {
			windows = append(windows, tgbotapi.NewInlineKeyboardButtonData(
				mark(w == snap.Params.TimeWindow, w.Label()), callbacks.Data(callbacks.ActionTimeWindow, w.String())))
		}
		rows = append(rows, windows)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(mark(!snap.IsDiscover(), "🔥 Trending"),
			callbacks.Data(callbacks.ActionView, valueobjects.ViewTrending.String())),
		tgbotapi.NewInlineKeyboardButtonData(mark(snap.IsDiscover(), "🧭 Discover"),
			callbacks.Data(callbacks.ActionView, valueobjects.ViewDiscover.String())),
	))

	nav := []tgbotapi.InlineKeyboardButton{}
	if snap.HasMore {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➕ More", callbacks.Data(callbacks.ActionMore)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🌓 Theme", callbacks.Data(callbacks.ActionTheme)))
	rows = append(rows, nav)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

func mark(active bool, label string) string {
	if active {
		return checkMark + label
	}
	return label
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
