package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/application/services/session"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/utils"
	"github.com/easayliu/movie-browser/pkg/logger"
)

// SessionKey 每个聊天对应一个浏览会话
func SessionKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

// ParseCommand 拆分 "/cmd@bot args" 形式的命令,非命令返回空命令
func ParseCommand(text string) (command, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	head, rest, _ := strings.Cut(text, " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(rest)
}

// BrowseCommands handles browsing commands and callback actions
type BrowseCommands struct {
	ctx    context.Context
	store  *session.Store
	sender types.MessageSender
}

// NewBrowseCommands creates a browse commands handler
func NewBrowseCommands(ctx context.Context, store *session.Store, sender types.MessageSender) *BrowseCommands {
	return &BrowseCommands{
		ctx:    ctx,
		store:  store,
		sender: sender,
	}
}

func (bc *BrowseCommands) session(chatID int64) *browse.Session {
	sess, created := bc.store.Open(SessionKey(chatID))
	if created {
		logger.Info("Telegram browse session opened", "chatID", chatID)
	}
	return sess
}

// render 优先编辑触发回调的消息,详情页有海报时发送图片
func (bc *BrowseCommands) render(reply types.Reply, sess *browse.Session) {
	snap := sess.Snapshot(bc.ctx)
	text, keyboard := utils.FormatSnapshot(snap)

	if snap.IsDetail() {
		if poster := utils.PosterURL(snap); poster != "" && len([]rune(text)) <= types.MaxCaptionLength {
			bc.sender.SendPhoto(reply.ChatID, poster, text, keyboard)
			return
		}
	}
	bc.send(reply, text, keyboard)
}

func (bc *BrowseCommands) send(reply types.Reply, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	if reply.MessageID != 0 && bc.sender.EditHTML(reply.ChatID, reply.MessageID, text, keyboard) {
		return
	}
	bc.sender.SendHTML(reply.ChatID, text, keyboard)
}

// toListing 列表类命令先离开搜索和详情
func (bc *BrowseCommands) toListing(sess *browse.Session) {
	if sess.View() != browse.ViewListing {
		sess.Home()
	}
}

// HandleStart 欢迎信息并展示今日趋势
func (bc *BrowseCommands) HandleStart(chatID int64) {
	message := "<b>Welcome to Movie Browser</b>\n\n" +
		"Browse trending and popular movies from TMDB.\n" +
		"Send any text to search, or use /help to see all commands."
	bc.sender.SendHTML(chatID, message, nil)

	sess := bc.session(chatID)
	bc.toListing(sess)
	bc.render(types.Reply{ChatID: chatID}, sess)
}

// HandleHelp 命令列表
func (bc *BrowseCommands) HandleHelp(chatID int64) {
	message := "<b>Commands</b>\n\n" +
		"/trending [day|week] - trending movies\n" +
		"/discover [popularity|release|rating] - discover movies\n" +
		"/genres - filter Discover by genre\n" +
		"/search &lt;query&gt; - search movies\n" +
		"/movie &lt;id&gt; - movie details\n" +
		"/more - load the next page\n" +
		"/back - leave the detail view\n" +
		"/home - clear search and go back to the list\n" +
		"/theme - toggle light/dark theme\n\n" +
		"Plain text is treated as a search query."
	bc.sender.SendHTML(chatID, message, nil)
}

// HandleTrending 切换到趋势榜,可选时间窗口
func (bc *BrowseCommands) HandleTrending(reply types.Reply, args string) {
	sess := bc.session(reply.ChatID)
	bc.toListing(sess)

	if args != "" {
		window := valueobjects.TimeWindow(strings.ToLower(args))
		if !window.IsValid() {
			bc.sender.SendHTML(reply.ChatID, "Usage: /trending [day|week]", nil)
			return
		}
		sess.SetTimeWindow(window)
	}
	sess.SetView(valueobjects.ViewTrending)
	bc.render(reply, sess)
}

// HandleDiscover 切换到发现页,可选排序
func (bc *BrowseCommands) HandleDiscover(reply types.Reply, args string) {
	sess := bc.session(reply.ChatID)
	bc.toListing(sess)

	if args != "" {
		key, ok := valueobjects.ParseSortKey(args)
		if !ok {
			bc.sender.SendHTML(reply.ChatID, "Usage: /discover [popularity|release|rating]", nil)
			return
		}
		sess.SetSortKey(key)
	}
	sess.SetView(valueobjects.ViewDiscover)
	bc.render(reply, sess)
}

// HandleView 切换列表视图
func (bc *BrowseCommands) HandleView(reply types.Reply, value string) {
	view := valueobjects.ViewMode(value)
	if !view.IsValid() {
		return
	}
	sess := bc.session(reply.ChatID)
	bc.toListing(sess)
	sess.SetView(view)
	bc.render(reply, sess)
}

// HandleTimeWindow 切换趋势时间窗口
func (bc *BrowseCommands) HandleTimeWindow(reply types.Reply, value string) {
	window := valueobjects.TimeWindow(value)
	if !window.IsValid() {
		return
	}
	sess := bc.session(reply.ChatID)
	sess.SetTimeWindow(window)
	bc.render(reply, sess)
}

// HandleSort 切换发现页排序
func (bc *BrowseCommands) HandleSort(reply types.Reply, value string) {
	key, ok := valueobjects.ParseSortKey(value)
	if !ok {
		return
	}
	sess := bc.session(reply.ChatID)
	sess.SetSortKey(key)
	bc.render(reply, sess)
}

// HandleGenres 展示类型选择面板,会切换到发现页
func (bc *BrowseCommands) HandleGenres(reply types.Reply) {
	sess := bc.session(reply.ChatID)
	bc.toListing(sess)
	sess.SetView(valueobjects.ViewDiscover)

	text, keyboard := utils.FormatGenres(sess.Snapshot(bc.ctx))
	bc.send(reply, text, keyboard)
}

// HandleToggleGenre 切换类型后刷新选择面板
func (bc *BrowseCommands) HandleToggleGenre(reply types.Reply, id int) {
	sess := bc.session(reply.ChatID)
	sess.ToggleGenre(id)

	text, keyboard := utils.FormatGenres(sess.Snapshot(bc.ctx))
	bc.send(reply, text, keyboard)
}

// HandleList 重新展示当前视图
func (bc *BrowseCommands) HandleList(reply types.Reply) {
	bc.render(reply, bc.session(reply.ChatID))
}

// HandleSearch 搜索,空关键字回到列表
func (bc *BrowseCommands) HandleSearch(reply types.Reply, query string) {
	sess := bc.session(reply.ChatID)
	if sess.View() == browse.ViewDetail {
		sess.Back()
	}
	sess.Search(query)
	bc.render(reply, sess)
}

// HandleMovie 查看详情
func (bc *BrowseCommands) HandleMovie(reply types.Reply, args string) {
	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		bc.sender.SendHTML(reply.ChatID, "Usage: /movie &lt;id&gt;", nil)
		return
	}
	bc.HandleSelect(reply, id)
}

// HandleSelect 选择一部电影,详情总是作为新消息发送
func (bc *BrowseCommands) HandleSelect(reply types.Reply, id int) {
	sess := bc.session(reply.ChatID)
	sess.SelectMovie(id)
	bc.render(types.Reply{ChatID: reply.ChatID}, sess)
}

// HandleMore 加载下一页
func (bc *BrowseCommands) HandleMore(reply types.Reply) {
	sess := bc.session(reply.ChatID)
	if !sess.LoadMore() && reply.MessageID == 0 {
		bc.sender.SendHTML(reply.ChatID, "No more movies to load.", nil)
		return
	}
	bc.render(reply, sess)
}

// HandleBack 离开详情页
func (bc *BrowseCommands) HandleBack(reply types.Reply) {
	sess := bc.session(reply.ChatID)
	sess.Back()
	bc.render(reply, sess)
}

// HandleHome 清空搜索回到列表
func (bc *BrowseCommands) HandleHome(reply types.Reply) {
	sess := bc.session(reply.ChatID)
	sess.Home()
	bc.render(reply, sess)
}

// HandleRetry 重试出错的请求
func (bc *BrowseCommands) HandleRetry(reply types.Reply) {
	sess := bc.session(reply.ChatID)
	sess.Retry()
	bc.render(reply, sess)
}

// HandleDismiss 关闭错误提示
func (bc *BrowseCommands) HandleDismiss(reply types.Reply) {
	sess := bc.session(reply.ChatID)
	sess.DismissError()
	bc.render(reply, sess)
}

// HandleTheme 切换主题,网页端同步生效
func (bc *BrowseCommands) HandleTheme(chatID int64) string {
	theme := bc.session(chatID).Theme()
	theme.Toggle()
	return fmt.Sprintf("Theme switched to %s", theme.Name())
}
