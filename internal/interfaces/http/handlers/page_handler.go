package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/internal/application/browse"
)

// PageHandler 服务端渲染的浏览页面
// 修改类请求处理完成后重定向回首页(PRG),首页按会话当前视图渲染
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) render(c *gin.Context, sess *browse.Session) {
	snap := sess.Snapshot(c.Request.Context())
	status := http.StatusOK
	if snap.NotFound {
		status = http.StatusNotFound
	}
	c.HTML(status, PageTemplateName, snap)
}

func (h *PageHandler) apply(c *gin.Context, op mutation) {
	if err := op(c, GetSession(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Index 渲染当前视图
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, GetSession(c))
}

// ShowMovie 打开详情页
func (h *PageHandler) ShowMovie(c *gin.Context) {
	sess := GetSession(c)
	sess.SelectMovie(movieID(c))
	h.render(c, sess)
}

// Search 按关键字搜索,空关键字回到列表
func (h *PageHandler) Search(c *gin.Context) {
	sess := GetSession(c)
	sess.Search(c.Query("q"))
	h.render(c, sess)
}

func (h *PageHandler) SetView(c *gin.Context)       { h.apply(c, setView) }
func (h *PageHandler) SetTimeWindow(c *gin.Context) { h.apply(c, setTimeWindow) }
func (h *PageHandler) SetSortKey(c *gin.Context)    { h.apply(c, setSortKey) }
func (h *PageHandler) ToggleGenre(c *gin.Context)   { h.apply(c, toggleGenre) }
func (h *PageHandler) LoadMore(c *gin.Context)      { h.apply(c, loadMore) }
func (h *PageHandler) Reload(c *gin.Context)        { h.apply(c, reload) }
func (h *PageHandler) Retry(c *gin.Context)         { h.apply(c, retry) }
func (h *PageHandler) DismissError(c *gin.Context)  { h.apply(c, dismissError) }
func (h *PageHandler) Back(c *gin.Context)          { h.apply(c, goBack) }
func (h *PageHandler) Home(c *gin.Context)          { h.apply(c, goHome) }
func (h *PageHandler) ToggleTheme(c *gin.Context)   { h.apply(c, toggleTheme) }

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="500" height="750" viewBox="0 0 500 750">
<rect width="500" height="750" fill="#2c2c30"/>
<text x="250" y="385" font-family="sans-serif" font-size="36" fill="#8e8e93" text-anchor="middle">No Poster</text>
</svg>`

// Placeholder 缺失海报时使用的占位图
func (h *PageHandler) Placeholder(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(placeholderSVG))
}
