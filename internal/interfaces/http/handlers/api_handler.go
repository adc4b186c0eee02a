package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/pkg/response"
)

// APIHandler 浏览会话的JSON接口,与页面共用同一个会话cookie
type APIHandler struct{}

func NewAPIHandler() *APIHandler {
	return &APIHandler{}
}

func (h *APIHandler) respond(c *gin.Context, sess *browse.Session) {
	response.Success(c, sess.Snapshot(c.Request.Context()))
}

func (h *APIHandler) apply(c *gin.Context, op mutation) {
	sess := GetSession(c)
	if err := op(c, sess); err != nil {
		_ = c.Error(err)
		return
	}
	h.respond(c, sess)
}

// GetState 获取会话快照
// @Summary 获取浏览状态
// @Description 等待进行中的请求完成后返回当前视图的快照
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /state [get]
func (h *APIHandler) GetState(c *gin.Context) {
	h.respond(c, GetSession(c))
}

// SetView 切换列表视图
// @Summary 切换列表视图
// @Tags 浏览
// @Accept json
// @Produce json
// @Param request body ValueRequest true "trending 或 discover"
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Failure 400 {object} response.Response
// @Router /list/view [post]
func (h *APIHandler) SetView(c *gin.Context) { h.apply(c, setView) }

// SetTimeWindow 切换趋势时间窗口
// @Summary 切换趋势时间窗口
// @Tags 浏览
// @Accept json
// @Produce json
// @Param request body ValueRequest true "day 或 week"
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Failure 400 {object} response.Response
// @Router /list/time-window [post]
func (h *APIHandler) SetTimeWindow(c *gin.Context) { h.apply(c, setTimeWindow) }

// SetSortKey 切换发现页排序
// @Summary 切换发现页排序
// @Tags 浏览
// @Accept json
// @Produce json
// @Param request body ValueRequest true "popularity / release / rating 或完整排序键"
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Failure 400 {object} response.Response
// @Router /list/sort [post]
func (h *APIHandler) SetSortKey(c *gin.Context) { h.apply(c, setSortKey) }

// ToggleGenre 选中或取消类型
// @Summary 选中或取消类型
// @Tags 浏览
// @Produce json
// @Param id path int true "类型ID"
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Failure 400 {object} response.Response
// @Router /list/genres/{id}/toggle [post]
func (h *APIHandler) ToggleGenre(c *gin.Context) { h.apply(c, toggleGenre) }

// LoadMore 加载下一页
// @Summary 加载下一页
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /list/more [post]
func (h *APIHandler) LoadMore(c *gin.Context) { h.apply(c, loadMore) }

// Reload 重新加载列表并清除错误提示
// @Summary 重新加载列表
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /list/reload [post]
func (h *APIHandler) Reload(c *gin.Context) { h.apply(c, reload) }

// Search 搜索电影
// @Summary 搜索电影
// @Description 空关键字清空结果并回到列表
// @Tags 浏览
// @Produce json
// @Param q query string false "关键字"
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /search [get]
func (h *APIHandler) Search(c *gin.Context) {
	sess := GetSession(c)
	sess.Search(c.Query("q"))
	h.respond(c, sess)
}

// SelectMovie 查看电影详情
// @Summary 查看电影详情
// @Tags 浏览
// @Produce json
// @Param id path int true "电影ID"
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /movies/{id} [get]
func (h *APIHandler) SelectMovie(c *gin.Context) {
	sess := GetSession(c)
	sess.SelectMovie(movieID(c))
	h.respond(c, sess)
}

// Back 从详情页返回列表
// @Summary 返回列表
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /back [post]
func (h *APIHandler) Back(c *gin.Context) { h.apply(c, goBack) }

// Home 清空搜索并回到列表
// @Summary 回到首页
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /home [post]
func (h *APIHandler) Home(c *gin.Context) { h.apply(c, goHome) }

// ToggleTheme 切换明暗主题,对所有会话生效
// @Summary 切换主题
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /theme/toggle [post]
func (h *APIHandler) ToggleTheme(c *gin.Context) { h.apply(c, toggleTheme) }

// Retry 重试出错的请求(列表、搜索或详情)
// @Summary 重试失败的请求
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /error/retry [post]
func (h *APIHandler) Retry(c *gin.Context) { h.apply(c, retry) }

// DismissError 关闭错误提示
// @Summary 关闭错误提示
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=browse.Snapshot}
// @Router /error [delete]
func (h *APIHandler) DismissError(c *gin.Context) { h.apply(c, dismissError) }
