package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
)

// ValueRequest 单值修改请求,表单和JSON均可
type ValueRequest struct {
	Value string `json:"value" form:"value" binding:"required"`
}

// mutation 对会话的一次修改
type mutation func(c *gin.Context, sess *browse.Session) error

func bindValue(c *gin.Context) (string, error) {
	var req ValueRequest
	if err := c.ShouldBind(&req); err != nil {
		return "", apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest, "value is required")
	}
	return strings.TrimSpace(req.Value), nil
}

func invalidValue(field, value string) error {
	return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeInvalidRequest,
		"invalid "+field, map[string]interface{}{field: value})
}

func setView(c *gin.Context, sess *browse.Session) error {
	value, err := bindValue(c)
	if err != nil {
		return err
	}
	view := valueobjects.ViewMode(strings.ToLower(value))
	if !view.IsValid() {
		return invalidValue("view", value)
	}
	sess.SetView(view)
	return nil
}

func setTimeWindow(c *gin.Context, sess *browse.Session) error {
	value, err := bindValue(c)
	if err != nil {
		return err
	}
	window := valueobjects.TimeWindow(strings.ToLower(value))
	if !window.IsValid() {
		return invalidValue("time_window", value)
	}
	sess.SetTimeWindow(window)
	return nil
}

func setSortKey(c *gin.Context, sess *browse.Session) error {
	value, err := bindValue(c)
	if err != nil {
		return err
	}
	key, ok := valueobjects.ParseSortKey(value)
	if !ok {
		return invalidValue("sort_by", value)
	}
	sess.SetSortKey(key)
	return nil
}

func toggleGenre(c *gin.Context, sess *browse.Session) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return invalidValue("genre", c.Param("id"))
	}
	sess.ToggleGenre(id)
	return nil
}

func loadMore(_ *gin.Context, sess *browse.Session) error {
	sess.LoadMore()
	return nil
}

func reload(_ *gin.Context, sess *browse.Session) error {
	sess.Reload()
	return nil
}

func retry(_ *gin.Context, sess *browse.Session) error {
	sess.Retry()
	return nil
}

func dismissError(_ *gin.Context, sess *browse.Session) error {
	sess.DismissError()
	return nil
}

func goBack(_ *gin.Context, sess *browse.Session) error {
	sess.Back()
	return nil
}

func goHome(_ *gin.Context, sess *browse.Session) error {
	sess.Home()
	return nil
}

func toggleTheme(_ *gin.Context, sess *browse.Session) error {
	sess.Theme().Toggle()
	return nil
}

// movieID 非数字或非正数都按 0 处理,由详情加载器给出未找到
func movieID(c *gin.Context) int {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}
