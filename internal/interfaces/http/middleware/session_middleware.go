package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/application/services/session"
)

const (
	// SessionCookie 浏览会话cookie
	SessionCookie     = "mb_session"
	ContextKeySession = "session"
)

// SessionMiddleware 按cookie取出浏览会话,不存在或已过期时新建
// 网页会话ID一定是uuid,其他格式(例如Telegram的 tg:<chatID>)一律新建
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *browse.Session
		ok := false
		if id, err := c.Cookie(SessionCookie); err == nil && isWebSessionID(id) {
			sess, ok = store.Get(id)
		}
		if !ok {
			sess = store.Create()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID, 0, "/", "", false, true)
		}
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

func isWebSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
