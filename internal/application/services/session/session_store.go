package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/pkg/logger"
)

// DefaultTTL 空闲会话的默认回收时间
const DefaultTTL = 30 * time.Minute

// Store 浏览会话表,Web 按 cookie、Telegram 按聊天ID 区分会话
type Store struct {
	ctx    context.Context
	source contracts.MovieSource
	theme  *browse.Theme
	opts   browse.Options
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*browse.Session
}

func NewStore(ctx context.Context, source contracts.MovieSource, theme *browse.Theme, opts browse.Options, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ctx:      ctx,
		source:   source,
		theme:    theme,
		opts:     opts,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*browse.Session),
	}
}

// Theme 所有会话共享的主题
func (s *Store) Theme() *browse.Theme {
	return s.theme
}

// Create 创建一个随机ID的新会话
func (s *Store) Create() *browse.Session {
	sess, _ := s.Open(uuid.NewString())
	return sess
}

// Get 查找会话,不存在时返回 false
func (s *Store) Get(id string) (*browse.Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		sess.Touch()
	}
	return sess, ok
}

// Open 返回指定ID的会话,不存在时创建;created 表示是否新建
func (s *Store) Open(id string) (sess *browse.Session, created bool) {
	if existing, ok := s.Get(id); ok {
		return existing, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing, false
	}

	sess = browse.NewSession(s.ctx, id, s.source, s.theme, s.opts)
	s.sessions[id] = sess
	logger.Debug("会话已创建", "session", id, "total", len(s.sessions))
	return sess, true
}

// Remove 关闭并移除会话
func (s *Store) Remove(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.Close()
	}
}

// Sweep 回收超过 TTL 未交互的会话,返回回收数量
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	var expired []*browse.Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
	if len(expired) > 0 {
		logger.Info("回收空闲会话", "evicted", len(expired), "remaining", remaining)
	}
	return len(expired)
}

// Len 当前会话数
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CloseAll 关闭所有会话,用于进程退出
func (s *Store) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*browse.Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
