package adapter

import (
	"context"
	"sync"
	"time"

	"artisan/internal/service/auth/domain"
	"artisan/internal/service/auth/port"
)

type sessionEntry struct {
	user      domain.User
	expiresAt time.Time
}

// MemorySessionStore 是进程内会话存储，测试和无 Redis 的本地模式用。
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Put(_ context.Context, token string, user domain.User, ttl time.Duration) error {
	s.mu.Lock()
	s.sessions[token] = sessionEntry{user: user, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, token string) (domain.User, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return domain.User{}, domain.ErrSessionNotFound
	}
	return entry.user, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// SetClock 允许测试注入时钟来覆盖过期逻辑。
func (s *MemorySessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

var _ port.SessionStore = (*MemorySessionStore)(nil)
