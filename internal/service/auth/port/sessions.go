package port

import (
	"context"
	"time"

	"artisan/internal/service/auth/domain"
)

// SessionStore 是会话的出站端口：令牌到用户记录的带过期映射。
type SessionStore interface {
	Put(ctx context.Context, token string, user domain.User, ttl time.Duration) error
	Get(ctx context.Context, token string) (domain.User, error)
	Delete(ctx context.Context, token string) error
}
