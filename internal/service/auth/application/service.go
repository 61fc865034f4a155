// internal/service/auth/application/service.go
package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"artisan/internal/pkg/logger"
	"artisan/internal/service/auth/domain"
	"artisan/internal/service/auth/port"
)

const sessionTTL = 24 * time.Hour

// credential 是内置的演示账号。仓库里没有真实的用户后端，
// 登录校验只对这张固定表做比对。
type credential struct {
	email    string
	password string
	user     domain.User
}

var demoCredentials = []credential{
	{
		email:    "admin@artisan.dev",
		password: "admin123",
		user:     domain.User{ID: "u-admin", Name: "Store Admin", Email: "admin@artisan.dev", Role: domain.RoleAdmin},
	},
	{
		email:    "jane@example.com",
		password: "password123",
		user:     domain.User{ID: "u-1001", Name: "Jane Doe", Email: "jane@example.com", Role: domain.RoleCustomer},
	},
}

// Service 提供店面需要的鉴权能力：登录换取不透明令牌、
// 令牌反查用户、注销、角色判断。
type Service struct {
	sessions port.SessionStore
}

func NewService(sessions port.SessionStore) *Service {
	return &Service{sessions: sessions}
}

// Login 校验演示账号，成功时生成不透明令牌并写入会话存储。
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	for _, cred := range demoCredentials {
		if strings.EqualFold(cred.email, email) && cred.password == password {
			token := uuid.NewString()
			if err := s.sessions.Put(ctx, token, cred.user, sessionTTL); err != nil {
				return "", domain.User{}, err
			}
			logger.Ctx(ctx).Info().Str("user_id", cred.user.ID).Msg("user logged in")
			return token, cred.user, nil
		}
	}
	return "", domain.User{}, domain.ErrInvalidCredentials
}

// Logout 删除会话，令牌立即失效。令牌不存在也视为成功。
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser 用令牌反查用户记录。
func (s *Service) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	return s.sessions.Get(ctx, token)
}

func (s *Service) IsAuthenticated(ctx context.Context, token string) bool {
	_, err := s.sessions.Get(ctx, token)
	return err == nil
}

func (s *Service) IsAdmin(ctx context.Context, token string) bool {
	user, err := s.sessions.Get(ctx, token)
	return err == nil && user.IsAdmin()
}
