package interfaces

import (
	"context"
	"net/http"

	"artisan/internal/service/auth/application"
	"artisan/internal/service/auth/domain"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// Middleware 提供受保护路由用的鉴权包装。
type Middleware struct {
	service *application.Service
}

func NewMiddleware(service *application.Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth 要求请求携带有效令牌，通过后把用户记录放进请求上下文。
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		user, err := m.service.CurrentUser(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// RequireAdmin 在 RequireAuth 之上再要求管理员角色。
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}

// UserFromContext 取出 RequireAuth 放进上下文的用户记录。
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok
}
