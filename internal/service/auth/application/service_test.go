// internal/service/auth/application/service_test.go
package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan/internal/service/auth/domain"
	"artisan/internal/service/auth/infrastructure/adapter"
)

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	svc := NewService(adapter.NewMemorySessionStore())

	token, user, err := svc.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u-1001", user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	current, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user, current)
	assert.True(t, svc.IsAuthenticated(ctx, token))
	assert.False(t, svc.IsAdmin(ctx, token))
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(adapter.NewMemorySessionStore())

	_, user, err := svc.Login(ctx, "Admin@Artisan.DEV", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(adapter.NewMemorySessionStore())

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jane@example.com", "hunter2"},
		{"unknown user", "nobody@example.com", "password123"},
		{"empty credentials", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}

func TestAdminRole(t *testing.T) {
	ctx := context.Background()
	svc := NewService(adapter.NewMemorySessionStore())

	token, _, err := svc.Login(ctx, "admin@artisan.dev", "admin123")
	require.NoError(t, err)
	assert.True(t, svc.IsAdmin(ctx, token))
}

func TestLogoutInvalidatesToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(adapter.NewMemorySessionStore())

	token, _, err := svc.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	assert.False(t, svc.IsAuthenticated(ctx, token))
	_, err = svc.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// 重复注销也视为成功
	assert.NoError(t, svc.Logout(ctx, token))
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	sessions := adapter.NewMemorySessionStore()
	svc := NewService(sessions)

	token, _, err := svc.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, svc.IsAuthenticated(ctx, token))

	// 时钟拨到 TTL 之后，会话应该过期
	sessions.SetClock(func() time.Time { return time.Now().Add(25 * time.Hour) })
	assert.False(t, svc.IsAuthenticated(ctx, token))
	assert.False(t, svc.IsAdmin(ctx, token))
}
