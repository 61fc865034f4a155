package domain

import "errors"

// Role 区分普通顾客和管理员。
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User 是面向前端的用户记录，令牌本身对调用方是不透明的。
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var (
	// ErrInvalidCredentials 表示邮箱或密码不对
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrSessionNotFound 表示令牌无效或会话已过期
	ErrSessionNotFound = errors.New("auth: session not found")
)
