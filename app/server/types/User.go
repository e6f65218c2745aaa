package types

import (
	"bulletin-board/app/server/models"
	"time"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginToken struct {
	Token    string `json:"token"`     // JWT ，一天内有效
	APIToken string `json:"api_token"` // 不透明 token ，保存在服务端，适合脚本类调用方
}

type UserInfo struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func UserInfoFromModel(user *models.User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
}
