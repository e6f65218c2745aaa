package handlers

import (
	"bulletin-board/app/server/constants"
	"bulletin-board/app/server/jwt"
	"bulletin-board/app/server/models"
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"strings"
)

// actor 解析调用方身份。没有 Authorization 头时返回 nil （匿名调用方），
// 头存在但凭据无效时返回错误。凭据可以是 JWT ，也可以是登录时签发的不透明 token 。
func (a *App) actor(c echo.Context) (*jwt.User, error) {
	// 提取 token
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 {
		return nil, fmt.Errorf("invalid auth header: %s", authHeader)
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return nil, fmt.Errorf("unknown auth method: %s", splits[0])
	}

	// 先按 JWT 解析
	if jwtUser, err := a.jwt.ParseUser(splits[1]); err == nil {
		return jwtUser, nil
	}

	// 再按不透明 token 查询
	return a.resolveAPIToken(c.Request().Context(), splits[1])
}

func (a *App) resolveAPIToken(ctx context.Context, token string) (*jwt.User, error) {
	idStr, err := a.rdb.Get(ctx, fmt.Sprintf(constants.CacheKeyAPIToken, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("unknown token")
		}
		return nil, fmt.Errorf("query token: %w", err)
	}

	idUint64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse token value: %w", err)
	}

	// token 是长期凭据，staff 状态需要以数据库为准
	var user models.User
	if err := a.db.WithContext(ctx).First(&user, "id = ?", uint(idUint64)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token user not found")
		}
		return nil, fmt.Errorf("query token user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("token user inactive")
	}

	return &jwt.User{
		ID:      user.ID,
		IsStaff: user.IsStaff,
	}, nil
}

// denyStatus 区分「未认证」和「已认证但没有权限」
func denyStatus(actor *jwt.User) int {
	if actor == nil {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}
