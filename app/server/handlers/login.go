package handlers

import (
	"bulletin-board/app/server/constants"
	"bulletin-board/app/server/jwt"
	"bulletin-board/app/server/models"
	"bulletin-board/app/server/types"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"time"
)

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.RegisterInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 校验（缺用户名和缺邮箱会给出各自的字段错误）
	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	// 唯一性检查，冲突在落库之前拒绝
	conflicts := map[string]string{}
	var counter int64
	if err := a.db.WithContext(rctx).Model(&models.User{}).Where("username = ?", req.Username).Count(&counter).Error; err != nil {
		a.l.Error("failed to count username", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if counter > 0 {
		conflicts["username"] = "a user with that username already exists"
	}
	if err := a.db.WithContext(rctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&counter).Error; err != nil {
		a.l.Error("failed to count email", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if counter > 0 {
		conflicts["email"] = "a user with that email already exists"
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusConflict, &types.ErrorMessage{
			Message: http.StatusText(http.StatusConflict),
			Fields:  conflicts,
		})
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建用户
	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		IsActive: true,
		Password: passwordHash,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, types.UserInfoFromModel(&user))
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	// 邮箱是登录标识
	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnauthorized)
		} else {
			a.l.Error("failed to find user", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	if !user.IsActive {
		return a.er(c, http.StatusUnauthorized)
	}

	// 提取密码 hash 并进行校验。没有密码的账号无法通过这里的比对
	if match, _, err := argon2id.CheckHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	} else if !match {
		// 密码不一致
		return a.er(c, http.StatusUnauthorized)
	}

	// 签出 JWT
	expires := time.Now().Add(constants.AuthTokenDuration)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		IsStaff: user.IsStaff,
		Expires: expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出不透明 token ，存进 redis
	apiToken := uuid.NewString()
	if err := a.rdb.Set(rctx,
		fmt.Sprintf(constants.CacheKeyAPIToken, apiToken),
		fmt.Sprintf("%d", user.ID),
		constants.APITokenDuration,
	).Err(); err != nil {
		a.l.Error("failed to store api token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		Token:    token,
		APIToken: apiToken,
	})
}
