package handlers

import (
	"bulletin-board/app/server/models"
	"bulletin-board/app/server/types"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
)

// 评论资源对外主要用于发评论，但照常提供完整的 CRUD ，策略统一为「已登录」。

func (a *App) CommentCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(commentPolicies, actor, actionCreate, 0) {
		return a.er(c, denyStatus(actor))
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.CommentCreateInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	// 检查 post id
	if err, statusCode := validateIDs[models.Post](a.db.WithContext(rctx), []uint{req.PostID}); err != nil {
		if statusCode == http.StatusBadRequest {
			return a.erFields(c, map[string]string{"post": "invalid post reference"})
		}
		a.l.Error("failed to validate post", zap.Error(err))
		return a.er(c, statusCode)
	}

	// 创建评论，评论人取自登录身份， accepted 初始为 false
	comment := models.Comment{
		Text:    req.Text,
		PostID:  req.PostID,
		OwnerID: actor.ID,
	}
	if err := a.db.WithContext(rctx).Create(&comment).Error; err != nil {
		a.l.Error("failed to create comment", zap.Any("comment", comment), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 通知楼主。邮件发不出去要让这次请求失败
	if err := a.notifyCommentSaved(rctx, &comment); err != nil {
		a.l.Error("failed to send comment notification", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusBadGateway)
	}

	return c.JSON(http.StatusCreated, types.CommentInfoFromModel(&comment))
}

func (a *App) CommentList(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(commentPolicies, actor, actionList, 0) {
		return a.er(c, denyStatus(actor))
	}

	rctx := c.Request().Context()

	var (
		comments      []models.Comment
		commentsCount int64
	)

	page, limit := a.parsePagination(c)

	if err := a.db.WithContext(rctx).
		Order("id ASC").
		Limit(limit).Offset(page * limit).
		Find(&comments).Error; err != nil {
		a.l.Error("failed to get comment list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Comment{}).Count(&commentsCount).Error; err != nil {
		a.l.Error("failed to count comment", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resComments := []types.CommentInfo{}
	for i := range comments {
		resComments = append(resComments, *types.CommentInfoFromModel(&comments[i]))
	}

	return c.JSON(http.StatusOK, &types.CommentListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(commentsCount, limit),
		List:    resComments,
	})
}

func (a *App) CommentGet(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(commentPolicies, actor, actionRetrieve, 0) {
		return a.er(c, denyStatus(actor))
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var comment models.Comment
	if err := a.db.WithContext(rctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get comment", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, types.CommentInfoFromModel(&comment))
}

func (a *App) CommentUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(commentPolicies, actor, actionFromMethod(c.Request().Method), 0) {
		return a.er(c, denyStatus(actor))
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.CommentCreateInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	// 检查 post id
	if err, statusCode := validateIDs[models.Post](a.db.WithContext(rctx), []uint{req.PostID}); err != nil {
		if statusCode == http.StatusBadRequest {
			return a.erFields(c, map[string]string{"post": "invalid post reference"})
		}
		a.l.Error("failed to validate post", zap.Error(err))
		return a.er(c, statusCode)
	}

	var comment models.Comment
	if err := a.db.WithContext(rctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get comment", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	comment.Text = req.Text
	comment.PostID = req.PostID

	if err := a.db.WithContext(rctx).Save(&comment).Error; err != nil {
		a.l.Error("failed to update comment", zap.Any("comment", comment), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 保存即通知
	if err := a.notifyCommentSaved(rctx, &comment); err != nil {
		a.l.Error("failed to send comment notification", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusBadGateway)
	}

	return c.JSON(http.StatusOK, types.CommentInfoFromModel(&comment))
}

func (a *App) CommentDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(commentPolicies, actor, actionDestroy, 0) {
		return a.er(c, denyStatus(actor))
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var comment models.Comment
	if err := a.db.WithContext(rctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get comment", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 删除评论
	if err := a.db.WithContext(rctx).Delete(&comment).Error; err != nil {
		a.l.Error("failed to delete comment", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
