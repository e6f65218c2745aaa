package handlers

import (
	"bulletin-board/app/server/models"
	"bulletin-board/app/server/types"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"strings"
)

// 私有（审核）视图：楼主在这里看到自己帖子下的评论并翻转 accepted 。
// 单条操作的策略只要求登录，但对象查找始终限定在自己帖子的评论范围内，
// 范围之外的评论表现为不存在。

// privateScope 把查询限定在 actor 自己帖子的评论上
func (a *App) privateScope(db *gorm.DB, actorID uint) *gorm.DB {
	return db.
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.owner_id = ?", actorID)
}

func (a *App) privateFindComment(c echo.Context, actorID uint) (*models.Comment, error, int) {
	id, err := paramID(c)
	if err != nil {
		return nil, err, http.StatusBadRequest
	}

	rctx := c.Request().Context()

	var comment models.Comment
	if err := a.privateScope(a.db.WithContext(rctx).Model(&models.Comment{}), actorID).
		Where("comments.id = ?", id).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err, http.StatusNotFound
		}
		a.l.Error("failed to get comment", zap.Uint("id", id), zap.Error(err))
		return nil, err, http.StatusInternalServerError
	}

	return &comment, nil, http.StatusOK
}

func (a *App) PrivateList(c echo.Context) error {
	// 抓取 user 信息（认证）。列表需要知道调用方是谁才能圈定范围
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(privatePolicies, actor, actionList, 0) {
		return a.er(c, denyStatus(actor))
	}

	rctx := c.Request().Context()

	query := a.privateScope(a.db.WithContext(rctx).Model(&models.Comment{}), actor.ID)

	// post_id 过滤：精确匹配
	if postIDStr := c.QueryParam("post_id"); postIDStr != "" {
		postID, err := strconv.ParseUint(postIDStr, 10, 64)
		if err != nil {
			return a.erFields(c, map[string]string{"post_id": "enter a number"})
		}
		query = query.Where("comments.post_id = ?", uint(postID))
	}

	// category 过滤：逗号分隔的分类名集合，against 所属帖子的分类名做精确（区分大小写）的 in 匹配
	if categoryParam := c.QueryParam("category"); categoryParam != "" {
		names := strings.Split(categoryParam, ",")
		query = query.
			Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.name IN ?", names)
	}

	var (
		comments      []models.Comment
		commentsCount int64
	)

	page, limit := a.parsePagination(c)

	if err := query.Count(&commentsCount).Error; err != nil {
		a.l.Error("failed to count comment", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := query.
		Order("comments.id ASC").
		Limit(limit).Offset(page * limit).
		Find(&comments).Error; err != nil {
		a.l.Error("failed to get comment list", zap.Error(err))
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

func (a *App) PrivateGet(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(privatePolicies, actor, actionRetrieve, 0) {
		return a.er(c, denyStatus(actor))
	}

	comment, err, statusCode := a.privateFindComment(c, actor.ID)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 审核表示只暴露 accepted
	return c.JSON(http.StatusOK, &types.AcceptedInfo{Accepted: comment.Accepted})
}

func (a *App) PrivateUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(privatePolicies, actor, actionFromMethod(c.Request().Method), 0) {
		return a.er(c, denyStatus(actor))
	}

	comment, err, statusCode := a.privateFindComment(c, actor.ID)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体：只接受 accepted
	var req types.AcceptedInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	if err := a.db.WithContext(rctx).Model(comment).Update("accepted", *req.Accepted).Error; err != nil {
		a.l.Error("failed to update comment", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 保存即通知：采纳时通知评论人
	if err := a.notifyCommentSaved(rctx, comment); err != nil {
		a.l.Error("failed to send comment notification", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusBadGateway)
	}

	return c.JSON(http.StatusOK, &types.AcceptedInfo{Accepted: comment.Accepted})
}

func (a *App) PrivateDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(privatePolicies, actor, actionDestroy, 0) {
		return a.er(c, denyStatus(actor))
	}

	comment, err, statusCode := a.privateFindComment(c, actor.ID)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	if err := a.db.WithContext(rctx).Delete(comment).Error; err != nil {
		a.l.Error("failed to delete comment", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
