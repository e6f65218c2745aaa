package handlers

import (
	"bulletin-board/app/server/constants"
	"bulletin-board/app/server/models"
	"bulletin-board/app/server/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

func paramID(c echo.Context) (uint, error) {
	idUint64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id: %w", err)
	}
	return uint(idUint64), nil
}

func actionFromMethod(method string) action {
	if method == http.MethodPatch {
		return actionPartialUpdate
	}
	return actionUpdate
}

func (a *App) postMapFields(req *types.PostUpdateInput, post *models.Post) {
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Text != nil {
		post.Text = *req.Text
	}
	if req.CategoryID != nil {
		post.CategoryID = *req.CategoryID
	}
}

func (a *App) invalidatePostListCache(ctx context.Context) {
	keys, err := a.rdb.Keys(ctx, constants.CacheKeyPostListPattern).Result()
	if err != nil {
		a.l.Error("failed to list post cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := a.rdb.Del(ctx, keys...).Err(); err != nil {
			a.l.Error("failed to drop post cache", zap.Error(err))
		}
	}
}

func (a *App) PostList(c echo.Context) error {
	// 列表读取不做认证，匿名也放行
	rctx := c.Request().Context()

	page, limit := a.parsePagination(c)

	// 检查是否有缓存结果
	cacheKey := fmt.Sprintf(constants.CacheKeyPostList, page, limit)
	if data, err := a.rdb.Get(rctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to check post list cache", zap.Error(err))
		}
	} else {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
	}

	var (
		posts      []models.Post
		postsCount int64
	)

	if err := a.db.WithContext(rctx).
		Preload("Owner").
		Order("id ASC").
		Limit(limit).Offset(page * limit).
		Find(&posts).Error; err != nil {
		a.l.Error("failed to get post list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Post{}).Count(&postsCount).Error; err != nil {
		a.l.Error("failed to count post", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resPosts := []types.PostListItem{}
	for i := range posts {
		resPosts = append(resPosts, *types.PostListItemFromModel(&posts[i]))
	}

	res := &types.PostListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(postsCount, limit),
		List:    resPosts,
	}

	// 加入缓存，方便下一次查询
	if resBytes, err := json.Marshal(res); err != nil {
		a.l.Error("failed to marshal post list", zap.Error(err))
	} else {
		a.rdb.Set(rctx, cacheKey, resBytes, constants.CacheExpirePostList)
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) PostGet(c echo.Context) error {
	// 详情读取不做认证，匿名也放行
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 详情表示：展开分类和全部评论，不含 owner
	var post models.Post
	if err := a.db.WithContext(rctx).
		Preload("Category").
		Preload("Comments").
		First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, types.PostDetailFromModel(&post))
}

func (a *App) PostCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(postPolicies, actor, actionCreate, 0) {
		return a.er(c, denyStatus(actor))
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.PostCreateInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 先校验，通过后再注入发帖人
	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	// 检查 category id
	if err, statusCode := validateIDs[models.Category](a.db.WithContext(rctx), []uint{req.CategoryID}); err != nil {
		if statusCode == http.StatusBadRequest {
			return a.erFields(c, map[string]string{"category": "invalid category reference"})
		}
		a.l.Error("failed to validate category", zap.Error(err))
		return a.er(c, statusCode)
	}

	// 保存附件（如果有）
	upload, err := a.saveUpload(c)
	if err != nil {
		a.l.Error("failed to save upload", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 创建帖子，发帖人取自登录身份
	post := models.Post{
		Title:      req.Title,
		Text:       req.Text,
		Upload:     upload,
		CategoryID: req.CategoryID,
		OwnerID:    actor.ID,
	}
	if err := a.db.WithContext(rctx).Create(&post).Error; err != nil {
		a.l.Error("failed to create post", zap.Any("post", post), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.invalidatePostListCache(rctx)

	// 列表表示需要发帖人用户名
	if err := a.db.WithContext(rctx).Preload("Owner").First(&post, "id = ?", post.ID).Error; err != nil {
		a.l.Error("failed to reload post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, types.PostListItemFromModel(&post))
}

func (a *App) PostUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的帖子
	var post models.Post
	if err := a.db.WithContext(rctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 写操作要求所有者或管理人员
	if !allowed(postPolicies, actor, actionFromMethod(c.Request().Method), post.OwnerID) {
		return a.er(c, denyStatus(actor))
	}

	// 绑定请求体
	var req types.PostUpdateInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	// 检查 category id
	if req.CategoryID != nil {
		if err, statusCode := validateIDs[models.Category](a.db.WithContext(rctx), []uint{*req.CategoryID}); err != nil {
			if statusCode == http.StatusBadRequest {
				return a.erFields(c, map[string]string{"category": "invalid category reference"})
			}
			a.l.Error("failed to validate category", zap.Error(err))
			return a.er(c, statusCode)
		}
	}

	a.postMapFields(&req, &post)

	// 更换附件（如果有）
	if upload, err := a.saveUpload(c); err != nil {
		a.l.Error("failed to save upload", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	} else if upload != nil {
		post.Upload = upload
	}

	// 更新帖子信息
	if err := a.db.WithContext(rctx).Save(&post).Error; err != nil {
		a.l.Error("failed to update post", zap.Any("post", post), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.invalidatePostListCache(rctx)

	if err := a.db.WithContext(rctx).Preload("Owner").First(&post, "id = ?", post.ID).Error; err != nil {
		a.l.Error("failed to reload post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, types.PostListItemFromModel(&post))
}

func (a *App) PostDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var post models.Post
	if err := a.db.WithContext(rctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	if !allowed(postPolicies, actor, actionDestroy, post.OwnerID) {
		return a.er(c, denyStatus(actor))
	}

	// 删除帖子，评论级联删除
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	}); err != nil {
		a.l.Error("failed to delete post", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.invalidatePostListCache(rctx)

	return c.NoContent(http.StatusOK)
}
