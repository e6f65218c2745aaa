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

// 分类资源：读取放行所有人，写入只允许管理人员（对应后台管理面）。

func (a *App) CategoryList(c echo.Context) error {
	rctx := c.Request().Context()

	var categories []models.Category
	if err := a.db.WithContext(rctx).Order("id ASC").Find(&categories).Error; err != nil {
		a.l.Error("failed to get category list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resCategories := []types.CategoryInfo{}
	for i := range categories {
		resCategories = append(resCategories, *types.CategoryInfoFromModel(&categories[i]))
	}

	return c.JSON(http.StatusOK, resCategories)
}

func (a *App) CategoryGet(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get category", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, types.CategoryInfoFromModel(&category))
}

func (a *App) CategoryCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(categoryPolicies, actor, actionCreate, 0) {
		return a.er(c, denyStatus(actor))
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.CategoryInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	category := models.Category{Name: req.Name}
	if err := a.db.WithContext(rctx).Create(&category).Error; err != nil {
		a.l.Error("failed to create category", zap.Any("category", category), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, types.CategoryInfoFromModel(&category))
}

func (a *App) CategoryUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(categoryPolicies, actor, actionFromMethod(c.Request().Method), 0) {
		return a.er(c, denyStatus(actor))
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.CategoryInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if fields := a.validateInput(&req); fields != nil {
		return a.erFields(c, fields)
	}

	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get category", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	if err := a.db.WithContext(rctx).Model(&category).Update("name", req.Name).Error; err != nil {
		a.l.Error("failed to update category", zap.Any("category", category), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, types.CategoryInfoFromModel(&category))
}

func (a *App) CategoryDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	actor, err := a.actor(c)
	if err != nil {
		a.l.Error("failed to resolve actor", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if !allowed(categoryPolicies, actor, actionDestroy, 0) {
		return a.er(c, denyStatus(actor))
	}

	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get category", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 删除分类，帖子和帖子下的评论级联删除
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("category_id = ?", category.ID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&category).Error
	}); err != nil {
		a.l.Error("failed to delete category", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.invalidatePostListCache(rctx)

	return c.NoContent(http.StatusOK)
}
