package handlers

import "github.com/labstack/echo/v4"

// RegisterRoutes 是路由的组合根：所有资源在进程启动时集中绑定一次
func (a *App) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthcheck", a.HealthCheck)

	// 认证
	e.POST("/auth/register", a.AuthRegister)
	e.POST("/auth/login", a.AuthLogin)

	// 帖子
	e.GET("/posts", a.PostList)
	e.POST("/posts", a.PostCreate)
	e.GET("/posts/:id", a.PostGet)
	e.PUT("/posts/:id", a.PostUpdate)
	e.PATCH("/posts/:id", a.PostUpdate)
	e.DELETE("/posts/:id", a.PostDelete)

	// 评论（对外主要用于发评论）
	e.GET("/comment", a.CommentList)
	e.POST("/comment", a.CommentCreate)
	e.GET("/comment/:id", a.CommentGet)
	e.PUT("/comment/:id", a.CommentUpdate)
	e.PATCH("/comment/:id", a.CommentUpdate)
	e.DELETE("/comment/:id", a.CommentDelete)

	// 私有（审核）视图
	e.GET("/private", a.PrivateList)
	e.GET("/private/:id", a.PrivateGet)
	e.PUT("/private/:id", a.PrivateUpdate)
	e.PATCH("/private/:id", a.PrivateUpdate)
	e.DELETE("/private/:id", a.PrivateDelete)

	// 分类
	e.GET("/categories", a.CategoryList)
	e.POST("/categories", a.CategoryCreate)
	e.GET("/categories/:id", a.CategoryGet)
	e.PUT("/categories/:id", a.CategoryUpdate)
	e.PATCH("/categories/:id", a.CategoryUpdate)
	e.DELETE("/categories/:id", a.CategoryDelete)
}
