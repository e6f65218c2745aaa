package handlers

import (
	"bulletin-board/app/server/models"
	"bytes"
	"context"
	"embed"
	"fmt"
	"go.uber.org/zap"
	"html/template"
	"time"
)

//go:embed weekly_email.html
var templateFS embed.FS

var weeklyTemplate = template.Must(template.ParseFS(templateFS, "weekly_email.html"))

type digestData struct {
	User  *models.User
	Posts []models.Post
}

// Run 给所有用户各发一封摘要邮件，列出窗口期内的新帖子。
// 单个收件人失败不会中断后面的发送；全部失败时返回错误。
func (a *App) Run(ctx context.Context) error {
	now := time.Now()

	// 拉取窗口期内的帖子
	var posts []models.Post
	if err := a.db.WithContext(ctx).
		Preload("Owner").
		Preload("Category").
		Where("created_at BETWEEN ? AND ?", now.Add(-a.cfg.DigestWindow), now).
		Order("id ASC").
		Find(&posts).Error; err != nil {
		return fmt.Errorf("failed to get post list: %w", err)
	}

	// 拉取全部用户，无论有没有发过帖都要收到摘要
	var users []models.User
	if err := a.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return fmt.Errorf("failed to get user list: %w", err)
	}

	failed := 0
	for i := range users {
		if err := a.sendDigest(&users[i], posts); err != nil {
			a.l.Error("failed to send digest",
				zap.String("email", users[i].Email),
				zap.Error(err),
			)
			failed++
		}
	}

	a.l.Info("digest finished",
		zap.Int("users", len(users)),
		zap.Int("posts", len(posts)),
		zap.Int("failed", failed),
	)

	if len(users) > 0 && failed == len(users) {
		return fmt.Errorf("all %d digest sends failed", failed)
	}

	return nil
}

func (a *App) sendDigest(user *models.User, posts []models.Post) error {
	// 渲染模板
	var buf bytes.Buffer
	if err := weeklyTemplate.Execute(&buf, &digestData{
		User:  user,
		Posts: posts,
	}); err != nil {
		return fmt.Errorf("render digest template: %w", err)
	}

	return a.mail.SendHTML(
		a.cfg.From,
		user.Email,
		fmt.Sprintf("[Bulletin Board]%s take a look on a new posts", user.Username),
		buf.String(),
	)
}
