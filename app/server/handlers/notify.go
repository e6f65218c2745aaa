package handlers

import (
	"bulletin-board/app/server/models"
	"context"
	"fmt"
)

// notifyCommentSaved 评论保存（新建或更新）后的同步通知。
// 发送失败会原样返回，调用方需要让触发这次保存的请求失败，而不是吞掉。
func (a *App) notifyCommentSaved(ctx context.Context, comment *models.Comment) error {
	if !comment.Accepted {
		// 未采纳：通知楼主有新评论
		var post models.Post
		if err := a.db.WithContext(ctx).Preload("Owner").First(&post, "id = ?", comment.PostID).Error; err != nil {
			return fmt.Errorf("load post for notification: %w", err)
		}

		return a.mail.Send(
			a.cfg.Mail.From,
			post.Owner.Email,
			fmt.Sprintf("%s you have new comment", post.Owner.Username),
			comment.Text,
		)
	}

	// 已采纳：通知评论人。直接用保存的这条评论定位，不按 owner 反查
	var owner models.User
	if err := a.db.WithContext(ctx).First(&owner, "id = ?", comment.OwnerID).Error; err != nil {
		return fmt.Errorf("load comment owner for notification: %w", err)
	}

	var post models.Post
	if err := a.db.WithContext(ctx).First(&post, "id = ?", comment.PostID).Error; err != nil {
		return fmt.Errorf("load post for notification: %w", err)
	}

	return a.mail.Send(
		a.cfg.Mail.From,
		owner.Email,
		fmt.Sprintf("%s your comment accepted", owner.Username),
		fmt.Sprintf("Your comment:%s to post: %s was accepted", comment.Text, post.Text),
	)
}
