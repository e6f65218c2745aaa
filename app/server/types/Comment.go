package types

import (
	"bulletin-board/app/server/models"
	"time"
)

// CommentCreateInput 只接受内容和帖子引用，评论人由服务端从登录身份注入
type CommentCreateInput struct {
	Text   string `json:"text" validate:"required,max=5000"`
	PostID uint   `json:"post" validate:"required"`
}

// AcceptedInput 采纳视图的输入：只允许改动 accepted 一个字段
type AcceptedInput struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

// CommentInfo 评论的完整表示，包括原始的评论人和帖子 ID
type CommentInfo struct {
	ID       uint      `json:"id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
	Accepted bool      `json:"accepted"`
	Owner    uint      `json:"owner"`
	Post     uint      `json:"post"`
}

type AcceptedInfo struct {
	Accepted bool `json:"accepted"`
}

type CommentListResponse struct {
	Limit   int           `json:"limit"`
	PageMax int64         `json:"page_max"`
	List    []CommentInfo `json:"list"`
}

func CommentInfoFromModel(comment *models.Comment) *CommentInfo {
	return &CommentInfo{
		ID:       comment.ID,
		Text:     comment.Text,
		Created:  comment.CreatedAt,
		Accepted: comment.Accepted,
		Owner:    comment.OwnerID,
		Post:     comment.PostID,
	}
}
