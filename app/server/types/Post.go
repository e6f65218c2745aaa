package types

import (
	"bulletin-board/app/server/models"
	"time"
)

// PostCreateInput 发帖输入：不接受 owner 字段，发帖人在校验通过后由服务端注入
type PostCreateInput struct {
	Title      string `json:"title" form:"title" validate:"required,max=255"`
	Text       string `json:"text" form:"text" validate:"required,max=5000"`
	CategoryID uint   `json:"category" form:"category" validate:"required"`
}

// PostUpdateInput 更新输入：全部字段可选，未出现的字段保持原值
type PostUpdateInput struct {
	Title      *string `json:"title" form:"title" validate:"omitempty,max=255"`
	Text       *string `json:"text" form:"text" validate:"omitempty,max=5000"`
	CategoryID *uint   `json:"category" form:"category"`
}

// PostListItem 列表表示：owner 字段是发帖人的用户名而不是 ID
type PostListItem struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Upload   *string   `json:"upload"`
	Created  time.Time `json:"created"`
	Owner    string    `json:"owner"`
	Category uint      `json:"category"`
}

// PostDetail 详情表示：不含 owner ，分类和评论都完整展开
type PostDetail struct {
	ID       uint          `json:"id"`
	Title    string        `json:"title"`
	Text     string        `json:"text"`
	Upload   *string       `json:"upload"`
	Created  time.Time     `json:"created"`
	Category CategoryInfo  `json:"category"`
	Comments []CommentInfo `json:"comments"`
}

type PostListResponse struct {
	Limit   int            `json:"limit"`
	PageMax int64          `json:"page_max"`
	List    []PostListItem `json:"list"`
}

// PostListItemFromModel 需要调用方预加载 Owner
func PostListItemFromModel(post *models.Post) *PostListItem {
	return &PostListItem{
		ID:       post.ID,
		Title:    post.Title,
		Text:     post.Text,
		Upload:   post.Upload,
		Created:  post.CreatedAt,
		Owner:    post.Owner.Username,
		Category: post.CategoryID,
	}
}

// PostDetailFromModel 需要调用方预加载 Category 和 Comments
func PostDetailFromModel(post *models.Post) *PostDetail {
	comments := []CommentInfo{}
	for _, comment := range post.Comments {
		comments = append(comments, *CommentInfoFromModel(&comment))
	}

	return &PostDetail{
		ID:       post.ID,
		Title:    post.Title,
		Text:     post.Text,
		Upload:   post.Upload,
		Created:  post.CreatedAt,
		Category: *CategoryInfoFromModel(&post.Category),
		Comments: comments,
	}
}
