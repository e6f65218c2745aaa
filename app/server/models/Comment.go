package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model

	Text     string `gorm:"column:text;size:5000"` // 评论内容
	Accepted bool   `gorm:"column:accepted"`       // 是否已被楼主采纳，默认 false

	// 归属信息
	OwnerID uint `gorm:"column:owner_id;index"` // 评论人 ID
	PostID  uint `gorm:"column:post_id;index"`  // 所属帖子 ID

	// 连接模型时使用
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"` // 评论人
	Post  Post `gorm:"foreignKey:PostID"`                              // 所属帖子
}
