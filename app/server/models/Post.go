package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model

	// 帖子基础信息
	Title  string  `gorm:"column:title;size:255"`  // 标题
	Text   string  `gorm:"column:text;size:5000"`  // 正文
	Upload *string `gorm:"column:upload;size:255"` // 附件路径，可以为空

	// 归属信息
	OwnerID    uint `gorm:"column:owner_id;index"`    // 发帖人 ID
	CategoryID uint `gorm:"column:category_id;index"` // 分类 ID

	// 连接模型时使用
	Owner    User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"` // 发帖人
	Category Category  `gorm:"foreignKey:CategoryID"`                          // 分类
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`  // 删除帖子时级联删除评论
}
