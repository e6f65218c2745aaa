package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model

	Name string `gorm:"column:name;size:32"` // 分类名称

	// 连接模型时使用
	Posts []Post `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"` // 删除分类时级联删除帖子
}
