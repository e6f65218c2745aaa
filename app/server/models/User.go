package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一
	Email    string `gorm:"column:email;uniqueIndex"`    // 邮箱，全局唯一，作为登录凭据
	IsActive bool   `gorm:"column:is_active;default:true"`
	IsStaff  bool   `gorm:"column:is_staff"` // 是否为管理人员：可以越过所有权限制进行写入

	// 登录与授权认证相关
	Password string `gorm:"column:password"` // 密码，使用 argon2id 储存；为空表示不可登录的账号
}
