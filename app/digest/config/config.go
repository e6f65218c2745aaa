package config

import "time"

type Config struct {
	// 基础配置
	IsProd bool

	// 数据库配置
	DBConnectionString string

	// 摘要配置
	DigestWindow time.Duration // 收录最近多长时间内的帖子

	// 邮件配置
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
}
