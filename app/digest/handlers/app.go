package handlers

import (
	"bulletin-board/app/digest/config"
	"bulletin-board/app/server/mailer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l    *zap.Logger    // 日志
	db   *gorm.DB       // 数据库
	mail mailer.Mailer  // 邮件发送
	cfg  *config.Config // 配置
}

func NewApp(l *zap.Logger, db *gorm.DB, mail mailer.Mailer, cfg *config.Config) *App {
	return &App{
		l:    l,
		db:   db,
		mail: mail,
		cfg:  cfg,
	}
}
