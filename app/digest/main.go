package main

import (
	"bulletin-board/app/digest/handlers"
	"bulletin-board/app/digest/inits"
	serverinits "bulletin-board/app/server/inits"
	"bulletin-board/app/server/mailer"
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"log"
)

// 摘要任务是一次性进程，由外部的调度器（例如 cron ）每周拉起一次
func main() {
	// 本地开发时从 .env 读取环境变量
	_ = godotenv.Load()

	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志，和 server 共用同一套封装
	l, err := serverinits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化邮件发送
	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)

	// 执行摘要任务
	handlerApp := handlers.NewApp(l, db, mail, cfg)
	if err := handlerApp.Run(context.Background()); err != nil {
		l.Fatal("digest run failed", zap.Error(err))
	}
}
