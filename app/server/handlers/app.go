package handlers

import (
	"bulletin-board/app/server/config"
	"bulletin-board/app/server/jwt"
	"bulletin-board/app/server/mailer"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"reflect"
	"strings"
)

type App struct {
	l        *zap.Logger         // 日志
	db       *gorm.DB            // 数据库
	rdb      *redis.Client       // Redis ，保存不透明 token 和列表缓存
	jwt      *jwt.JWT            // JWT ，用于无状态验证
	mail     mailer.Mailer       // 邮件发送
	validate *validator.Validate // 请求体校验
	cfg      *config.Config
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, mail mailer.Mailer, cfg *config.Config) *App {
	validate := validator.New()

	// 错误报告里使用 json 字段名而不是 Go 字段名
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &App{
		l:        l,
		db:       db,
		rdb:      rdb,
		jwt:      j,
		mail:     mail,
		validate: validate,
		cfg:      cfg,
	}
}
