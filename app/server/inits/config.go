package inits

import (
	"bulletin-board/app/server/config"
	"bulletin-board/app/server/constants"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func Config() (cfg *config.Config, err error) {
	cfg = &config.Config{}

	// 手动配置映射，如果这里有什么自动映射工具就好了， viper 好像处理这种基于环境变量的配置也不是很方便
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if uploadDir, exist := os.LookupEnv("UPLOAD_DIR"); !exist {
		cfg.System.UploadDir = "/data/bboard" // 默认存放目录
	} else {
		cfg.System.UploadDir = uploadDir
	}

	if pageSizeStr, exist := os.LookupEnv("PAGE_SIZE"); !exist {
		cfg.System.PageSize = constants.DefaultPageSize
	} else if pageSize, err := strconv.Atoi(pageSizeStr); err != nil || pageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE environment variable invalid: %s", pageSizeStr)
	} else {
		cfg.System.PageSize = pageSize
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if smtpHost, exist := os.LookupEnv("SMTP_HOST"); !exist {
		return nil, fmt.Errorf("SMTP_HOST environment variable not set")
	} else {
		cfg.Mail.SMTPHost = smtpHost
	}

	if smtpPortStr, exist := os.LookupEnv("SMTP_PORT"); !exist {
		cfg.Mail.SMTPPort = 587 // 默认提交端口
	} else if smtpPort, err := strconv.Atoi(smtpPortStr); err != nil {
		return nil, fmt.Errorf("SMTP_PORT environment variable invalid: %s", smtpPortStr)
	} else {
		cfg.Mail.SMTPPort = smtpPort
	}

	// 用户名密码允许为空（本地调试的 SMTP 服务不需要认证）
	cfg.Mail.Username = os.Getenv("SMTP_USERNAME")
	cfg.Mail.Password = os.Getenv("SMTP_PASSWORD")

	if from, exist := os.LookupEnv("DEFAULT_FROM_EMAIL"); !exist {
		return nil, fmt.Errorf("DEFAULT_FROM_EMAIL environment variable not set")
	} else {
		cfg.Mail.From = from
	}

	return cfg, nil
}
