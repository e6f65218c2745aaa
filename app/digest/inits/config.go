package inits

import (
	"bulletin-board/app/digest/config"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.DBConnectionString = dbconn
	}

	if windowStr, exist := os.LookupEnv("DIGEST_WINDOW"); !exist {
		cfg.DigestWindow = 7 * 24 * time.Hour // 默认最近一周
	} else if window, err := time.ParseDuration(windowStr); err != nil {
		return nil, fmt.Errorf("DIGEST_WINDOW should be a valid duration")
	} else {
		cfg.DigestWindow = window
	}

	if smtpHost, exist := os.LookupEnv("SMTP_HOST"); !exist {
		return nil, fmt.Errorf("SMTP_HOST environment variable not set")
	} else {
		cfg.SMTPHost = smtpHost
	}

	if smtpPortStr, exist := os.LookupEnv("SMTP_PORT"); !exist {
		cfg.SMTPPort = 587 // 默认提交端口
	} else if smtpPort, err := strconv.Atoi(smtpPortStr); err != nil {
		return nil, fmt.Errorf("SMTP_PORT should be an integer")
	} else {
		cfg.SMTPPort = smtpPort
	}

	cfg.Username = os.Getenv("SMTP_USERNAME")
	cfg.Password = os.Getenv("SMTP_PASSWORD")

	if from, exist := os.LookupEnv("DEFAULT_FROM_EMAIL"); !exist {
		return nil, fmt.Errorf("DEFAULT_FROM_EMAIL environment variable not set")
	} else {
		cfg.From = from
	}

	return &cfg, nil
}
