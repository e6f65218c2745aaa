package constants

import "time"

const (
	AuthTokenDuration = 24 * time.Hour      // JWT 有效期：一天
	APITokenDuration  = 30 * 24 * time.Hour // 不透明 API token 的有效期
)
