package constants

import "time"

const (
	CacheKeyAPIToken        = "bb:apitoken:%s" // %s -> token uuid ，值为用户 ID
	CacheKeyPostList        = "bb:posts:%d:%d" // %d:%d -> page:limit
	CacheKeyPostListPattern = "bb:posts:*"     // 帖子有变动时按这个模式清掉列表缓存
)

const (
	CacheExpirePostList = 1 * time.Minute
)
