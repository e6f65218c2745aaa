package inits

import (
	"fmt"
	"github.com/redis/go-redis/v9"
)

func Redis(conn string) (*redis.Client, error) {
	opt, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis connection string: %w", err)
	}

	return redis.NewClient(opt), nil
}
