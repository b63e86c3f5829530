package mock

import (
	"context"
	"path"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis starts one miniredis server per process and returns a client for it.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisConn, redisServer = openRedisConn()
	})

	return redisConn
}

func openRedisConn() (*redis.Client, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: server.Addr(),
		},
	)

	return conn, server
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}

// RedisKeys lists the keys matching pattern on the shared server.
func RedisKeys(pattern string) []string {
	if redisServer == nil {
		return nil
	}
	keys := redisServer.Keys()
	matched := make([]string, 0, len(keys))
	for _, key := range keys {
		if ok, _ := path.Match(pattern, key); ok {
			matched = append(matched, key)
		}
	}
	return matched
}
