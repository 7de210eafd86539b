package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient connects a client to an in-process miniredis through
// the same URL parsing the real boot path uses.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	opts, err := redislib.ParseURL("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("failed to parse miniredis URL: %v", err)
	}

	return redislib.NewClient(opts), mr
}
