//go:build integration

// Package testutil provides helpers for integration tests that need a live
// Redis instance standing in for a SONiC state DB.
package testutil

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// stateDBNum matches the SONiC STATE_DB database number.
const stateDBNum = 6

// RedisAddr returns the address of the test Redis instance and skips the
// test when none is reachable. Point NETVALID_TEST_REDIS_ADDR at a running
// instance, e.g. a local "docker run -p 6379:6379 redis".
func RedisAddr(t *testing.T) string {
	t.Helper()

	addr := os.Getenv("NETVALID_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Skipf("test Redis not reachable at %s: %v", addr, err)
	}
	conn.Close()
	return addr
}

// RedisHost returns the host part of the test Redis address.
func RedisHost(t *testing.T) string {
	t.Helper()
	host, _, err := net.SplitHostPort(RedisAddr(t))
	if err != nil {
		t.Fatalf("bad redis address: %v", err)
	}
	return host
}

// RedisPort returns the port part of the test Redis address.
func RedisPort(t *testing.T) int {
	t.Helper()
	_, portStr, err := net.SplitHostPort(RedisAddr(t))
	if err != nil {
		t.Fatalf("bad redis address: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("bad redis port: %v", err)
	}
	return port
}

// SeedStateDB flushes the state DB and loads the given tables into it.
// Each entry becomes a hash at key "TABLE|key", the layout SONiC uses.
// The DB is flushed again when the test finishes.
func SeedStateDB(t *testing.T, addr string, tables map[string]map[string]map[string]string) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: addr, DB: stateDBNum})
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	ctx := context.Background()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flushing state DB: %v", err)
	}

	for table, entries := range tables {
		for key, fields := range entries {
			args := make([]interface{}, 0, len(fields)*2)
			for k, v := range fields {
				args = append(args, k, v)
			}
			if err := client.HSet(ctx, table+"|"+key, args...).Err(); err != nil {
				t.Fatalf("seeding %s|%s: %v", table, key, err)
			}
		}
	}
}
