/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 11:32:40
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 20:30:15
 * @FilePath: \go-parkfeed\render\redis_board_test.go
 * @Description: Redis 看板测试 - 需要 PARKFEED_TEST_REDIS_ADDR 指向可用 Redis
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package render

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试用 Redis 客户端，未配置地址时跳过
func getTestRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("PARKFEED_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PARKFEED_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err(), "Redis 连接失败，请检查配置")
	client.FlushDB(ctx)
	return client
}

func TestRedisBoardKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	board := NewRedisBoard(client, nil, logger.NewEmptyLogger())
	defer board.Close()
	assert.Equal(t, "parkfeed:display:totals", board.GetTotalsKey())
	assert.Equal(t, "parkfeed:display:detected", board.GetDetectedKey())

	custom := NewRedisBoard(client, &RedisBoardConfig{KeyPrefix: "lot-north:"}, logger.NewEmptyLogger())
	defer custom.Close()
	assert.Equal(t, "lot-north:totals", custom.GetTotalsKey())
}

func TestRedisBoardUnreachableDoesNotBlockRender(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer client.Close()

	board := NewRedisBoard(client, &RedisBoardConfig{WriteTimeout: 200 * time.Millisecond}, logger.NewEmptyLogger())
	defer board.Close()

	start := time.Now()
	Apply(board, models.OccupancySnapshot{TotalSlots: 2, Detected: []models.SlotID{"A"}})
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	err := board.Flush(context.Background())
	assert.Error(t, err)
}

func TestRedisBoardFlushAndLoad(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	board := NewRedisBoard(client, &RedisBoardConfig{KeyPrefix: "test:display:", TTL: time.Minute}, logger.NewEmptyLogger())
	defer board.Close()

	ctx := context.Background()
	Apply(board, models.OccupancySnapshot{TotalSlots: 5, AvailableSlots: 2, OccupiedSlots: 3, Detected: []models.SlotID{"A", "B"}})
	require.NoError(t, board.Flush(ctx))

	state, err := board.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{Total: 5, Available: 2, Occupied: 3}, state.Totals)
	assert.Equal(t, []models.SlotID{"A", "B"}, state.Detected)

	Apply(board, models.OccupancySnapshot{TotalSlots: 5, AvailableSlots: 5})
	require.NoError(t, board.Flush(ctx))

	state, err = board.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, state.Totals.Available)
	assert.Empty(t, state.Detected)
}
