/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 10:03:51
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 20:12:36
 * @FilePath: \go-parkfeed\render\redis_board.go
 * @Description: Redis 看板 - 将展示内容镜像到 Redis 供副屏读取
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package render

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisKeyPrefix 默认 key 前缀
	DefaultRedisKeyPrefix = "parkfeed:display:"
	// DefaultRedisWriteTimeout 单次刷新超时
	DefaultRedisWriteTimeout = 2 * time.Second
)

// RedisBoardConfig Redis 看板配置
type RedisBoardConfig struct {
	KeyPrefix    string        // key 前缀
	TTL          time.Duration // 过期时间，0 表示不过期
	WriteTimeout time.Duration // 单次刷新超时
}

// RedisBoard 将最新展示内容写入 Redis
// 渲染调用只更新内存并唤醒后台写协程，不在事件串行区内做网络 IO
// 写协程只刷新最新状态，中间状态会被合并
type RedisBoard struct {
	client       *redis.Client
	logger       logger.ILogger
	keyPrefix    string
	ttl          time.Duration
	writeTimeout time.Duration

	mu       sync.Mutex
	totals   Totals
	detected []models.SlotID

	flush  chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisBoard 创建 Redis 看板并启动写协程
// 参数:
//   - client: Redis 客户端 (github.com/redis/go-redis/v9)
//   - config: 看板配置，可为 nil
//   - log: 日志器，写入失败只记录不传播
func NewRedisBoard(client *redis.Client, config *RedisBoardConfig, log logger.ILogger) *RedisBoard {
	if config == nil {
		config = &RedisBoardConfig{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &RedisBoard{
		client:       client,
		logger:       log,
		keyPrefix:    mathx.IF(config.KeyPrefix == "", DefaultRedisKeyPrefix, config.KeyPrefix),
		ttl:          config.TTL,
		writeTimeout: mathx.IF(config.WriteTimeout <= 0, DefaultRedisWriteTimeout, config.WriteTimeout),
		detected:     []models.SlotID{},
		flush:        make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	syncx.Go(ctx).
		OnPanic(func(r any) {
			b.logger.ErrorKV("Redis看板写协程崩溃", "panic", r)
		}).
		Exec(b.loop)

	return b
}

// GetTotalsKey 计数器 hash 的 key
func (b *RedisBoard) GetTotalsKey() string {
	return fmt.Sprintf("%stotals", b.keyPrefix)
}

// GetDetectedKey 车位列表的 key
func (b *RedisBoard) GetDetectedKey() string {
	return fmt.Sprintf("%sdetected", b.keyPrefix)
}

// SetTotals 更新计数器
func (b *RedisBoard) SetTotals(total, available, occupied int) {
	b.mu.Lock()
	b.totals = Totals{Total: total, Available: available, Occupied: occupied}
	b.mu.Unlock()
}

// SetDetectedList 更新车位列表并触发刷新
func (b *RedisBoard) SetDetectedList(ids []models.SlotID) {
	b.mu.Lock()
	b.detected = append(b.detected[:0:0], ids...)
	b.mu.Unlock()

	select {
	case b.flush <- struct{}{}:
	default:
	}
}

// Close 停止写协程
func (b *RedisBoard) Close() {
	b.cancel()
	<-b.done
}

func (b *RedisBoard) loop() {
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			return
		case <-b.flush:
			if err := b.Flush(b.ctx); err != nil {
				b.logger.ErrorKV("写入Redis看板失败", "key_prefix", b.keyPrefix, "error", err)
			}
		}
	}
}

// Flush 立即把当前展示内容写入 Redis
func (b *RedisBoard) Flush(ctx context.Context) error {
	b.mu.Lock()
	totals := b.totals
	detected := append([]models.SlotID(nil), b.detected...)
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, b.writeTimeout)
	defer cancel()

	totalsKey, detectedKey := b.GetTotalsKey(), b.GetDetectedKey()
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, totalsKey,
			"total", totals.Total,
			"available", totals.Available,
			"occupied", totals.Occupied,
			"updated_at", time.Now().Unix(),
		)
		pipe.Del(ctx, detectedKey)
		if len(detected) > 0 {
			values := make([]interface{}, 0, len(detected))
			for _, id := range detected {
				values = append(values, string(id))
			}
			pipe.RPush(ctx, detectedKey, values...)
		}
		if b.ttl > 0 {
			pipe.Expire(ctx, totalsKey, b.ttl)
			pipe.Expire(ctx, detectedKey, b.ttl)
		}
		return nil
	})
	if err != nil {
		return errorx.WrapError("failed to flush display state", err)
	}
	return nil
}

// Load 读取 Redis 中镜像的展示内容，供副屏使用
func (b *RedisBoard) Load(ctx context.Context) (BoardState, error) {
	values, err := b.client.HGetAll(ctx, b.GetTotalsKey()).Result()
	if err != nil {
		return BoardState{}, errorx.WrapError("failed to load totals", err)
	}
	ids, err := b.client.LRange(ctx, b.GetDetectedKey(), 0, -1).Result()
	if err != nil {
		return BoardState{}, errorx.WrapError("failed to load detected list", err)
	}

	state := BoardState{
		Totals: Totals{
			Total:     atoiOrZero(values["total"]),
			Available: atoiOrZero(values["available"]),
			Occupied:  atoiOrZero(values["occupied"]),
		},
		Detected: make([]models.SlotID, 0, len(ids)),
	}
	for _, id := range ids {
		state.Detected = append(state.Detected, models.SlotID(id))
	}
	return state, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
