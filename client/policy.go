/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 11:40:37
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 23:01:26
 * @FilePath: \go-parkfeed\client\policy.go
 * @Description: 重连策略
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"time"

	"github.com/jpillora/backoff"
)

// RetryPolicy 重连策略
// 默认固定间隔、不限次数；可选指数退避和次数上限
type RetryPolicy struct {
	backoff    *backoff.Backoff
	maxRetries int
}

// NewRetryPolicy 根据配置创建重连策略
func NewRetryPolicy(cfg *Config) *RetryPolicy {
	minDelay := cfg.ReconnectDelay
	if minDelay <= 0 {
		minDelay = DefaultConfig().ReconnectDelay
	}
	maxDelay := cfg.MaxReconnectDelay
	factor := cfg.BackoffFactor
	// 因子不大于 1 时 Min == Max，backoff 固定返回该值
	if factor <= 1 || maxDelay < minDelay {
		maxDelay = minDelay
		factor = 1
	}
	return &RetryPolicy{
		backoff: &backoff.Backoff{
			Min:    minDelay,
			Max:    maxDelay,
			Factor: factor,
			Jitter: cfg.BackoffJitter && factor > 1,
		},
		maxRetries: cfg.MaxRetries,
	}
}

// Next 第 attempt 次重连（从 1 开始）的延迟，超过上限时返回 false
func (p *RetryPolicy) Next(attempt int) (time.Duration, bool) {
	if p.maxRetries > 0 && attempt > p.maxRetries {
		return 0, false
	}
	if attempt < 1 {
		attempt = 1
	}
	return p.backoff.ForAttempt(float64(attempt - 1)), true
}

// Constant 是否为固定间隔
func (p *RetryPolicy) Constant() bool {
	return p.backoff.Min == p.backoff.Max
}
