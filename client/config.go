/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 09:01:12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 22:35:40
 * @FilePath: \go-parkfeed\client\config.go
 * @Description: Config 结构体
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"time"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// Config 占用推送客户端配置
// 默认是固定 5 秒间隔、无限次重连（看板常驻场景）
type Config struct {
	ReconnectDelay    time.Duration // 断开后到重连的延迟，也是退避下限
	MaxReconnectDelay time.Duration // 退避上限，不大于 ReconnectDelay 时为固定间隔
	BackoffFactor     float64       // 退避因子，<= 1 为固定间隔
	BackoffJitter     bool          // 是否抖动
	MaxRetries        int           // 最大连续重连次数，0 表示不限
	HandshakeTimeout  time.Duration // 握手超时
	ReadTimeout       time.Duration // 空闲读超时，0 表示不检测
	WriteTimeout      time.Duration // 写关闭帧超时
	MaxMessageSize    int64         // 最大消息长度
}

// DefaultConfig 创建默认配置
func DefaultConfig() *Config {
	return &Config{
		ReconnectDelay:    5 * time.Second,
		MaxReconnectDelay: 5 * time.Second,
		BackoffFactor:     1,
		MaxRetries:        0,
		HandshakeTimeout:  10 * time.Second,
		ReadTimeout:       0,
		WriteTimeout:      5 * time.Second,
		MaxMessageSize:    64 * 1024,
	}
}

// FromWSC 从 go-config 的 WSC 配置取重连和读写参数
// 注意 wscconfig.Default() 带指数退避，与看板默认的固定间隔不同
func FromWSC(c *wscconfig.WSC) *Config {
	cfg := DefaultConfig()
	if c == nil {
		return cfg
	}
	cfg.ReconnectDelay = mathx.IF(c.MinRecTime > 0, c.MinRecTime, cfg.ReconnectDelay)
	cfg.MaxReconnectDelay = mathx.IF(c.MaxRecTime > 0, c.MaxRecTime, cfg.ReconnectDelay)
	cfg.BackoffFactor = mathx.IF(c.RecFactor > 0, c.RecFactor, cfg.BackoffFactor)
	cfg.BackoffJitter = cfg.BackoffFactor > 1
	cfg.WriteTimeout = mathx.IF(c.WriteTimeout > 0, c.WriteTimeout, cfg.WriteTimeout)
	cfg.MaxMessageSize = mathx.IF(c.MaxMessageSize > 0, c.MaxMessageSize, cfg.MaxMessageSize)
	return cfg
}

// WithReconnectDelay 设置重连延迟并返回当前配置对象
func (c *Config) WithReconnectDelay(d time.Duration) *Config {
	c.ReconnectDelay = d
	return c
}

// WithMaxReconnectDelay 设置退避上限并返回当前配置对象
func (c *Config) WithMaxReconnectDelay(d time.Duration) *Config {
	c.MaxReconnectDelay = d
	return c
}

// WithBackoffFactor 设置退避因子并返回当前配置对象
func (c *Config) WithBackoffFactor(factor float64) *Config {
	c.BackoffFactor = factor
	return c
}

// WithBackoffJitter 设置是否抖动并返回当前配置对象
func (c *Config) WithBackoffJitter(jitter bool) *Config {
	c.BackoffJitter = jitter
	return c
}

// WithMaxRetries 设置最大重连次数并返回当前配置对象
func (c *Config) WithMaxRetries(n int) *Config {
	c.MaxRetries = n
	return c
}

// WithHandshakeTimeout 设置握手超时并返回当前配置对象
func (c *Config) WithHandshakeTimeout(d time.Duration) *Config {
	c.HandshakeTimeout = d
	return c
}

// WithReadTimeout 设置空闲读超时并返回当前配置对象
func (c *Config) WithReadTimeout(d time.Duration) *Config {
	c.ReadTimeout = d
	return c
}

// WithWriteTimeout 设置写超时并返回当前配置对象
func (c *Config) WithWriteTimeout(d time.Duration) *Config {
	c.WriteTimeout = d
	return c
}

// WithMaxMessageSize 设置最大消息长度并返回当前配置对象
func (c *Config) WithMaxMessageSize(size int64) *Config {
	c.MaxMessageSize = size
	return c
}
