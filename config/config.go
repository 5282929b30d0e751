/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 17:11:48
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 11:02:30
 * @FilePath: \go-parkfeed\config\config.go
 * @Description: 看板程序配置文件
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package config

import (
	"os"
	"time"

	"github.com/kamalyes/go-parkfeed/client"
	"github.com/kamalyes/go-parkfeed/render"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"gopkg.in/yaml.v3"
)

// Config 看板程序整体配置
type Config struct {
	PageURL            string          `yaml:"page_url"`             // 看板页面地址，推送地址由它推导
	Endpoint           string          `yaml:"endpoint"`             // 直接指定推送地址，优先于 page_url
	ReadTimeoutSeconds int             `yaml:"read_timeout_seconds"` // 空闲读超时
	Camera             CameraConfig    `yaml:"camera"`
	Reconnect          ReconnectConfig `yaml:"reconnect"`
	Log                LogConfig       `yaml:"log"`
	Redis              RedisConfig     `yaml:"redis"`
}

// CameraConfig 摄像头配置
type CameraConfig struct {
	Enabled bool   `yaml:"enabled"`
	Device  string `yaml:"device"`
}

// ReconnectConfig 重连配置，默认固定 5 秒不限次数
type ReconnectConfig struct {
	DelayMS    int     `yaml:"delay_ms"`
	MaxDelayMS int     `yaml:"max_delay_ms"`
	Factor     float64 `yaml:"factor"`
	Jitter     bool    `yaml:"jitter"`
	MaxRetries int     `yaml:"max_retries"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
}

// RedisConfig 副屏镜像配置
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	KeyPrefix  string `yaml:"key_prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Load 读取配置文件并补齐默认值
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorx.WrapError("failed to open config "+path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errorx.WrapError("failed to decode config "+path, err)
	}
	cfg.applyDefaults()

	if cfg.Endpoint == "" && cfg.PageURL == "" {
		return nil, errorx.NewError(ErrTypeNoEndpoint, path)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := client.DefaultConfig()
	if c.Reconnect.DelayMS <= 0 {
		c.Reconnect.DelayMS = int(def.ReconnectDelay / time.Millisecond)
	}
	if c.Reconnect.MaxDelayMS <= 0 {
		c.Reconnect.MaxDelayMS = c.Reconnect.DelayMS
	}
	if c.Reconnect.Factor <= 0 {
		c.Reconnect.Factor = def.BackoffFactor
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = render.DefaultRedisKeyPrefix
	}
}

// ResolveEndpoint 推送地址
func (c *Config) ResolveEndpoint() (string, error) {
	if c.Endpoint != "" {
		return c.Endpoint, nil
	}
	return client.EndpointFromPage(c.PageURL)
}

// ClientConfig 转换为推送客户端配置
func (c *Config) ClientConfig() *client.Config {
	return client.DefaultConfig().
		WithReconnectDelay(time.Duration(c.Reconnect.DelayMS) * time.Millisecond).
		WithMaxReconnectDelay(time.Duration(c.Reconnect.MaxDelayMS) * time.Millisecond).
		WithBackoffFactor(c.Reconnect.Factor).
		WithBackoffJitter(c.Reconnect.Jitter).
		WithMaxRetries(c.Reconnect.MaxRetries).
		WithReadTimeout(time.Duration(c.ReadTimeoutSeconds) * time.Second)
}

// RedisBoardConfig 转换为 Redis 看板配置
func (c *Config) RedisBoardConfig() *render.RedisBoardConfig {
	return &render.RedisBoardConfig{
		KeyPrefix: c.Redis.KeyPrefix,
		TTL:       time.Duration(c.Redis.TTLSeconds) * time.Second,
	}
}
