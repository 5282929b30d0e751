/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 09:30:55
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 10:12:40
 * @FilePath: \go-parkfeed\client\logger.go
 * @Description: 日志器，基于 go-logger 与 go-config 的日志配置
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"time"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-logger"
)

const defaultLogPrefix = "[PARKFEED]"

// FeedLogger 直接使用 go-logger.ILogger
type FeedLogger = logger.ILogger

// NewDefaultLogger 创建默认配置的日志器
func NewDefaultLogger() FeedLogger {
	return logger.NewLogger().
		WithLevel(logger.INFO).
		WithPrefix(defaultLogPrefix).
		WithShowCaller(false).
		WithColorful(true).
		WithTimeFormat(time.DateTime)
}

// NewNoOpLogger 创建空日志实例
func NewNoOpLogger() FeedLogger {
	return logger.NewEmptyLogger()
}

// NewLogger 根据 go-config 的日志配置创建日志器，未启用时使用默认日志器
// 输出目标（控制台、文件、轮转文件）由 Logging.Output 决定
func NewLogger(config *wscconfig.WSC) FeedLogger {
	if config == nil || config.Logging == nil || !config.Logging.Enabled {
		return NewDefaultLogger()
	}

	l := config.Logging.ToLoggerInstance().WithLevel(ParseLogLevel(config.Logging.Level))
	if config.Logging.Prefix == "" {
		l.WithPrefix(defaultLogPrefix)
	}
	return l
}

// ParseLogLevel 解析日志级别字符串，无法识别时回落到 INFO
func ParseLogLevel(level string) logger.LogLevel {
	parsed, err := logger.ParseLevel(level)
	if err != nil {
		return logger.INFO
	}
	return parsed
}
