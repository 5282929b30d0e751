/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 14:08:19
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 21:40:02
 * @FilePath: \go-parkfeed\video\camera.go
 * @Description: 摄像头获取 - 单次尝试，失败只提示不重试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package video

import (
	"context"
	"sync"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// DefaultCameraNotice 摄像头不可用时给操作员的提示
const DefaultCameraNotice = "Unable to access camera. Please allow webcam permissions."

// Stream 已获取的视频流句柄
type Stream interface {
	// Name 设备或流的描述
	Name() string
	// Close 释放设备
	Close() error
}

// Source 视频源，只请求视频（不含音频）
type Source interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Surface 视频显示表面
type Surface interface {
	Bind(stream Stream) error
}

// Notifier 面向用户的提示
type Notifier interface {
	Notify(message string)
}

// NotifierFunc 函数适配器
type NotifierFunc func(message string)

// Notify 实现 Notifier
func (f NotifierFunc) Notify(message string) { f(message) }

// Camera 本地操作员的显示辅助，与占用推送互不影响
type Camera struct {
	source   Source
	surface  Surface
	notifier Notifier
	logger   logger.ILogger
	notice   string

	mu       sync.Mutex
	stream   Stream
	attempts int
}

// NewCamera 创建摄像头绑定器
func NewCamera(source Source, surface Surface, notifier Notifier, log logger.ILogger) *Camera {
	return &Camera{
		source:   source,
		surface:  surface,
		notifier: notifier,
		logger:   log,
		notice:   DefaultCameraNotice,
	}
}

// WithNotice 自定义失败提示文案
func (c *Camera) WithNotice(notice string) *Camera {
	c.notice = notice
	return c
}

// Start 异步获取摄像头，立即返回
func (c *Camera) Start(ctx context.Context) {
	syncx.Go(ctx).
		OnPanic(func(r any) {
			c.logger.ErrorKV("摄像头获取协程崩溃", "panic", r)
			c.notify()
		}).
		Exec(func() {
			_ = c.Acquire(ctx)
		})
}

// Acquire 同步获取摄像头并绑定到显示表面
// 每个 Camera 只尝试一次，再次调用直接返回上次结果对应的状态
// 失败时提示一次，返回的错误仅供调用方参考
func (c *Camera) Acquire(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempts > 0 {
		if c.stream == nil {
			return errorx.NewError(models.ErrTypeCameraNotFound, "acquisition already failed")
		}
		return nil
	}
	c.attempts++

	stream, err := c.source.Acquire(ctx)
	if err != nil {
		c.logger.ErrorKV("摄像头访问失败", "error", err)
		c.notify()
		return err
	}

	if err := c.surface.Bind(stream); err != nil {
		_ = stream.Close()
		c.logger.ErrorKV("摄像头绑定显示失败", "stream", stream.Name(), "error", err)
		c.notify()
		return errorx.NewError(models.ErrTypeCameraBind, err.Error())
	}

	c.stream = stream
	c.logger.InfoKV("摄像头已绑定", "stream", stream.Name())
	return nil
}

// Stream 当前绑定的流，未获取成功时为 nil
func (c *Camera) Stream() Stream {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream
}

// Release 释放已绑定的流
func (c *Camera) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return nil
	}
	err := c.stream.Close()
	c.stream = nil
	return err
}

func (c *Camera) notify() {
	if c.notifier != nil {
		c.notifier.Notify(c.notice)
	}
}
