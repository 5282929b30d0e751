/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 14:02:19
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 09:30:27
 * @FilePath: \go-parkfeed\client\connection.go
 * @Description: 连接管理与重连状态机
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-parkfeed/protocol"
	"github.com/kamalyes/go-parkfeed/render"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// Start 发起连接，立即返回
// ctx 取消等同于 Close
func (c *FeedClient) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return models.ErrClientClosed
	}
	if c.started {
		c.mu.Unlock()
		return models.ErrAlreadyStarted
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	attempt, err := c.beginConnecting()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	go func() {
		<-c.ctx.Done()
		_ = c.Close()
	}()
	go c.dial(attempt)
	return nil
}

// dialAttempt 一次连接尝试：代数与发起时的配置快照
// 连接过程中不再读 c.Config，SetConfig 只影响下一次尝试
type dialAttempt struct {
	gen    uint64
	ctx    context.Context
	config Config
}

// beginConnecting 进入连接中状态并分配新的连接代数，调用方持锁
func (c *FeedClient) beginConnecting() (dialAttempt, error) {
	if err := c.stateMachine.TransitionTo(ConnectionStatusConnecting); err != nil {
		return dialAttempt{}, errorx.NewError(models.ErrTypeInvalidTransition, ConnectionStatusConnecting.String())
	}
	c.generation++
	c.logger.InfoKV("正在连接检测服务", "url", c.url, "retry_count", c.retryCount.Load())
	return dialAttempt{gen: c.generation, ctx: c.ctx, config: *c.Config}, nil
}

// dial 建立连接，失败按关闭处理
func (c *FeedClient) dial(attempt dialAttempt) {
	gen := attempt.gen
	ctx, cancel := context.WithTimeout(attempt.ctx, attempt.config.HandshakeTimeout)
	conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
	cancel()
	if err != nil {
		c.handleError(gen, err)
		c.handleClose(gen, err)
		return
	}

	if !c.handleOpen(gen, conn, attempt.config.MaxMessageSize) {
		_ = conn.Close()
		return
	}
	c.readMessages(gen, conn, attempt.config.ReadTimeout)
}

// handleOpen 连接成功：进入 open，重连次数归零
func (c *FeedClient) handleOpen(gen uint64, conn *websocket.Conn, readLimit int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		return false
	}
	if err := c.stateMachine.TransitionTo(ConnectionStatusOpen); err != nil {
		c.logger.ErrorKV("连接状态转换失败", "to", ConnectionStatusOpen, "error", err)
		return false
	}

	c.conn = conn
	c.retryCount.Store(0)
	conn.SetReadLimit(readLimit)

	c.logger.InfoKV("已连接检测服务", "url", c.url)
	if f := c.onOpen.Load(); f != nil {
		f.(func())()
	}
	return true
}

// setupHandlers 收到 ping 时刷新读超时
func setupHandlers(conn *websocket.Conn, readTimeout time.Duration) {
	defaultPingHandler := conn.PingHandler()
	conn.SetPingHandler(func(appData string) error {
		refreshReadDeadline(conn, readTimeout)
		return defaultPingHandler(appData)
	})
}

func refreshReadDeadline(conn *websocket.Conn, readTimeout time.Duration) {
	if readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	}
}

// readMessages 读循环，读失败即连接关闭
func (c *FeedClient) readMessages(gen uint64, conn *websocket.Conn, readTimeout time.Duration) {
	setupHandlers(conn, readTimeout)
	for {
		refreshReadDeadline(conn, readTimeout)
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !IsNormalClose(err) {
				c.handleError(gen, err)
			}
			c.handleClose(gen, err)
			return
		}
		c.handleMessage(gen, message)
	}
}

// handleMessage 解码并分发一帧，解码失败不影响连接
func (c *FeedClient) handleMessage(gen uint64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		return
	}

	frame, err := protocol.Decode(payload)
	if err != nil {
		c.logger.WarnKV("丢弃无法解码的帧", "error", err, "size", len(payload))
		if f := c.onDecodeError.Load(); f != nil {
			f.(func([]byte, error))(payload, err)
		}
		return
	}

	switch frame.Kind {
	case models.FrameKindInfo:
		c.logger.InfoKV("检测服务消息", "message", frame.Message)
		if f := c.onInfo.Load(); f != nil {
			f.(func(string))(frame.Message)
		}
	case models.FrameKindSnapshot:
		c.applySnapshot(*frame.Snapshot)
	case models.FrameKindSlot:
		c.logger.InfoKV("检测到车位", "slot", frame.Slot)
		if f := c.onSlotDetected.Load(); f != nil {
			f.(func(models.SlotID))(frame.Slot)
		}
	}
}

// applySnapshot 整体替换展示内容
func (c *FeedClient) applySnapshot(snapshot models.OccupancySnapshot) {
	if !snapshot.Consistent() {
		c.logger.WarnKV("快照计数不一致",
			"total", snapshot.TotalSlots,
			"available", snapshot.AvailableSlots,
			"occupied", snapshot.OccupiedSlots,
		)
	}

	render.Apply(c.renderer, snapshot)
	stored := snapshot.Clone()
	c.lastSnapshot.Store(&stored)

	c.logger.DebugKV("已渲染快照",
		"total", snapshot.TotalSlots,
		"available", snapshot.AvailableSlots,
		"occupied", snapshot.OccupiedSlots,
		"detected", len(snapshot.Detected),
	)
	if f := c.onSnapshot.Load(); f != nil {
		f.(func(models.OccupancySnapshot))(snapshot.Clone())
	}
}

// handleError 传输错误只记录，不转换状态
func (c *FeedClient) handleError(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		return
	}
	c.logger.ErrorKV("检测服务连接错误", "url", c.url, "error", err)
	if f := c.onError.Load(); f != nil {
		f.(func(error))(err)
	}
}

// handleClose 进入 closed 并安排一次重连
func (c *FeedClient) handleClose(gen uint64, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation || c.stateMachine.CurrentState() == ConnectionStatusClosed {
		return
	}
	_ = c.stateMachine.TransitionTo(ConnectionStatusClosed)
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}

	if f := c.onClose.Load(); f != nil {
		f.(func(error))(cause)
	}

	attempt := int(c.retryCount.Load()) + 1
	delay, ok := c.policy.Next(attempt)
	if !ok {
		giveUp := errorx.NewError(models.ErrTypeRetriesExhausted, attempt-1)
		c.logger.ErrorKV("超过最大重连次数，停止重连", "attempts", attempt-1, "cause", cause)
		if f := c.onGiveUp.Load(); f != nil {
			f.(func(error))(giveUp)
		}
		return
	}
	c.retryCount.Store(int32(attempt))

	c.logger.WarnKV("连接已关闭，稍后重连", "delay", delay, "attempt", attempt, "cause", cause)
	c.timer = time.AfterFunc(delay, func() {
		c.reconnect(gen)
	})
	if f := c.onReconnectScheduled.Load(); f != nil {
		f.(func(int, time.Duration))(attempt, delay)
	}
}

// reconnect 只重建连接，渲染目标和摄像头绑定保持不变
func (c *FeedClient) reconnect(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	next, err := c.beginConnecting()
	c.mu.Unlock()
	if err != nil {
		c.logger.ErrorKV("重连失败", "error", err)
		return
	}
	c.dial(next)
}

// Close 主动关闭：取消待触发的重连并发送正常关闭帧，可重复调用
func (c *FeedClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.conn != nil {
		deadline := time.Now().Add(c.Config.WriteTimeout)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = c.conn.Close()
		c.conn = nil
	}
	if c.stateMachine.CurrentState() != ConnectionStatusClosed {
		_ = c.stateMachine.TransitionTo(ConnectionStatusClosed)
	}
	c.logger.InfoKV("占用推送客户端已关闭", "url", c.url)
	return nil
}
