/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 13:20:44
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 08:47:12
 * @FilePath: \go-parkfeed\client\feed.go
 * @Description: FeedClient 结构体及其方法
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-parkfeed/render"
	"github.com/kamalyes/go-toolbox/pkg/safe"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

type ConnectionStatus = models.ConnectionStatus

const (
	ConnectionStatusConnecting = models.ConnectionStatusConnecting
	ConnectionStatusOpen       = models.ConnectionStatusOpen
	ConnectionStatusClosed     = models.ConnectionStatusClosed
)

// FeedClient 占用推送客户端
// 只接收不发送；所有生命周期事件和渲染调用由 mu 串行化，
// 回调在持锁状态下执行，回调内不能调用 Close
type FeedClient struct {
	mu           sync.Mutex                            // 事件串行锁
	Config       *Config                               // 客户端配置
	url          string                                // 推送地址
	dialer       *websocket.Dialer                     // 拨号器
	header       http.Header                           // 握手请求头
	renderer     render.Renderer                       // 渲染目标
	logger       FeedLogger                            // 日志器
	stateMachine *syncx.StateMachine[ConnectionStatus] // 连接状态机
	policy       *RetryPolicy                          // 重连策略

	conn       *websocket.Conn // 当前连接
	generation uint64          // 连接代数，过期连接的事件直接丢弃
	retryCount atomic.Int32    // 连续重连次数
	timer      *time.Timer     // 待触发的重连
	started    bool
	closed     bool
	ctx        context.Context
	cancel     context.CancelFunc

	// 最近一次渲染的快照
	lastSnapshot atomic.Pointer[models.OccupancySnapshot]

	// 生命周期回调
	onOpen               atomic.Value // 连接成功回调 func()
	onClose              atomic.Value // 连接关闭回调 func(error)
	onError              atomic.Value // 传输错误回调 func(error)
	onReconnectScheduled atomic.Value // 已安排重连回调 func(int, time.Duration)
	onGiveUp             atomic.Value // 放弃重连回调 func(error)

	// 消息回调
	onInfo         atomic.Value // 信息帧回调 func(string)
	onSnapshot     atomic.Value // 快照帧回调 func(models.OccupancySnapshot)
	onSlotDetected atomic.Value // 单车位事件回调 func(models.SlotID)
	onDecodeError  atomic.Value // 解码失败回调 func([]byte, error)
}

// New 创建一个新的占用推送客户端
// 参数 url: 推送地址，通常由 EndpointFromPage 得到
func New(url string) *FeedClient {
	sm := syncx.NewStateMachine(ConnectionStatusClosed)
	sm.AllowTransitions(ConnectionStatusClosed, ConnectionStatusConnecting)
	sm.AllowTransitions(ConnectionStatusConnecting, ConnectionStatusOpen, ConnectionStatusClosed)
	sm.AllowTransitions(ConnectionStatusOpen, ConnectionStatusClosed)

	config := DefaultConfig()
	return &FeedClient{
		Config:       config,
		url:          url,
		dialer:       websocket.DefaultDialer,
		header:       http.Header{},
		renderer:     render.NewBoard(),
		logger:       NewDefaultLogger(),
		stateMachine: sm,
		policy:       NewRetryPolicy(config),
	}
}

// NewFromPage 由页面地址创建客户端
func NewFromPage(pageURL string) (*FeedClient, error) {
	endpoint, err := EndpointFromPage(pageURL)
	if err != nil {
		return nil, err
	}
	return New(endpoint), nil
}

// SetConfig 设置客户端配置，未设置的字段使用默认值
func (c *FeedClient) SetConfig(config *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Config = safe.MergeWithDefaults(config, DefaultConfig())
	c.policy = NewRetryPolicy(c.Config)
}

// SetRenderer 设置渲染目标
func (c *FeedClient) SetRenderer(r render.Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
}

// SetLogger 设置日志器
func (c *FeedClient) SetLogger(l FeedLogger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

// WithDialer 设置自定义拨号器
func (c *FeedClient) WithDialer(dialer *websocket.Dialer) *FeedClient {
	c.dialer = dialer
	return c
}

// WithRequestHeader 设置握手请求头
func (c *FeedClient) WithRequestHeader(header http.Header) *FeedClient {
	c.header = header
	return c
}

// URL 推送地址
func (c *FeedClient) URL() string {
	return c.url
}

// OnOpen 设置连接成功的回调
func (c *FeedClient) OnOpen(f func()) {
	c.onOpen.Store(f)
}

// OnClose 设置连接关闭的回调，参数为导致关闭的错误
func (c *FeedClient) OnClose(f func(err error)) {
	c.onClose.Store(f)
}

// OnError 设置传输错误的回调，错误之后总会跟随一次关闭
func (c *FeedClient) OnError(f func(err error)) {
	c.onError.Store(f)
}

// OnReconnectScheduled 设置安排重连的回调，参数为第几次重连和延迟
func (c *FeedClient) OnReconnectScheduled(f func(attempt int, delay time.Duration)) {
	c.onReconnectScheduled.Store(f)
}

// OnGiveUp 设置超过最大重连次数的回调
func (c *FeedClient) OnGiveUp(f func(err error)) {
	c.onGiveUp.Store(f)
}

// OnInfo 设置信息帧回调（日志出口）
func (c *FeedClient) OnInfo(f func(message string)) {
	c.onInfo.Store(f)
}

// OnSnapshot 设置快照帧回调，在渲染之后调用
func (c *FeedClient) OnSnapshot(f func(snapshot models.OccupancySnapshot)) {
	c.onSnapshot.Store(f)
}

// OnSlotDetected 设置单车位检测事件回调
func (c *FeedClient) OnSlotDetected(f func(id models.SlotID)) {
	c.onSlotDetected.Store(f)
}

// OnDecodeError 设置解码失败回调
func (c *FeedClient) OnDecodeError(f func(payload []byte, err error)) {
	c.onDecodeError.Store(f)
}

// GetConnectionStatus 获取当前连接状态
func (c *FeedClient) GetConnectionStatus() ConnectionStatus {
	return c.stateMachine.CurrentState()
}

// State 获取连接状态与重连次数
func (c *FeedClient) State() models.ConnectionState {
	return models.ConnectionState{
		Status:     c.stateMachine.CurrentState(),
		RetryCount: int(c.retryCount.Load()),
	}
}

// IsOpen 检查是否已连接
func (c *FeedClient) IsOpen() bool {
	return c.stateMachine.CurrentState() == ConnectionStatusOpen
}

// RetryCount 连续重连次数
func (c *FeedClient) RetryCount() int {
	return int(c.retryCount.Load())
}

// LastSnapshot 最近一次渲染的快照，尚未收到时返回 false
func (c *FeedClient) LastSnapshot() (models.OccupancySnapshot, bool) {
	last := c.lastSnapshot.Load()
	if last == nil {
		return models.OccupancySnapshot{}, false
	}
	return last.Clone(), true
}

// IsNormalClose 检查WebSocket关闭是否为正常关闭
func IsNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
