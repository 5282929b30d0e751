/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 15:02:33
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 10:40:19
 * @FilePath: \go-parkfeed\kiosk.go
 * @Description: 看板组装 - 挂载时并行启动摄像头与占用推送
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package parkfeed

import (
	"context"
	"sync"

	"github.com/kamalyes/go-parkfeed/client"
	"github.com/kamalyes/go-parkfeed/video"
)

// Kiosk 一块占用看板：摄像头显示辅助 + 占用推送
// 两者相互独立，摄像头失败不影响推送，推送重连不影响摄像头绑定
type Kiosk struct {
	Camera *video.Camera      // 可为 nil
	Feed   *client.FeedClient // 占用推送
	Logger client.FeedLogger  // 日志器

	mu      sync.Mutex
	mounted bool
}

// NewKiosk 创建看板
func NewKiosk(feed *client.FeedClient, camera *video.Camera, log client.FeedLogger) *Kiosk {
	return &Kiosk{Camera: camera, Feed: feed, Logger: log}
}

// Mount 挂载：推送开始连接，摄像头异步获取（只尝试一次）
func (k *Kiosk) Mount(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.mounted {
		return nil
	}

	if err := k.Feed.Start(ctx); err != nil {
		return err
	}
	// 推送启动成功后再获取摄像头，保证失败时没有需要释放的流
	if k.Camera != nil {
		k.Camera.Start(ctx)
	}
	k.mounted = true
	k.Logger.InfoKV("看板已挂载", "url", k.Feed.URL(), "camera", k.Camera != nil)
	return nil
}

// Unmount 卸载：关闭推送（取消待触发的重连）并释放摄像头
func (k *Kiosk) Unmount() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.mounted {
		return nil
	}
	k.mounted = false

	err := k.Feed.Close()
	if k.Camera != nil {
		if releaseErr := k.Camera.Release(); releaseErr != nil {
			k.Logger.WarnKV("释放摄像头失败", "error", releaseErr)
		}
	}
	k.Logger.InfoKV("看板已卸载", "url", k.Feed.URL())
	return err
}
