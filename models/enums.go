/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 09:12:40
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 21:03:18
 * @FilePath: \go-parkfeed\models\enums.go
 * @Description: 连接状态与帧类型枚举
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

// ConnectionStatus 占用推送连接状态
type ConnectionStatus string

const (
	ConnectionStatusConnecting ConnectionStatus = "connecting" // 连接中
	ConnectionStatusOpen       ConnectionStatus = "open"       // 已连接
	ConnectionStatusClosed     ConnectionStatus = "closed"     // 已关闭
)

// String 实现Stringer接口
func (s ConnectionStatus) String() string {
	return string(s)
}

// IsValid 检查连接状态是否有效
func (s ConnectionStatus) IsValid() bool {
	return ConnectionStatusValidator.IsValid(s)
}

// FrameKind 服务端推送帧类型
type FrameKind string

const (
	FrameKindInfo     FrameKind = "info"     // 诊断信息帧，不含车位数据
	FrameKindSnapshot FrameKind = "snapshot" // 占用快照帧
	FrameKindSlot     FrameKind = "slot"     // 单个车位检测事件帧
)

// String 实现Stringer接口
func (k FrameKind) String() string {
	return string(k)
}

// IsValid 检查帧类型是否有效
func (k FrameKind) IsValid() bool {
	return FrameKindValidator.IsValid(k)
}
