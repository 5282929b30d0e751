/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 09:12:40
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-12 09:12:40
 * @FilePath: \go-parkfeed\models\validator.go
 * @Description: 枚举验证器集中管理
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"github.com/kamalyes/go-toolbox/pkg/types"
)

// 全局枚举验证器实例
var (
	// ConnectionStatusValidator 连接状态验证器
	ConnectionStatusValidator = types.NewEnumValidator(
		ConnectionStatusConnecting,
		ConnectionStatusOpen,
		ConnectionStatusClosed,
	)

	// FrameKindValidator 帧类型验证器
	FrameKindValidator = types.NewEnumValidator(
		FrameKindInfo,
		FrameKindSnapshot,
		FrameKindSlot,
	)
)
