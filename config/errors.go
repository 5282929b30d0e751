/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 17:40:05
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 17:40:05
 * @FilePath: \go-parkfeed\config\errors.go
 * @Description: 配置错误定义
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package config

import (
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// 配置相关错误 (82300-82399) - 不可重试
const (
	ErrTypeNoEndpoint models.ErrorType = 82301 // 未配置推送地址
)

func init() {
	errorx.RegisterError(ErrTypeNoEndpoint, "either page_url or endpoint must be set in %s")
}
