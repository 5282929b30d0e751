/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 10:02:17
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 11:20:09
 * @FilePath: \go-parkfeed\models\errors.go
 * @Description: 占用推送错误定义 - 基于errorx.BaseError模式
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// 错误类型定义，基于errorx.ErrorType
type ErrorType = errorx.ErrorType

// 占用推送错误码常量定义
// 使用 82xxx 区间
const (
	// 帧解码错误 (82000-82099) - 丢弃该帧，连接保持
	ErrTypeMalformedFrame ErrorType = 82001 // 帧格式错误
	ErrTypeInvalidField   ErrorType = 82002 // 字段类型或取值错误

	// 连接相关错误 (82100-82199)
	ErrTypeAlreadyStarted    ErrorType = 82101 // 客户端已启动
	ErrTypeClientClosed      ErrorType = 82102 // 客户端已关闭
	ErrTypeInvalidEndpoint   ErrorType = 82103 // 无效的页面地址
	ErrTypeRetriesExhausted  ErrorType = 82104 // 超过最大重连次数
	ErrTypeInvalidTransition ErrorType = 82105 // 非法状态转换

	// 摄像头相关错误 (82200-82299) - 只提示一次，不重试
	ErrTypeCameraNotFound ErrorType = 82201 // 没有可用的视频设备
	ErrTypeCameraDenied   ErrorType = 82202 // 视频设备权限被拒绝
	ErrTypeCameraBind     ErrorType = 82203 // 绑定显示表面失败
)

func init() {
	errorx.RegisterError(ErrTypeMalformedFrame, "malformed frame: %s")
	errorx.RegisterError(ErrTypeInvalidField, "invalid field %s: %s")

	errorx.RegisterError(ErrTypeAlreadyStarted, "feed client already started")
	errorx.RegisterError(ErrTypeClientClosed, "feed client closed")
	errorx.RegisterError(ErrTypeInvalidEndpoint, "invalid page url: %s")
	errorx.RegisterError(ErrTypeRetriesExhausted, "reconnect retries exhausted after %d attempts")
	errorx.RegisterError(ErrTypeInvalidTransition, "invalid status transition to %s")

	errorx.RegisterError(ErrTypeCameraNotFound, "camera not found: %s")
	errorx.RegisterError(ErrTypeCameraDenied, "camera access denied: %s")
	errorx.RegisterError(ErrTypeCameraBind, "camera bind failed: %s")
}

// 错误变量定义
// 包级变量先于 init 初始化，此时错误码尚未注册，需直接构造
var (
	ErrAlreadyStarted = errorx.NewBaseError("feed client already started", ErrTypeAlreadyStarted)
	ErrClientClosed   = errorx.NewBaseError("feed client closed", ErrTypeClientClosed)
)

// IsErrorType 判断错误（含包装链）是否属于指定错误类型
func IsErrorType(err error, errType ErrorType) bool {
	return err != nil && errorx.ClassifyError(err) == errType
}

// IsDecodeError 判断是否为帧解码错误
func IsDecodeError(err error) bool {
	return IsErrorType(err, ErrTypeMalformedFrame) || IsErrorType(err, ErrTypeInvalidField)
}

// IsCameraError 判断是否为摄像头获取错误
func IsCameraError(err error) bool {
	return IsErrorType(err, ErrTypeCameraNotFound) ||
		IsErrorType(err, ErrTypeCameraDenied) ||
		IsErrorType(err, ErrTypeCameraBind)
}
