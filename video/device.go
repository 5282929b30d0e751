/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 15:22:47
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 09:17:33
 * @FilePath: \go-parkfeed\video\device.go
 * @Description: 设备节点视频源与日志显示表面
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package video

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// DefaultDevicePath 默认视频设备节点
const DefaultDevicePath = "/dev/video0"

// DeviceSource 以只读方式打开视频设备节点
type DeviceSource struct {
	Path string
}

// NewDeviceSource 创建设备视频源，path 为空时使用 /dev/video0
func NewDeviceSource(path string) *DeviceSource {
	return &DeviceSource{Path: mathx.IF(path == "", DefaultDevicePath, path)}
}

// Acquire 打开设备
func (d *DeviceSource) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(d.Path)
	if err != nil {
		return nil, classifyDeviceError(d.Path, err)
	}
	if info.Mode()&fs.ModeCharDevice == 0 {
		return nil, errorx.NewError(models.ErrTypeCameraNotFound, d.Path+" is not a character device")
	}

	f, err := os.OpenFile(d.Path, os.O_RDONLY, 0)
	if err != nil {
		return nil, classifyDeviceError(d.Path, err)
	}
	return &deviceStream{path: d.Path, file: f}, nil
}

func classifyDeviceError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return errorx.NewError(models.ErrTypeCameraDenied, path)
	case errors.Is(err, fs.ErrNotExist):
		return errorx.NewError(models.ErrTypeCameraNotFound, path)
	default:
		return errorx.WrapError("open video device "+path, err)
	}
}

type deviceStream struct {
	path string
	file *os.File
}

func (s *deviceStream) Name() string { return s.path }

func (s *deviceStream) Close() error { return s.file.Close() }

// LogSurface 无图形界面时的显示表面，只记录绑定事件
type LogSurface struct {
	Logger logger.ILogger
}

// Bind 记录绑定的流
func (s *LogSurface) Bind(stream Stream) error {
	s.Logger.InfoKV("视频流已绑定到显示表面", "stream", stream.Name())
	return nil
}
