/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 16:05:30
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 21:52:18
 * @FilePath: \go-parkfeed\video\camera_test.go
 * @Description: 摄像头获取测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	name   string
	closed atomic.Bool
}

func (s *fakeStream) Name() string { return s.name }

func (s *fakeStream) Close() error {
	s.closed.Store(true)
	return nil
}

type fakeSource struct {
	calls  atomic.Int32
	stream Stream
	err    error
}

func (s *fakeSource) Acquire(ctx context.Context) (Stream, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.stream, nil
}

type fakeSurface struct {
	mu    sync.Mutex
	bound []string
	err   error
}

func (s *fakeSurface) Bind(stream Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.bound = append(s.bound, stream.Name())
	return nil
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

func (r *noticeRecorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, message)
}

func (r *noticeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func TestCameraAcquireBindsStream(t *testing.T) {
	stream := &fakeStream{name: "cam0"}
	source := &fakeSource{stream: stream}
	surface := &fakeSurface{}
	notices := &noticeRecorder{}

	camera := NewCamera(source, surface, notices, logger.NewEmptyLogger())
	require.NoError(t, camera.Acquire(context.Background()))

	assert.Equal(t, []string{"cam0"}, surface.bound)
	assert.Equal(t, 0, notices.count())
	assert.Equal(t, stream, camera.Stream())

	require.NoError(t, camera.Release())
	assert.True(t, stream.closed.Load())
	assert.Nil(t, camera.Stream())
}

func TestCameraFailureNotifiesOnceWithoutRetry(t *testing.T) {
	source := &fakeSource{err: errorx.NewError(models.ErrTypeCameraDenied, "cam0")}
	notices := &noticeRecorder{}

	camera := NewCamera(source, &fakeSurface{}, notices, logger.NewEmptyLogger())
	err := camera.Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsCameraError(err))

	// 再次调用不会重新请求设备
	assert.Error(t, camera.Acquire(context.Background()))
	assert.Equal(t, int32(1), source.calls.Load())
	assert.Equal(t, 1, notices.count())
	assert.Equal(t, DefaultCameraNotice, notices.notices[0])
	assert.Nil(t, camera.Stream())
}

func TestCameraBindFailureReleasesStream(t *testing.T) {
	stream := &fakeStream{name: "cam0"}
	notices := &noticeRecorder{}
	camera := NewCamera(&fakeSource{stream: stream}, &fakeSurface{err: errors.New("no display")}, notices, logger.NewEmptyLogger()).
		WithNotice("camera offline")

	err := camera.Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrTypeCameraBind))
	assert.True(t, stream.closed.Load())
	assert.Equal(t, []string{"camera offline"}, notices.notices)
}

func TestCameraStartIsAsync(t *testing.T) {
	source := &fakeSource{stream: &fakeStream{name: "cam0"}}
	surface := &fakeSurface{}
	camera := NewCamera(source, surface, &noticeRecorder{}, logger.NewEmptyLogger())

	camera.Start(context.Background())

	assert.Eventually(t, func() bool {
		return camera.Stream() != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestDeviceSourceMissingDevice(t *testing.T) {
	source := NewDeviceSource(filepath.Join(t.TempDir(), "video9"))
	_, err := source.Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrTypeCameraNotFound))
}

func TestDeviceSourceRejectsRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video0")
	require.NoError(t, os.WriteFile(path, []byte("not a device"), 0o644))

	_, err := NewDeviceSource(path).Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrTypeCameraNotFound))
}

func TestDeviceSourceOpensCharDevice(t *testing.T) {
	if _, err := os.Stat(os.DevNull); err != nil {
		t.Skip("no null device")
	}
	stream, err := NewDeviceSource(os.DevNull).Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, os.DevNull, stream.Name())
	assert.NoError(t, stream.Close())
}

func TestDeviceSourceDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultDevicePath, NewDeviceSource("").Path)
}

func TestDeviceSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDeviceSource(os.DevNull).Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
