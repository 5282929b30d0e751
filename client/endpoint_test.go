/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 10:30:26
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 14:05:12
 * @FilePath: \go-parkfeed\client\endpoint_test.go
 * @Description: 推送端点推导测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"testing"

	"github.com/kamalyes/go-parkfeed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointFromPage(t *testing.T) {
	tests := []struct {
		page     string
		expected string
	}{
		{"http://localhost:8000/", "ws://localhost:8000/ws/parking/"},
		{"http://localhost:8000/camera/?lot=1#live", "ws://localhost:8000/ws/parking/"},
		{"https://parking.example.com/camera/", "wss://parking.example.com/ws/parking/"},
		{"HTTPS://parking.example.com:8443", "wss://parking.example.com:8443/ws/parking/"},
		{"ws://10.0.0.5:9000/anything", "ws://10.0.0.5:9000/ws/parking/"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			endpoint, err := EndpointFromPage(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, endpoint)
		})
	}
}

func TestEndpointFromPageInvalid(t *testing.T) {
	for _, page := range []string{"", "localhost:8000", "ftp://example.com/", "/camera/", "http://"} {
		_, err := EndpointFromPage(page)
		assert.Error(t, err, page)
		assert.True(t, models.IsErrorType(err, models.ErrTypeInvalidEndpoint), page)
	}
}
