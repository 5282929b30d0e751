/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-15 10:12:08
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 14:02:51
 * @FilePath: \go-parkfeed\client\endpoint.go
 * @Description: 推送端点推导
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"net/url"
	"strings"

	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// ParkingPath 检测服务推送路径
const ParkingPath = "/ws/parking/"

// EndpointFromPage 由页面地址推导推送地址，与页面同主机同端口
// https 页面使用 wss，http 页面使用 ws
func EndpointFromPage(pageURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || u.Host == "" {
		return "", errorx.NewError(models.ErrTypeInvalidEndpoint, pageURL)
	}

	var scheme string
	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		scheme = "wss"
	case "http", "ws":
		scheme = "ws"
	default:
		return "", errorx.NewError(models.ErrTypeInvalidEndpoint, pageURL)
	}

	return (&url.URL{Scheme: scheme, Host: u.Host, Path: ParkingPath}).String(), nil
}
