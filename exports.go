/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 15:30:10
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 09:12:44
 * @FilePath: \go-parkfeed\exports.go
 * @Description: 对外导出 - 常用类型与构造函数别名
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package parkfeed

import (
	"github.com/kamalyes/go-parkfeed/client"
	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-parkfeed/protocol"
	"github.com/kamalyes/go-parkfeed/render"
)

// ============================================================================
// 类型别名
// ============================================================================

type (
	// Client 相关类型
	FeedClient  = client.FeedClient
	Config      = client.Config
	RetryPolicy = client.RetryPolicy

	// Models 相关类型
	OccupancySnapshot = models.OccupancySnapshot
	SlotID            = models.SlotID
	ConnectionStatus  = models.ConnectionStatus
	ConnectionState   = models.ConnectionState

	// Render 相关类型
	Renderer = render.Renderer
	Board    = render.Board

	// Protocol 相关类型
	Frame = protocol.Frame
)

// 常量别名
const (
	ConnectionStatusConnecting = models.ConnectionStatusConnecting
	ConnectionStatusOpen       = models.ConnectionStatusOpen
	ConnectionStatusClosed     = models.ConnectionStatusClosed
	ParkingPath                = client.ParkingPath
)

// 函数别名
var (
	New              = client.New
	NewFromPage      = client.NewFromPage
	DefaultConfig    = client.DefaultConfig
	EndpointFromPage = client.EndpointFromPage
	Decode           = protocol.Decode
	Apply            = render.Apply
	NewBoard         = render.NewBoard
)
