/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 09:30:02
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 10:44:51
 * @FilePath: \go-parkfeed\models\snapshot.go
 * @Description: 车位占用快照模型
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import "fmt"

// SlotID 车位标识，线上可能是字符串或整数，统一为文本
type SlotID string

// String 实现Stringer接口
func (id SlotID) String() string {
	return string(id)
}

// Label 返回展示用的车位标签，例如 "Slot A1"
func (id SlotID) Label() string {
	return fmt.Sprintf("Slot %s", string(id))
}

// OccupancySnapshot 服务端推送的一次占用读数
// 每条快照整体替换当前展示状态，客户端不做合并
type OccupancySnapshot struct {
	TotalSlots     int      `json:"total_slots"`     // 监控车位总数
	AvailableSlots int      `json:"available_slots"` // 空闲车位数
	OccupiedSlots  int      `json:"occupied_slots"`  // 占用车位数
	Detected       []SlotID `json:"detected"`        // 当前被标记占用的车位，按接收顺序
}

// Consistent 检查 occupied + available == total
// 服务端是可信源，客户端只记录不一致，不拒绝
func (s OccupancySnapshot) Consistent() bool {
	return s.OccupiedSlots+s.AvailableSlots == s.TotalSlots
}

// OccupancyRate 占用率（0-100），总数为 0 时返回 0
func (s OccupancySnapshot) OccupancyRate() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.OccupiedSlots) / float64(s.TotalSlots) * 100
}

// Clone 深拷贝快照，避免渲染目标持有解码缓冲区的切片
func (s OccupancySnapshot) Clone() OccupancySnapshot {
	out := s
	out.Detected = make([]SlotID, len(s.Detected))
	copy(out.Detected, s.Detected)
	return out
}

// ConnectionState 客户端连接状态，每个客户端生命周期一个实例
type ConnectionState struct {
	Status     ConnectionStatus `json:"status"`      // 当前状态
	RetryCount int              `json:"retry_count"` // 连续重连次数，连接成功后归零
}
