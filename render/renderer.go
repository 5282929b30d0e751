/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 09:05:48
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 18:22:30
 * @FilePath: \go-parkfeed\render\renderer.go
 * @Description: 渲染目标接口与渲染步骤
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package render

import (
	"github.com/kamalyes/go-parkfeed/models"
)

// Renderer 展示协作方需要实现的渲染目标
// 推送客户端只通过这两个方法输出，不关心具体展示技术
// 实现必须快速返回，渲染在客户端的事件串行区内执行
type Renderer interface {
	// SetTotals 替换三个计数器
	SetTotals(total, available, occupied int)
	// SetDetectedList 整体替换占用车位列表（先清空再按顺序填充）
	SetDetectedList(ids []models.SlotID)
}

// Apply 将一条快照渲染到目标，多次渲染同一快照结果相同
func Apply(r Renderer, snapshot models.OccupancySnapshot) {
	if r == nil {
		return
	}
	r.SetTotals(snapshot.TotalSlots, snapshot.AvailableSlots, snapshot.OccupiedSlots)
	ids := make([]models.SlotID, len(snapshot.Detected))
	copy(ids, snapshot.Detected)
	r.SetDetectedList(ids)
}

// Totals 计数器展示值
type Totals struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// multi 扇出到多个渲染目标
type multi []Renderer

// Multi 组合多个渲染目标，按顺序依次渲染，nil 会被忽略
func Multi(renderers ...Renderer) Renderer {
	out := make(multi, 0, len(renderers))
	for _, r := range renderers {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) SetTotals(total, available, occupied int) {
	for _, r := range m {
		r.SetTotals(total, available, occupied)
	}
}

func (m multi) SetDetectedList(ids []models.SlotID) {
	for _, r := range m {
		r.SetDetectedList(ids)
	}
}
