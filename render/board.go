/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 09:40:12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 22:51:07
 * @FilePath: \go-parkfeed\render\board.go
 * @Description: 内存看板渲染目标
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package render

import (
	"sync"

	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// BoardState 看板当前展示内容
type BoardState struct {
	Totals   Totals          `json:"totals"`
	Detected []models.SlotID `json:"detected"`
	Renders  int             `json:"renders"` // SetDetectedList 调用次数
}

// Board 并发安全的内存渲染目标
type Board struct {
	mu       sync.RWMutex
	totals   Totals
	detected []models.SlotID
	renders  int
}

// NewBoard 创建空看板
func NewBoard() *Board {
	return &Board{detected: []models.SlotID{}}
}

// SetTotals 替换计数器
func (b *Board) SetTotals(total, available, occupied int) {
	syncx.WithLock(&b.mu, func() {
		b.totals = Totals{Total: total, Available: available, Occupied: occupied}
	})
}

// SetDetectedList 整体替换车位列表
func (b *Board) SetDetectedList(ids []models.SlotID) {
	syncx.WithLock(&b.mu, func() {
		b.detected = append(b.detected[:0:0], ids...)
		b.renders++
	})
}

// State 返回当前展示内容的副本
func (b *Board) State() BoardState {
	return syncx.WithRLockReturnValue(&b.mu, func() BoardState {
		detected := make([]models.SlotID, len(b.detected))
		copy(detected, b.detected)
		return BoardState{Totals: b.totals, Detected: detected, Renders: b.renders}
	})
}

// Labels 返回展示用的车位标签
func (b *Board) Labels() []string {
	state := b.State()
	labels := make([]string, 0, len(state.Detected))
	for _, id := range state.Detected {
		labels = append(labels, id.Label())
	}
	return labels
}
