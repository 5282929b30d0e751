/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 11:17:26
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 08:30:54
 * @FilePath: \go-parkfeed\render\console.go
 * @Description: 终端看板渲染目标
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kamalyes/go-parkfeed/models"
)

// ConsoleBoard 将展示内容写到终端
// 计数器先缓存，列表到达时整帧输出
type ConsoleBoard struct {
	mu     sync.Mutex
	out    io.Writer
	totals Totals
}

// NewConsoleBoard 创建终端看板
func NewConsoleBoard(out io.Writer) *ConsoleBoard {
	return &ConsoleBoard{out: out}
}

// SetTotals 缓存计数器
func (c *ConsoleBoard) SetTotals(total, available, occupied int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals = Totals{Total: total, Available: available, Occupied: occupied}
}

// SetDetectedList 输出完整一帧
func (c *ConsoleBoard) SetDetectedList(ids []models.SlotID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "total=%d available=%d occupied=%d\n", c.totals.Total, c.totals.Available, c.totals.Occupied)
	if len(ids) == 0 {
		sb.WriteString("  (no slots detected)\n")
	}
	for _, id := range ids {
		fmt.Fprintf(&sb, "  %s\n", id.Label())
	}
	_, _ = io.WriteString(c.out, sb.String())
}
