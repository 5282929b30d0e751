/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 14:26:33
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 16:08:45
 * @FilePath: \go-parkfeed\protocol\frame.go
 * @Description: 检测服务推送帧解码
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package protocol

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/kamalyes/go-parkfeed/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// 线上字段名，需与检测服务保持一致
const (
	FieldMessage        = "message"
	FieldTotalSlots     = "total_slots"
	FieldAvailableSlots = "available_slots"
	FieldOccupiedSlots  = "occupied_slots"
	FieldDetected       = "detected"
	FieldDetectedSlot   = "detected_slot"
)

// snapshotFields 任一出现即视为快照帧
var snapshotFields = []string{FieldTotalSlots, FieldAvailableSlots, FieldOccupiedSlots, FieldDetected}

// Frame 一条解码后的推送帧
type Frame struct {
	Kind     models.FrameKind          // 帧类型
	Message  string                    // Kind == info 时有效
	Snapshot *models.OccupancySnapshot // Kind == snapshot 时有效
	Slot     models.SlotID             // Kind == slot 时有效
}

// IsInfo 是否为诊断信息帧
func (f Frame) IsInfo() bool { return f.Kind == models.FrameKindInfo }

// IsSnapshot 是否为占用快照帧
func (f Frame) IsSnapshot() bool { return f.Kind == models.FrameKindSnapshot }

// IsSlot 是否为单车位检测事件帧
func (f Frame) IsSlot() bool { return f.Kind == models.FrameKindSlot }

// Decode 解码一帧
// 规则:
//   - message 为真值（非空字符串、非零数字、true、对象或数组）=> 信息帧，忽略其它字段
//   - 否则出现任一快照字段 => 快照帧，缺失或 null 的计数取 0，detected 缺失取空
//   - 否则出现 detected_slot => 单车位事件帧
//   - 其余情况（非法 JSON、非对象、字段类型错误、负数计数）返回解码错误
//
// 未识别的字段一律忽略
func Decode(data []byte) (Frame, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Frame{}, errorx.NewError(models.ErrTypeMalformedFrame, "payload is not a json object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Frame{}, errorx.NewError(models.ErrTypeMalformedFrame, err.Error())
	}

	if msg, ok := decodeMessage(fields[FieldMessage]); ok {
		return Frame{Kind: models.FrameKindInfo, Message: msg}, nil
	}

	if hasAny(fields, snapshotFields...) {
		snapshot, err := decodeSnapshot(fields)
		if err != nil {
			return Frame{}, err
		}
		return Frame{Kind: models.FrameKindSnapshot, Snapshot: snapshot}, nil
	}

	if raw, ok := fields[FieldDetectedSlot]; ok && !isNull(raw) {
		id, err := decodeSlotID(raw)
		if err != nil {
			return Frame{}, errorx.NewError(models.ErrTypeInvalidField, FieldDetectedSlot, err.Error())
		}
		return Frame{Kind: models.FrameKindSlot, Slot: id}, nil
	}

	return Frame{}, errorx.NewError(models.ErrTypeMalformedFrame, "no recognized fields")
}

// decodeMessage message 为真值时算信息帧
// 空字符串、0、false、null 视为不存在；非字符串的真值以原始 JSON 文本作为消息
func decodeMessage(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return "", false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, v != ""
	case float64:
		return string(raw), v != 0
	case bool:
		return string(raw), v
	default:
		return string(raw), true
	}
}

// decodeSnapshot 解码快照字段
func decodeSnapshot(fields map[string]json.RawMessage) (*models.OccupancySnapshot, error) {
	total, err := decodeCount(fields, FieldTotalSlots)
	if err != nil {
		return nil, err
	}
	available, err := decodeCount(fields, FieldAvailableSlots)
	if err != nil {
		return nil, err
	}
	occupied, err := decodeCount(fields, FieldOccupiedSlots)
	if err != nil {
		return nil, err
	}
	detected, err := decodeDetected(fields[FieldDetected])
	if err != nil {
		return nil, err
	}
	return &models.OccupancySnapshot{
		TotalSlots:     total,
		AvailableSlots: available,
		OccupiedSlots:  occupied,
		Detected:       detected,
	}, nil
}

// decodeCount 缺失或 null 返回 0，负数或非整数视为字段错误
func decodeCount(fields map[string]json.RawMessage, name string) (int, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, errorx.NewError(models.ErrTypeInvalidField, name, err.Error())
	}
	if n < 0 {
		return 0, errorx.NewError(models.ErrTypeInvalidField, name, "negative count")
	}
	return n, nil
}

// decodeDetected 解码车位列表，保持接收顺序
func decodeDetected(raw json.RawMessage) ([]models.SlotID, error) {
	if len(raw) == 0 || isNull(raw) {
		return []models.SlotID{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errorx.NewError(models.ErrTypeInvalidField, FieldDetected, err.Error())
	}
	ids := make([]models.SlotID, 0, len(items))
	for _, item := range items {
		id, err := decodeSlotID(item)
		if err != nil {
			return nil, errorx.NewError(models.ErrTypeInvalidField, FieldDetected, err.Error())
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeSlotID 车位标识可以是字符串或整数
func decodeSlotID(raw json.RawMessage) (models.SlotID, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return models.SlotID(s), nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errorx.WrapError("slot id must be a string or an integer", err)
	}
	return models.SlotID(strconv.FormatInt(n, 10)), nil
}

func hasAny(fields map[string]json.RawMessage, names ...string) bool {
	for _, name := range names {
		if _, ok := fields[name]; ok {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
