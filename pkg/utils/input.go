// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput 基于 ebiten 的输入源
//
// 鼠标左键与触摸统一处理：有触摸时，第一个触点视为光标，按下视为左键按下，
// 这样触控设备上的拖拽和点击"下一步"按钮不需要单独的代码路径。
type EbitenInput struct {
	lastTouchX, lastTouchY int
}

// NewEbitenInput 创建输入源
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// IsKeyPressed 按键是否按住
func (in *EbitenInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// IsKeyJustPressed 按键是否在本帧按下
func (in *EbitenInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Wheel 返回本帧的滚轮增量（Mac 触控板双指滑动也会产生滚轮事件）
func (in *EbitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// CursorPosition 返回指针位置，优先使用触摸位置
func (in *EbitenInput) CursorPosition() (int, int) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		in.lastTouchX, in.lastTouchY = ebiten.TouchPosition(touchIDs[0])
		return in.lastTouchX, in.lastTouchY
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		// 触点已经抬起，位置只能用上一次记录的
		return in.lastTouchX, in.lastTouchY
	}
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed 鼠标按键是否按住；左键同时检查触摸
func (in *EbitenInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	if button == ebiten.MouseButtonLeft && len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(button)
}

// IsMouseButtonJustPressed 鼠标按键是否在本帧按下；左键同时检查新触摸
func (in *EbitenInput) IsMouseButtonJustPressed(button ebiten.MouseButton) bool {
	if button == ebiten.MouseButtonLeft {
		if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
			in.lastTouchX, in.lastTouchY = ebiten.TouchPosition(touchIDs[0])
			return true
		}
	}
	return inpututil.IsMouseButtonJustPressed(button)
}
