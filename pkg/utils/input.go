package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WheelStepPixels 滚轮每格对应的滚动像素
const WheelStepPixels = 100.0

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}

	// 返回鼠标位置
	return ebiten.CursorPosition()
}

// ScrollDelta 汇总本帧的滚动输入（像素，向下为正）
//
//   - 鼠标滚轮：每格 WheelStepPixels
//   - PageDown / PageUp：一个视口高度
//   - Home / End：跳到顶部 / 底部（返回 jumpTop / jumpBottom 标志）
func ScrollDelta(viewportHeight float64) (delta float64, jumpTop, jumpBottom bool) {
	_, wheelY := ebiten.Wheel()
	// 滚轮向上为正，页面向上滚动
	delta = -wheelY * WheelStepPixels

	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		delta += viewportHeight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		delta -= viewportHeight
	}

	jumpTop = inpututil.IsKeyJustPressed(ebiten.KeyHome)
	jumpBottom = inpututil.IsKeyJustPressed(ebiten.KeyEnd)
	return delta, jumpTop, jumpBottom
}
