// Package utils 提供场景使用的通用工具函数
//
// coordinates.go 处理屏幕像素、归一化设备坐标（NDC）与滚动分区之间的换算。
//
// # 坐标系统概述
//
//   - **像素坐标**：相对于窗口左上角，Y 向下
//   - **NDC**：-1..1，X 向右，Y 向上（与 WebGL/OpenGL 一致）
//   - **世界坐标**：右手系，镜头默认位于 +Z 朝 -Z 观察
//
// # 核心转换公式
//
//	ndcX = px/width*2 - 1
//	ndcY = -(py/height)*2 + 1
//	section = round(scrollOffset / viewportHeight)
package utils

import "math"

// PointerToNDC 将像素坐标转换为归一化设备坐标
//
// 视口尺寸非正时返回 (0, 0)，即屏幕中心。
func PointerToNDC(px, py, width, height float64) (x, y float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return float32(px/width*2 - 1), float32(-(py/height)*2 + 1)
}

// NDCToPixel 将归一化设备坐标转换回像素坐标
func NDCToPixel(x, y float32, width, height float64) (px, py float64) {
	return (float64(x) + 1) / 2 * width, (1 - float64(y)) / 2 * height
}

// SectionIndex 返回滚动偏移所在的分区序号
//
// 分区高度等于视口高度；视口高度非正时返回 0。
func SectionIndex(scrollOffset, viewportHeight float64) int {
	if viewportHeight <= 0 {
		return 0
	}
	return int(math.Round(scrollOffset / viewportHeight))
}

// ClampScroll 将滚动偏移限制在 [0, (sections-1)*viewportHeight]
func ClampScroll(scrollOffset, viewportHeight float64, sections int) float64 {
	maxOffset := float64(sections-1) * viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	return math.Max(0, math.Min(maxOffset, scrollOffset))
}
