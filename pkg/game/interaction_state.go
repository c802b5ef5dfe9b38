package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/pkg/utils"
)

// InteractionState 场景的共享交互状态
//
// 输入处理（指针、滚动、窗口尺寸）写入，帧更新读取。两者都在渲染线程上执行，
// 帧更新总是看到本帧开始时的最新值（后写覆盖先写），不需要加锁。
type InteractionState struct {
	// PointerX / PointerY 指针的归一化设备坐标（-1..1，Y 向上）
	PointerX, PointerY float32

	// PointerSeen 是否收到过指针输入
	// 未收到前不发射射线，影响点保持在原点
	PointerSeen bool

	// InfluencePoint 最近一次射线命中得到的影响点（世界坐标）
	// 射线未命中时保留上一帧的值
	InfluencePoint mgl32.Vec3

	// ScrollY 滚动偏移（像素）
	ScrollY float64

	// Section 当前滚动分区序号
	Section int

	// ViewportWidth / ViewportHeight 视口像素尺寸
	ViewportWidth, ViewportHeight int

	// MaxSections 可滚动的分区数，ScrollY 被限制在 [0, (MaxSections-1)*ViewportHeight]
	MaxSections int

	// ParallaxEnabled 是否启用指针视差
	ParallaxEnabled bool

	// TargetRotation / TargetPosition 当前分区对应的花朵分组目标姿态
	TargetRotation mgl32.Vec3
	TargetPosition mgl32.Vec3
}

// NewInteractionState 创建交互状态
func NewInteractionState(width, height, maxSections int) *InteractionState {
	return &InteractionState{
		ViewportWidth:   width,
		ViewportHeight:  height,
		MaxSections:     maxSections,
		ParallaxEnabled: true,
	}
}

// SetPointerPixels 根据像素坐标更新指针 NDC
func (s *InteractionState) SetPointerPixels(px, py float64) {
	s.PointerX, s.PointerY = utils.PointerToNDC(px, py, float64(s.ViewportWidth), float64(s.ViewportHeight))
	s.PointerSeen = true
}

// ScrollBy 按像素增量滚动，返回滚动后的偏移
func (s *InteractionState) ScrollBy(delta float64) float64 {
	return s.SetScroll(s.ScrollY + delta)
}

// SetScroll 设置滚动偏移并同步分区序号
func (s *InteractionState) SetScroll(offset float64) float64 {
	if s.MaxSections > 0 {
		offset = utils.ClampScroll(offset, float64(s.ViewportHeight), s.MaxSections)
	}
	s.ScrollY = offset
	s.Section = utils.SectionIndex(s.ScrollY, float64(s.ViewportHeight))
	return s.ScrollY
}

// ScrollToEnd 滚动到最后一个分区
func (s *InteractionState) ScrollToEnd() float64 {
	return s.SetScroll(float64(s.MaxSections-1) * float64(s.ViewportHeight))
}

// Resize 更新视口尺寸
//
// 滚动偏移按视口高度等比缩放，保持当前分区不变。
// 尺寸与当前相同时不做任何事，返回 false。
func (s *InteractionState) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == s.ViewportWidth && height == s.ViewportHeight {
		return false
	}

	if s.ViewportHeight > 0 {
		s.ScrollY = s.ScrollY / float64(s.ViewportHeight) * float64(height)
	}
	s.ViewportWidth, s.ViewportHeight = width, height
	s.SetScroll(s.ScrollY)
	return true
}

// ScrollFraction 返回以视口高度为单位的滚动距离
func (s *InteractionState) ScrollFraction() float64 {
	if s.ViewportHeight <= 0 {
		return 0
	}
	return s.ScrollY / float64(s.ViewportHeight)
}
