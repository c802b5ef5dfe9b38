package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray 世界空间射线，Direction 为单位向量
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At 返回射线上参数 t 处的点
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ClosestPoint 返回射线上距 p 最近的点
// p 在射线起点后方时返回起点
func (r Ray) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	t := p.Sub(r.Origin).Dot(r.Direction)
	if t < 0 {
		return r.Origin
	}
	return r.At(t)
}

// DistanceSqToPoint 返回 p 到射线的平方距离
func (r Ray) DistanceSqToPoint(p mgl32.Vec3) float32 {
	return r.ClosestPoint(p).Sub(p).LenSqr()
}

// CameraView 一帧内固定的镜头矩阵
type CameraView struct {
	Eye        mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewProj   mgl32.Mat4

	// Width / Height 视口像素尺寸
	Width, Height float32
}

// NewCameraView 构建朝向 -Z 的透视镜头
//
// fovY 单位为度；视口尺寸非正时按 1x1 处理，避免除零。
func NewCameraView(eye mgl32.Vec3, fovY, near, far, width, height float32) CameraView {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	view := mgl32.LookAtV(eye, eye.Add(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(fovY), width/height, near, far)
	return CameraView{
		Eye:        eye,
		View:       view,
		Projection: proj,
		ViewProj:   proj.Mul4(view),
		Width:      width,
		Height:     height,
	}
}

// Aspect 返回视口宽高比
func (c CameraView) Aspect() float32 {
	return c.Width / c.Height
}

// RayFromNDC 从镜头位置穿过 NDC 坐标 (x, y) 发射射线
func (c CameraView) RayFromNDC(x, y float32) Ray {
	invViewProj := c.ViewProj.Inv()

	// 远平面上的点（NDC z = 1）
	farPoint := invViewProj.Mul4x1(mgl32.Vec4{x, y, 1.0, 1.0})
	farWorld := farPoint.Vec3().Mul(1.0 / farPoint[3])

	return Ray{
		Origin:    c.Eye,
		Direction: farWorld.Sub(c.Eye).Normalize(),
	}
}

// Project 将世界坐标投影到像素坐标
//
// 返回像素位置、视空间深度（到镜头平面的距离）以及是否位于视锥内。
func (c CameraView) Project(p mgl32.Vec3) (sx, sy, depth float32, ok bool) {
	m := c.ViewProj
	cx := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	cy := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	cz := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	cw := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if cw <= 0 {
		return 0, 0, 0, false
	}

	nx, ny, nz := cx/cw, cy/cw, cz/cw
	if nz < -1 || nz > 1 || math.IsNaN(float64(nx)) {
		return 0, 0, 0, false
	}

	sx = (nx + 1) / 2 * c.Width
	sy = (1 - ny) / 2 * c.Height
	return sx, sy, cw, true
}

// PointSizePixels 计算随深度衰减的精灵像素尺寸
//
//	pixels = size * (height / 2) / depth
func (c CameraView) PointSizePixels(size, depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return size * (c.Height / 2) / depth
}
