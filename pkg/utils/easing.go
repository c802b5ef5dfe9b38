package utils

import "github.com/go-gl/mathgl/mgl32"

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Approach 以固定比例逼近目标（每帧调用一次）
//
// 等价于 current += (target - current) * fraction。
// 指数衰减：无过冲，也不会在有限帧内精确到达目标。
func Approach(current, target, fraction float32) float32 {
	return current + (target-current)*fraction
}

// ApproachVec3 对三个分量分别调用 Approach
func ApproachVec3(current, target mgl32.Vec3, fraction float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Approach(current[0], target[0], fraction),
		Approach(current[1], target[1], fraction),
		Approach(current[2], target[2], fraction),
	}
}
