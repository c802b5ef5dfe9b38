package components

import "github.com/go-gl/mathgl/mgl32"

// PoseTargetComponent 分组实体的目标姿态
//
// PoseSystem 根据当前滚动分区写入目标值，并让 TransformComponent
// 每帧以 Smoothing 比例逼近目标。
type PoseTargetComponent struct {
	// TargetRotation 目标欧拉角（弧度）
	TargetRotation mgl32.Vec3

	// TargetPosition 目标位置
	TargetPosition mgl32.Vec3

	// Smoothing 每帧逼近比例（0-1）
	Smoothing float32
}
