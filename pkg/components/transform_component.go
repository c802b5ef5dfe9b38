package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/pkg/ecs"
)

// TransformComponent 存储实体相对父节点的局部变换
//
// 世界矩阵 = 父节点世界矩阵 × T(Position) × Rx × Ry × Rz（欧拉角 XYZ 顺序，弧度）。
// 没有缩放：所有点云都以 1:1 比例挂在父节点下。
type TransformComponent struct {
	// Position 局部位置（世界单位）
	Position mgl32.Vec3

	// Rotation 局部欧拉角（弧度，XYZ 顺序）
	Rotation mgl32.Vec3

	// Parent 父实体ID，0 表示挂在场景根节点
	Parent ecs.EntityID
}
