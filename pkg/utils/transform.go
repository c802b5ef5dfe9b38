package utils

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/ecs"
)

// maxHierarchyDepth 防止错误的父子关系形成环时无限递归
const maxHierarchyDepth = 16

// LocalMatrix 计算局部变换矩阵：T × Rx × Ry × Rz
func LocalMatrix(t *components.TransformComponent) mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(mgl32.HomogRotate3DX(t.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2]))
}

// WorldMatrix 沿父链累乘得到实体的世界矩阵
//
// 实体没有 TransformComponent 时视为单位变换。
func WorldMatrix(em *ecs.EntityManager, id ecs.EntityID) mgl32.Mat4 {
	m := mgl32.Ident4()
	for depth := 0; id != 0 && depth < maxHierarchyDepth; depth++ {
		t, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			break
		}
		m = LocalMatrix(t).Mul4(m)
		id = t.Parent
	}
	return m
}

// TransformPoint 用仿射矩阵变换一个点（列主序，省去齐次除法）
func TransformPoint(m mgl32.Mat4, x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{
		m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
	}
}
