package systems

import (
	"sort"

	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/utils"
)

// minSpritePixels 精灵的最小像素尺寸，保证远处的点仍然可见
const minSpritePixels = 1.0

// ProjectedPoint 投影到屏幕上的一个点
type ProjectedPoint struct {
	// X / Y 像素坐标
	X, Y float32

	// Depth 到镜头平面的距离
	Depth float32

	// Size 精灵像素边长（已按深度衰减）
	Size float32

	// R / G / B 颜色（0-1）
	R, G, B float32
}

// PointProjector 把所有可见点云投影到屏幕
//
// 结果按深度由远到近排序，依次绘制即可得到正确的遮挡关系。
// 返回的切片在下一次 Project 调用时被复用。
type PointProjector struct {
	entityManager *ecs.EntityManager
	points        []ProjectedPoint
}

// NewPointProjector 创建投影器
func NewPointProjector(em *ecs.EntityManager) *PointProjector {
	return &PointProjector{entityManager: em}
}

// Project 投影所有未隐藏的点云
//
// sizeScale 是精灵尺寸的全局倍率。视锥外的点被丢弃。
func (p *PointProjector) Project(view utils.CameraView, sizeScale float32) []ProjectedPoint {
	p.points = p.points[:0]

	entities := ecs.GetEntitiesWith2[
		*components.TransformComponent,
		*components.PointCloudComponent,
	](p.entityManager)

	for _, id := range entities {
		cloud, _ := ecs.GetComponent[*components.PointCloudComponent](p.entityManager, id)
		if cloud.Hidden || cloud.PointCount() == 0 {
			continue
		}

		world := utils.WorldMatrix(p.entityManager, id)
		size := cloud.Size * sizeScale
		hasColors := len(cloud.Colors) >= len(cloud.Positions)

		positions := cloud.Positions
		for i := 0; i+2 < len(positions); i += 3 {
			wp := utils.TransformPoint(world, positions[i], positions[i+1], positions[i+2])
			sx, sy, depth, ok := view.Project(wp)
			if !ok {
				continue
			}

			pixels := view.PointSizePixels(size, depth)
			if pixels < minSpritePixels {
				pixels = minSpritePixels
			}

			pt := ProjectedPoint{X: sx, Y: sy, Depth: depth, Size: pixels}
			if hasColors {
				pt.R, pt.G, pt.B = cloud.Colors[i], cloud.Colors[i+1], cloud.Colors[i+2]
			} else {
				pt.R, pt.G, pt.B = cloud.Tint[0], cloud.Tint[1], cloud.Tint[2]
			}
			p.points = append(p.points, pt)
		}

		cloud.Dirty = false
	}

	sort.SliceStable(p.points, func(i, j int) bool {
		return p.points[i].Depth > p.points[j].Depth
	})
	return p.points
}
