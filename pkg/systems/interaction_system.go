package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/utils"
)

// maxForceFactor 距离为 0 时排斥力相对 strength 的倍数
const maxForceFactor = 0.8

// InteractionSystem 指针排斥与回弹
//
// 每帧执行：
//  1. 从镜头穿过指针发射射线，命中可交互点云时更新影响点；未命中保留上一帧的值
//  2. 对每个可交互点云的每个点：用静止位置的世界坐标判定距离，
//     半径内沿远离影响点的方向推开实时位置，半径外按 LerpSpeed 比例回弹
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	state         *game.InteractionState
	config        config.InteractionConfig
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(em *ecs.EntityManager, state *game.InteractionState, cfg config.InteractionConfig) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		state:         state,
		config:        cfg,
	}
}

// Update 执行一帧交互更新
//
// 没有可交互点云时什么也不做。
func (s *InteractionSystem) Update(view utils.CameraView) {
	targets := ecs.GetEntitiesWith3[
		*components.TransformComponent,
		*components.PointCloudComponent,
		*components.InteractiveComponent,
	](s.entityManager)
	if len(targets) == 0 {
		return
	}

	if s.state.PointerSeen {
		ray := view.RayFromNDC(s.state.PointerX, s.state.PointerY)
		if hit, ok := s.Raycast(ray, targets); ok {
			s.state.InfluencePoint = hit
		}
	}

	for _, id := range targets {
		cloud, ok := ecs.GetComponent[*components.PointCloudComponent](s.entityManager, id)
		if !ok || cloud.PointCount() == 0 {
			continue
		}
		world := utils.WorldMatrix(s.entityManager, id)
		DisplacePoints(cloud, world, s.state.InfluencePoint, s.config)
	}
}

// Raycast 返回射线与点云最近命中处的射线上的点
//
// 点到射线的距离小于 RaycastThreshold 视为命中，命中点取射线上离该点最近的位置，
// 多个命中时取离射线起点最近的一个。使用实时位置，被推开的点同样可以命中。
func (s *InteractionSystem) Raycast(ray utils.Ray, targets []ecs.EntityID) (mgl32.Vec3, bool) {
	thresholdSq := s.config.RaycastThreshold * s.config.RaycastThreshold

	var best mgl32.Vec3
	bestDist := float32(math.Inf(1))
	found := false

	for _, id := range targets {
		cloud, ok := ecs.GetComponent[*components.PointCloudComponent](s.entityManager, id)
		if !ok {
			continue
		}
		world := utils.WorldMatrix(s.entityManager, id)

		positions := cloud.Positions
		for i := 0; i+2 < len(positions); i += 3 {
			p := utils.TransformPoint(world, positions[i], positions[i+1], positions[i+2])
			closest := ray.ClosestPoint(p)
			if closest.Sub(p).LenSqr() >= thresholdSq {
				continue
			}
			dist := closest.Sub(ray.Origin).Len()
			if dist < bestDist {
				bestDist = dist
				best = closest
				found = true
			}
		}
	}

	return best, found
}

// PushForce 返回距离影响点 d 处的排斥力
//
//	force = (0.8 - d/radius) * strength，下限为 0
//
// radius 非正时没有排斥。
func PushForce(d, radius, strength float32) float32 {
	if radius <= 0 {
		return 0
	}
	force := (maxForceFactor - d/radius) * strength
	if force < 0 {
		return 0
	}
	return force
}

// DisplacePoints 对一个点云执行一帧推开或回弹
//
// 距离用静止位置变换到世界空间后计算；推开方向是世界空间方向，
// 直接叠加到局部坐标的实时位置上（父节点旋转时方向与视觉略有偏差，保持原有手感）。
// 静止位置与影响点重合时方向为零，不推开。
func DisplacePoints(cloud *components.PointCloudComponent, world mgl32.Mat4, influence mgl32.Vec3, cfg config.InteractionConfig) {
	live := cloud.Positions
	rest := cloud.Original
	n := len(live)
	if len(rest) < n {
		n = len(rest)
	}
	if n < 3 {
		return
	}

	for i := 0; i+2 < n; i += 3 {
		restWorld := utils.TransformPoint(world, rest[i], rest[i+1], rest[i+2])
		offset := restWorld.Sub(influence)
		d := offset.Len()

		if d < cfg.Radius {
			force := PushForce(d, cfg.Radius, cfg.Strength)
			if force == 0 || d == 0 {
				continue
			}
			dir := offset.Mul(1 / d)
			live[i] += dir[0] * force
			live[i+1] += dir[1] * force
			live[i+2] += dir[2] * force
			continue
		}

		relax(live, rest, i, cfg.LerpSpeed)
	}

	cloud.Dirty = true
}

// relax 让第 i 个点向静止位置回弹 speed 比例的剩余偏移
func relax(live, rest []float32, i int, speed float32) {
	live[i] = utils.Approach(live[i], rest[i], speed)
	live[i+1] = utils.Approach(live[i+1], rest[i+1], speed)
	live[i+2] = utils.Approach(live[i+2], rest[i+2], speed)
}
