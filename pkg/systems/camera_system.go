package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/utils"
)

// CameraSystem 管理镜头的滚动下移与指针视差。
//
// 镜头实体挂在视差支架实体下：
//   - 镜头局部 Y 直接由滚动距离决定（不平滑）
//   - 支架位置每帧以 Smoothing 比例逼近指针视差目标
type CameraSystem struct {
	entityManager *ecs.EntityManager
	state         *game.InteractionState
	config        config.CameraConfig
	rigEntity     ecs.EntityID // 视差支架实体ID
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头系统，同时创建支架和镜头实体。
func NewCameraSystem(em *ecs.EntityManager, state *game.InteractionState, cfg config.CameraConfig) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		state:         state,
		config:        cfg,
	}

	cs.rigEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.rigEntity, &components.TransformComponent{})

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.TransformComponent{
		Position: mgl32.Vec3{0, 0, cfg.Distance},
		Parent:   cs.rigEntity,
	})
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		FovY:     cfg.FovY,
		Near:     cfg.Near,
		Far:      cfg.Far,
		Distance: cfg.Distance,
	})

	return cs
}

// RigEntity 返回视差支架实体ID
func (cs *CameraSystem) RigEntity() ecs.EntityID {
	return cs.rigEntity
}

// CameraEntity 返回镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

// Update 更新镜头位置。
func (cs *CameraSystem) Update() {
	camera, ok := ecs.GetComponent[*components.TransformComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	camera.Position[1] = -float32(cs.state.ScrollFraction()) * cs.config.SectionDistance

	rig, ok := ecs.GetComponent[*components.TransformComponent](cs.entityManager, cs.rigEntity)
	if !ok {
		return
	}

	var target mgl32.Vec3
	if cs.state.ParallaxEnabled {
		target = mgl32.Vec3{
			cs.state.PointerX * cs.config.Parallax,
			-cs.state.PointerY * cs.config.Parallax,
			0,
		}
	}
	rig.Position[0] = utils.Approach(rig.Position[0], target[0], cs.config.Smoothing)
	rig.Position[1] = utils.Approach(rig.Position[1], target[1], cs.config.Smoothing)
}

// View 返回当前帧的镜头矩阵，视口尺寸取自交互状态。
func (cs *CameraSystem) View() utils.CameraView {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		cam = &components.CameraComponent{FovY: cs.config.FovY, Near: cs.config.Near, Far: cs.config.Far}
	}

	world := utils.WorldMatrix(cs.entityManager, cs.cameraEntity)
	eye := utils.TransformPoint(world, 0, 0, 0)

	return utils.NewCameraView(eye, cam.FovY, cam.Near, cam.Far,
		float32(cs.state.ViewportWidth), float32(cs.state.ViewportHeight))
}
