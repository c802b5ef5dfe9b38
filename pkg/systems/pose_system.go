package systems

import (
	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/utils"
)

// PoseSystem 根据滚动分区驱动花朵分组的姿态
//
// 当前分区在姿态表中查到目标旋转和位置，写入所有 PoseTargetComponent，
// 然后让对应 TransformComponent 的每个分量独立地以 Smoothing 比例逼近目标。
type PoseSystem struct {
	entityManager *ecs.EntityManager
	state         *game.InteractionState
	sections      config.SectionTable
}

// NewPoseSystem 创建姿态系统
func NewPoseSystem(em *ecs.EntityManager, state *game.InteractionState, sections config.SectionTable) *PoseSystem {
	return &PoseSystem{
		entityManager: em,
		state:         state,
		sections:      sections,
	}
}

// Update 更新目标并推进一帧平滑
func (s *PoseSystem) Update() {
	pose := s.sections.Lookup(s.state.Section)
	s.state.TargetRotation = pose.Rotation.Vec()
	s.state.TargetPosition = pose.Position.Vec()

	entities := ecs.GetEntitiesWith2[
		*components.TransformComponent,
		*components.PoseTargetComponent,
	](s.entityManager)

	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		target, _ := ecs.GetComponent[*components.PoseTargetComponent](s.entityManager, id)

		target.TargetRotation = s.state.TargetRotation
		target.TargetPosition = s.state.TargetPosition

		transform.Rotation = utils.ApproachVec3(transform.Rotation, target.TargetRotation, target.Smoothing)
		transform.Position = utils.ApproachVec3(transform.Position, target.TargetPosition, target.Smoothing)
	}
}
