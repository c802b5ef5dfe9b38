package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/daffodil/internal/flower"
	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/systems"
	"github.com/gonewx/daffodil/pkg/telemetry"
	"github.com/gonewx/daffodil/pkg/utils"
)

// SnapshotPublisher 接收每帧的场景快照并提供远程命令（检查器）
type SnapshotPublisher interface {
	Publish(s telemetry.Snapshot)
	Commands() <-chan telemetry.Command
}

// FlowerScene 水仙花点云场景
//
// 场景拥有自己的实体、交互状态和系统，不依赖任何包级变量，
// 因此可以同时存在多个互不影响的实例。帧循环通过注入的 FrameScheduler 驱动：
// Start 预约第一帧，之后每帧回调在结束前预约下一帧。
type FlowerScene struct {
	config   *config.SceneConfig
	state    *game.InteractionState
	settings *game.SettingsManager

	entityManager     *ecs.EntityManager
	interactionSystem *systems.InteractionSystem
	cameraSystem      *systems.CameraSystem
	poseSystem        *systems.PoseSystem
	renderSystem      *systems.RenderSystem // 首次 Draw 时创建

	groupEntity      ecs.EntityID
	partEntities     []ecs.EntityID
	backgroundEntity ecs.EntityID

	scheduler game.FrameScheduler
	lastFrame time.Duration
	started   bool
	frames    uint64

	publisher SnapshotPublisher
}

// NewFlowerScene 生成几何并创建场景
//
// settings 可为 nil，此时使用默认设置且不持久化。
func NewFlowerScene(cfg *config.SceneConfig, state *game.InteractionState, settings *game.SettingsManager) (*FlowerScene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cannot build flower scene: %w", err)
	}
	if settings == nil {
		settings, _ = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	scene := &FlowerScene{
		config:            cfg,
		state:             state,
		settings:          settings,
		entityManager:     em,
		interactionSystem: systems.NewInteractionSystem(em, state, cfg.Interaction),
		cameraSystem:      systems.NewCameraSystem(em, state, cfg.Camera),
		poseSystem:        systems.NewPoseSystem(em, state, cfg.Sections),
	}
	state.MaxSections = cfg.Camera.ScrollSections

	scene.groupEntity = em.CreateEntity()
	ecs.AddComponent(em, scene.groupEntity, &components.TransformComponent{})
	ecs.AddComponent(em, scene.groupEntity, &components.PoseTargetComponent{Smoothing: cfg.Group.Smoothing})

	for _, part := range cfg.Parts {
		scene.partEntities = append(scene.partEntities, scene.createPart(part))
	}
	scene.backgroundEntity = scene.createBackground(cfg.Background)

	scene.applySettings()
	return scene, nil
}

// createPart 生成一个花朵部件并挂到花朵分组下
func (s *FlowerScene) createPart(part config.PartConfig) ecs.EntityID {
	grid := flower.Generate(part.Flower)

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{
		Position: part.Position.Vec(),
		Parent:   s.groupEntity,
	})
	ecs.AddComponent(s.entityManager, id, &components.PointCloudComponent{
		Name:      part.Name,
		Positions: grid.Positions,
		Original:  append([]float32(nil), grid.Positions...),
		Colors:    grid.Colors,
		Size:      part.PointSize,
		Dirty:     true,
	})
	if part.Interactive {
		ecs.AddComponent(s.entityManager, id, &components.InteractiveComponent{})
	}

	log.Printf("[FlowerScene] 部件 %s: %d 个点 (%dx%d)", part.Name, grid.PointCount(), grid.Rows, grid.Cols)
	return id
}

// createBackground 生成随机分布的白色背景粒子，挂在场景根节点
//
// 粒子在 X/Z 上均匀分布于 [-spread/2, spread/2]，Y 覆盖镜头滚动经过的范围。
func (s *FlowerScene) createBackground(cfg config.BackgroundConfig) ecs.EntityID {
	rng := rand.New(rand.NewSource(cfg.Seed))
	sectionDistance := float64(s.config.Camera.SectionDistance)
	spread := float64(cfg.Spread)

	positions := make([]float32, 0, cfg.Count*3)
	for i := 0; i < cfg.Count; i++ {
		x := (rng.Float64() - 0.5) * spread
		y := sectionDistance*0.5 - rng.Float64()*sectionDistance
		z := (rng.Float64() - 0.5) * spread
		positions = append(positions, float32(x), float32(y), float32(z))
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{})
	ecs.AddComponent(s.entityManager, id, &components.PointCloudComponent{
		Name:      "background",
		Positions: positions,
		Original:  append([]float32(nil), positions...),
		Tint:      [3]float32{1, 1, 1},
		Size:      cfg.PointSize,
		Dirty:     true,
	})
	return id
}

// SetPublisher 设置快照发布者（检查器），nil 表示不发布
func (s *FlowerScene) SetPublisher(p SnapshotPublisher) {
	s.publisher = p
}

// Start 注入调度器并预约第一帧
func (s *FlowerScene) Start(scheduler game.FrameScheduler) {
	s.scheduler = scheduler
	s.started = false
	scheduler.RequestFrame(s.animate)
}

// animate 帧回调：更新一帧并预约下一帧
func (s *FlowerScene) animate(now time.Duration) {
	dt := 0.0
	if s.started {
		dt = (now - s.lastFrame).Seconds()
	}
	s.started = true
	s.lastFrame = now

	s.Update(dt)

	if s.scheduler != nil {
		s.scheduler.RequestFrame(s.animate)
	}
}

// Update 执行一帧更新
//
// 顺序：远程命令 → 设置 → 指针射线与排斥/回弹 → 镜头 → 花朵分组姿态 → 快照。
// 射线使用本帧镜头更新之前的矩阵。所有平滑都是按帧计算的固定比例，不使用 deltaTime。
func (s *FlowerScene) Update(deltaTime float64) {
	s.drainCommands()
	s.applySettings()

	s.interactionSystem.Update(s.cameraSystem.View())
	s.cameraSystem.Update()
	s.poseSystem.Update()

	s.frames++
	if s.publisher != nil {
		s.publisher.Publish(s.Snapshot())
	}
}

// drainCommands 处理所有待处理的远程命令，不阻塞
func (s *FlowerScene) drainCommands() {
	if s.publisher == nil {
		return
	}
	for {
		select {
		case cmd := <-s.publisher.Commands():
			if cmd.ScrollY != nil {
				s.state.SetScroll(*cmd.ScrollY)
			}
			if cmd.ShowBackground != nil {
				s.settings.SetShowBackground(*cmd.ShowBackground)
			}
		default:
			return
		}
	}
}

// applySettings 把持久化设置同步到交互状态和背景粒子
func (s *FlowerScene) applySettings() {
	settings := s.settings.GetSettings()
	s.state.ParallaxEnabled = settings.Parallax

	if bg, ok := ecs.GetComponent[*components.PointCloudComponent](s.entityManager, s.backgroundEntity); ok {
		bg.Hidden = !settings.ShowBackground
	}
}

// Draw 绘制场景
func (s *FlowerScene) Draw(screen *ebiten.Image) {
	if s.renderSystem == nil {
		s.renderSystem = systems.NewRenderSystem(s.entityManager)
	}
	s.renderSystem.Draw(screen, s.cameraSystem.View(), float32(s.settings.GetSettings().PointScale))
}

// Snapshot 返回当前场景状态
func (s *FlowerScene) Snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		Frame:     s.frames,
		TimeMs:    s.lastFrame.Milliseconds(),
		Pointer:   [2]float32{s.state.PointerX, s.state.PointerY},
		Influence: s.state.InfluencePoint,
		ScrollY:   s.state.ScrollY,
		Section:   s.state.Section,
		Camera:    s.cameraSystem.View().Eye,
	}

	if group, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.groupEntity); ok {
		snap.GroupRotation = group.Rotation
		snap.GroupPosition = group.Position
	}

	for _, id := range s.partEntities {
		cloud, ok := ecs.GetComponent[*components.PointCloudComponent](s.entityManager, id)
		if !ok {
			continue
		}
		snap.Parts = append(snap.Parts, telemetry.MeasureOffsets(cloud.Name, cloud.Positions, cloud.Original))
	}
	return snap
}

// EntityManager 返回场景的实体管理器
func (s *FlowerScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// View 返回当前镜头矩阵
func (s *FlowerScene) View() utils.CameraView {
	return s.cameraSystem.View()
}

// State 返回交互状态
func (s *FlowerScene) State() *game.InteractionState {
	return s.state
}

// Settings 返回设置管理器
func (s *FlowerScene) Settings() *game.SettingsManager {
	return s.settings
}

// Frames 返回已执行的帧数
func (s *FlowerScene) Frames() uint64 {
	return s.frames
}

// GroupEntity 返回花朵分组实体ID
func (s *FlowerScene) GroupEntity() ecs.EntityID {
	return s.groupEntity
}

// PartEntities 返回花朵部件实体ID（与配置中的部件顺序一致）
func (s *FlowerScene) PartEntities() []ecs.EntityID {
	return s.partEntities
}

// BackgroundEntity 返回背景粒子实体ID
func (s *FlowerScene) BackgroundEntity() ecs.EntityID {
	return s.backgroundEntity
}
