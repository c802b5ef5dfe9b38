package scenes

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/internal/flower"
	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/telemetry"
)

// smallSceneConfig 返回低分辨率的默认场景，保持测试快速
func smallSceneConfig() *config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	for i := range cfg.Parts {
		cfg.Parts[i].Flower.Rows = 12
		cfg.Parts[i].Flower.Cols = 24
	}
	cfg.Background.Count = 50
	return cfg
}

func newTestScene(t *testing.T) *FlowerScene {
	t.Helper()
	state := game.NewInteractionState(800, 600, 0)
	scene, err := NewFlowerScene(smallSceneConfig(), state, nil)
	if err != nil {
		t.Fatalf("NewFlowerScene error: %v", err)
	}
	return scene
}

// fakePublisher 记录发布的快照
type fakePublisher struct {
	snapshots []telemetry.Snapshot
	commands  chan telemetry.Command
}

func (p *fakePublisher) Publish(s telemetry.Snapshot) {
	p.snapshots = append(p.snapshots, s)
}

func (p *fakePublisher) Commands() <-chan telemetry.Command {
	return p.commands
}

// TestNewFlowerScene_Entities 测试场景实体的创建
func TestNewFlowerScene_Entities(t *testing.T) {
	scene := newTestScene(t)
	em := scene.EntityManager()

	if len(scene.PartEntities()) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(scene.PartEntities()))
	}

	for _, id := range scene.PartEntities() {
		cloud, ok := ecs.GetComponent[*components.PointCloudComponent](em, id)
		if !ok {
			t.Fatal("part missing PointCloudComponent")
		}
		if cloud.PointCount() != 12*24 {
			t.Errorf("%s: %d points, want %d", cloud.Name, cloud.PointCount(), 12*24)
		}
		if len(cloud.Colors) != len(cloud.Positions) || len(cloud.Original) != len(cloud.Positions) {
			t.Errorf("%s: buffer lengths differ", cloud.Name)
		}
		if !ecs.HasComponent[*components.InteractiveComponent](em, id) {
			t.Errorf("%s should be interactive", cloud.Name)
		}

		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if transform.Parent != scene.GroupEntity() {
			t.Errorf("%s should be parented to the flower group", cloud.Name)
		}
	}

	bg, ok := ecs.GetComponent[*components.PointCloudComponent](em, scene.BackgroundEntity())
	if !ok || bg.PointCount() != 50 {
		t.Fatalf("background should have 50 points")
	}
	if ecs.HasComponent[*components.InteractiveComponent](em, scene.BackgroundEntity()) {
		t.Error("background must not be interactive")
	}
}

// TestNewFlowerScene_OriginalIsSnapshot 测试静止位置是独立的拷贝
func TestNewFlowerScene_OriginalIsSnapshot(t *testing.T) {
	scene := newTestScene(t)
	cloud, _ := ecs.GetComponent[*components.PointCloudComponent](scene.EntityManager(), scene.PartEntities()[0])

	before := cloud.Original[3]
	cloud.Positions[3] += 10
	if cloud.Original[3] != before {
		t.Error("Original must not share storage with Positions")
	}
}

// TestNewFlowerScene_MatchesGenerator 测试部件几何与生成器输出一致
func TestNewFlowerScene_MatchesGenerator(t *testing.T) {
	cfg := smallSceneConfig()
	scene := newTestScene(t)
	cloud, _ := ecs.GetComponent[*components.PointCloudComponent](scene.EntityManager(), scene.PartEntities()[1])

	grid := flower.Generate(cfg.Parts[1].Flower)
	for i := range grid.Positions {
		if grid.Positions[i] != cloud.Original[i] {
			t.Fatalf("position %d = %v, want %v", i, cloud.Original[i], grid.Positions[i])
		}
	}
}

// TestNewFlowerScene_BackgroundDeterministic 测试相同种子生成相同背景
func TestNewFlowerScene_BackgroundDeterministic(t *testing.T) {
	a := newTestScene(t)
	b := newTestScene(t)

	bgA, _ := ecs.GetComponent[*components.PointCloudComponent](a.EntityManager(), a.BackgroundEntity())
	bgB, _ := ecs.GetComponent[*components.PointCloudComponent](b.EntityManager(), b.BackgroundEntity())
	for i := range bgA.Positions {
		if bgA.Positions[i] != bgB.Positions[i] {
			t.Fatalf("background position %d differs", i)
		}
	}

	for i := 0; i < len(bgA.Positions); i += 3 {
		x, y, z := bgA.Positions[i], bgA.Positions[i+1], bgA.Positions[i+2]
		if x < -5 || x > 5 || z < -5 || z > 5 || y > 2 || y < -2 {
			t.Fatalf("background point %d out of range: (%v, %v, %v)", i/3, x, y, z)
		}
	}
}

// TestNewFlowerScene_InvalidConfig 测试非法配置
func TestNewFlowerScene_InvalidConfig(t *testing.T) {
	cfg := smallSceneConfig()
	cfg.Parts[0].Flower.Rows = 0

	if _, err := NewFlowerScene(cfg, game.NewInteractionState(800, 600, 0), nil); err == nil {
		t.Error("expected error for zero rows")
	}
}

// TestFlowerScene_SchedulerDrivesFrames 测试注入的调度器驱动帧循环
func TestFlowerScene_SchedulerDrivesFrames(t *testing.T) {
	scene := newTestScene(t)
	scheduler := game.NewTickScheduler()

	scene.Start(scheduler)
	if scheduler.Pending() != 1 {
		t.Fatalf("Start should request one frame, pending = %d", scheduler.Pending())
	}

	for i := 1; i <= 5; i++ {
		scheduler.Tick(time.Duration(i) * 16 * time.Millisecond)
	}

	if scene.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", scene.Frames())
	}
	if scheduler.Pending() != 1 {
		t.Errorf("each frame should request the next, pending = %d", scheduler.Pending())
	}
}

// TestFlowerScene_PointerPushesPoints 测试指针命中后点被推开并在移开后回弹
func TestFlowerScene_PointerPushesPoints(t *testing.T) {
	scene := newTestScene(t)
	state := scene.State()
	em := scene.EntityManager()

	// 指针对准第一个部件的中心
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, scene.PartEntities()[0])
	sx, sy, _, ok := scene.View().Project(transform.Position)
	if !ok {
		t.Fatal("part center should be visible")
	}
	state.SetPointerPixels(float64(sx), float64(sy))

	scene.Update(1.0 / 60)

	displaced, maxOffset := totalOffsets(scene.Snapshot())
	if displaced == 0 {
		t.Fatal("expected displaced points after the pointer hit")
	}
	if state.InfluencePoint == (mgl32.Vec3{}) {
		t.Error("influence point should follow the ray hit")
	}

	// 影响点移到远处，所有点回弹
	state.PointerSeen = false
	state.InfluencePoint = mgl32.Vec3{100, 100, 100}
	for i := 0; i < 30; i++ {
		scene.Update(1.0 / 60)
	}
	_, after := totalOffsets(scene.Snapshot())
	if after >= maxOffset {
		t.Errorf("max offset did not decrease: %v -> %v", maxOffset, after)
	}
}

// totalOffsets 汇总所有部件的位移点数和最大偏移
func totalOffsets(snap telemetry.Snapshot) (displaced int, maxOffset float32) {
	for _, part := range snap.Parts {
		displaced += part.Displaced
		if part.MaxOffset > maxOffset {
			maxOffset = part.MaxOffset
		}
	}
	return displaced, maxOffset
}

// TestFlowerScene_ScrollReveal 测试滚动到第 3 个分区后分组逼近展示姿态
func TestFlowerScene_ScrollReveal(t *testing.T) {
	scene := newTestScene(t)
	scene.State().SetScroll(2 * 600)

	for i := 0; i < 400; i++ {
		scene.Update(1.0 / 60)
	}

	snap := scene.Snapshot()
	if snap.Section != 2 {
		t.Errorf("section = %d, want 2", snap.Section)
	}
	want := [3]float32{3.15, 7.1, -3.5}
	for axis := 0; axis < 3; axis++ {
		if math.Abs(float64(snap.GroupPosition[axis]-want[axis])) > 1e-3 {
			t.Errorf("group position = %v, want %v", snap.GroupPosition, want)
			break
		}
	}
	if math.Abs(float64(snap.Camera[1]+8)) > 1e-3 {
		t.Errorf("camera y = %v, want -8", snap.Camera[1])
	}
}

// TestFlowerScene_SettingsApplied 测试设置同步到背景和视差
func TestFlowerScene_SettingsApplied(t *testing.T) {
	scene := newTestScene(t)
	scene.Settings().SetShowBackground(false)
	scene.Settings().SetParallax(false)

	scene.Update(1.0 / 60)

	bg, _ := ecs.GetComponent[*components.PointCloudComponent](scene.EntityManager(), scene.BackgroundEntity())
	if !bg.Hidden {
		t.Error("background should be hidden")
	}
	if scene.State().ParallaxEnabled {
		t.Error("parallax should be disabled")
	}
}

// TestFlowerScene_Publisher 测试快照发布和远程命令
func TestFlowerScene_Publisher(t *testing.T) {
	scene := newTestScene(t)
	pub := &fakePublisher{commands: make(chan telemetry.Command, 2)}
	scene.SetPublisher(pub)

	scroll := 600.0
	show := false
	pub.commands <- telemetry.Command{ScrollY: &scroll}
	pub.commands <- telemetry.Command{ShowBackground: &show}

	scene.Update(1.0 / 60)

	if len(pub.snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(pub.snapshots))
	}
	snap := pub.snapshots[0]
	if snap.Frame != 1 || snap.Section != 1 || snap.ScrollY != 600 {
		t.Errorf("snapshot = frame %d section %d scroll %v", snap.Frame, snap.Section, snap.ScrollY)
	}
	if len(snap.Parts) != 2 || snap.Parts[0].Name != "petals" {
		t.Errorf("parts = %+v", snap.Parts)
	}
	if scene.Settings().GetSettings().ShowBackground {
		t.Error("ShowBackground command was not applied")
	}
}
