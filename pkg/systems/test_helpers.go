package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gonewx/daffodil/pkg/components"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/utils"
)

// testInteractionConfig 返回默认交互参数
// 这是一个测试辅助函数，被多个测试文件共享使用
func testInteractionConfig() config.InteractionConfig {
	return config.DefaultSceneConfig().Interaction
}

// createTestCloud 创建一个挂在根节点下的可交互点云实体
// positions 同时作为实时位置和静止位置
func createTestCloud(em *ecs.EntityManager, position mgl32.Vec3, positions ...float32) (ecs.EntityID, *components.PointCloudComponent) {
	id := em.CreateEntity()
	cloud := &components.PointCloudComponent{
		Name:      "test",
		Positions: append([]float32(nil), positions...),
		Original:  append([]float32(nil), positions...),
		Tint:      [3]float32{1, 1, 1},
		Size:      0.05,
	}
	ecs.AddComponent(em, id, &components.TransformComponent{Position: position})
	ecs.AddComponent(em, id, cloud)
	ecs.AddComponent(em, id, &components.InteractiveComponent{})
	return id, cloud
}

// testCameraView 返回位于 (0, 0, 5) 朝 -Z 的 800x600 镜头
func testCameraView() utils.CameraView {
	return utils.NewCameraView(mgl32.Vec3{0, 0, 5}, 35, 0.1, 1000, 800, 600)
}

// distance3 返回两个点之间的距离
func distance3(a, b []float32) float32 {
	return mgl32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}.Len()
}
