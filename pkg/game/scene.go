package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a renderable scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Startable 是一个可选接口，用于自行驱动帧循环的场景
//
// SceneManager 切换到实现此接口的场景时调用 Start 并注入调度器，
// 之后不再直接调用该场景的 Update：场景在自己的帧回调里更新，
// 并在回调结束前预约下一帧。
type Startable interface {
	Start(scheduler FrameScheduler)
}
