package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time,
// and owns the frame scheduler that drives Startable scenes.
type SceneManager struct {
	currentScene Scene
	scheduler    *TickScheduler
	elapsed      time.Duration
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		currentScene: nil,
		scheduler:    NewTickScheduler(),
	}
}

// SwitchTo changes the active scene to the provided scene.
// Startable scenes receive the manager's scheduler and begin their frame loop.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	// 旧场景预约的帧不再执行
	sm.scheduler = NewTickScheduler()

	if startable, ok := scene.(Startable); ok {
		startable.Start(sm.scheduler)
		log.Printf("[SceneManager] 场景已启动帧循环 (%T)", scene)
	}
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Scheduler 返回驱动当前场景的调度器
func (sm *SceneManager) Scheduler() *TickScheduler {
	return sm.scheduler
}

// Elapsed 返回累计的宿主循环时间
func (sm *SceneManager) Elapsed() time.Duration {
	return sm.elapsed
}

// Update advances the host clock and updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene == nil {
		return
	}

	sm.elapsed += time.Duration(deltaTime * float64(time.Second))

	if _, ok := sm.currentScene.(Startable); ok {
		sm.scheduler.Tick(sm.elapsed)
		return
	}
	sm.currentScene.Update(deltaTime)
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
