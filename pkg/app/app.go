// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/scenes"
	"github.com/gonewx/daffodil/pkg/telemetry"
	"github.com/gonewx/daffodil/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "daffodil"

// pointScaleStep 每次按 +/- 调整精灵尺寸的倍率
const pointScaleStep = 1.25

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空则使用嵌入的 data/scene.yaml
	ConfigPath string
	// InspectAddr 检查器 WebSocket 监听地址（如 "127.0.0.1:8090"），为空则不启动
	InspectAddr string
	// Seed 背景粒子随机种子，0 表示使用配置文件中的值
	Seed int64
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.FlowerScene
	state        *game.InteractionState
	settings     *game.SettingsManager
	verbose      bool
	cancel       context.CancelFunc

	lastPointerX, lastPointerY int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadSceneConfig 按启动配置加载场景配置
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源（使用 ConfigPath 时除外）。
func LoadSceneConfig(cfg Config) (*config.SceneConfig, error) {
	var sceneConfig *config.SceneConfig
	var err error
	if cfg.ConfigPath != "" {
		sceneConfig, err = config.LoadSceneConfigFile(cfg.ConfigPath)
		log.Printf("[Config] 加载场景配置: %s", cfg.ConfigPath)
	} else {
		sceneConfig, err = config.LoadEmbeddedSceneConfig()
		log.Printf("[Config] 加载嵌入场景配置: %s", config.SceneConfigPath)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Seed != 0 {
		sceneConfig.Background.Seed = cfg.Seed
	}
	return sceneConfig, nil
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig, err := LoadSceneConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}

	settings, _ := game.NewSettingsManager(game.OpenSettingsStore(AppName))
	state := game.NewInteractionState(config.DefaultWindowWidth, config.DefaultWindowHeight, sceneConfig.Camera.ScrollSections)

	scene, err := scenes.NewFlowerScene(sceneConfig, state, settings)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if cfg.InspectAddr != "" {
		hub := telemetry.NewHub()
		scene.SetPublisher(hub)
		go hub.Run(ctx)
		go func() {
			if err := telemetry.ListenAndServe(ctx, cfg.InspectAddr, hub); err != nil {
				log.Printf("[App] 检查器启动失败: %v", err)
			}
		}()
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		state:        state,
		settings:     settings,
		verbose:      cfg.Verbose,
		cancel:       cancel,
		lastPointerX: -1,
		lastPointerY: -1,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()
	a.handlePointer()
	a.handleScroll()

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// handleKeys 处理设置快捷键，修改后立即持久化
//   - F11：全屏
//   - B：背景粒子
//   - P：指针视差
//   - = / -：精灵尺寸
func (a *App) handleKeys() {
	settings := a.settings.GetSettings()

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.ToggleAndSave(&settings.Fullscreen)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		on := a.settings.ToggleAndSave(&settings.ShowBackground)
		log.Printf("[App] Background particles: %v", on)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		on := a.settings.ToggleAndSave(&settings.Parallax)
		log.Printf("[App] Parallax: %v", on)
	}

	scale := settings.PointScale
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		scale *= pointScaleStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		scale /= pointScaleStep
	}
	if scale != settings.PointScale {
		a.settings.SetPointScale(scale)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
}

// handlePointer 指针移动时更新 NDC；未移动过的指针不参与射线检测
func (a *App) handlePointer() {
	x, y := utils.GetPointerPosition()
	if x == a.lastPointerX && y == a.lastPointerY {
		return
	}
	a.lastPointerX, a.lastPointerY = x, y
	a.state.SetPointerPixels(float64(x), float64(y))
}

// handleScroll 处理滚轮和翻页键
func (a *App) handleScroll() {
	delta, jumpTop, jumpBottom := utils.ScrollDelta(float64(a.state.ViewportHeight))
	switch {
	case jumpTop:
		a.state.SetScroll(0)
	case jumpBottom:
		a.state.ScrollToEnd()
	case delta != 0:
		a.state.ScrollBy(delta)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑尺寸跟随窗口尺寸：镜头宽高比和渲染输出同步更新。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.state.ViewportWidth, a.state.ViewportHeight
	}
	if a.state.Resize(outsideWidth, outsideHeight) {
		log.Printf("[App] Resize: %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 停止检查器等后台任务
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
