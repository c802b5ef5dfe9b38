// Package termview 在终端中渲染水仙花场景
//
// 每个字符单元显示上下两个"像素"（上半块字符 ▀，前景色为上像素，背景色为下像素），
// 因此视口高度是终端行数的两倍。场景逻辑与桌面端完全相同：同一个 FlowerScene
// 由 TickScheduler 驱动，指针和滚动来自终端鼠标事件。
package termview

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/scenes"
	"github.com/gonewx/daffodil/pkg/systems"
)

// frameInterval 终端刷新间隔（约 30 FPS）
const frameInterval = 33 * time.Millisecond

// wheelFraction 滚轮每格滚动的视口高度比例
const wheelFraction = 0.25

// halfBlock 上半块字符
const halfBlock = '▀'

// Viewer 终端查看器
type Viewer struct {
	screen    tcell.Screen
	scene     *scenes.FlowerScene
	scheduler *game.TickScheduler
	projector *systems.PointProjector

	background tcell.Color
	pixels     []tcell.Color // 宽 × (行数*2)，每帧重建
	width      int
	height     int // 像素高度（终端行数 * 2）
}

// NewViewer 创建查看器并启动场景的帧循环
//
// screen 必须已经 Init。
func NewViewer(screen tcell.Screen, scene *scenes.FlowerScene) *Viewer {
	bg := systems.BackgroundColor
	v := &Viewer{
		screen:     screen,
		scene:      scene,
		scheduler:  game.NewTickScheduler(),
		projector:  systems.NewPointProjector(scene.EntityManager()),
		background: tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)),
	}
	screen.EnableMouse()
	v.Resize()
	scene.Start(v.scheduler)
	return v
}

// Resize 按终端尺寸更新视口
func (v *Viewer) Resize() {
	cols, rows := v.screen.Size()
	v.width, v.height = cols, rows*2
	v.scene.State().Resize(v.width, v.height)
	if n := v.width * v.height; cap(v.pixels) < n {
		v.pixels = make([]tcell.Color, n)
	} else {
		v.pixels = v.pixels[:n]
	}
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	state := v.scene.State()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyPgDn, tcell.KeyDown:
			state.ScrollBy(float64(state.ViewportHeight))
		case tcell.KeyPgUp, tcell.KeyUp:
			state.ScrollBy(-float64(state.ViewportHeight))
		case tcell.KeyHome:
			state.SetScroll(0)
		case tcell.KeyEnd:
			state.ScrollToEnd()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'b':
				settings := v.scene.Settings()
				settings.ToggleAndSave(&settings.GetSettings().ShowBackground)
			case 'p':
				settings := v.scene.Settings()
				settings.ToggleAndSave(&settings.GetSettings().Parallax)
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		// 单元中心；每行对应两个像素
		state.SetPointerPixels(float64(x)+0.5, float64(y*2)+1)

		buttons := ev.Buttons()
		if buttons&tcell.WheelDown != 0 {
			state.ScrollBy(float64(state.ViewportHeight) * wheelFraction)
		}
		if buttons&tcell.WheelUp != 0 {
			state.ScrollBy(-float64(state.ViewportHeight) * wheelFraction)
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.Resize()
	}

	return true
}

// Step 推进一帧并重绘
func (v *Viewer) Step(now time.Duration) {
	v.scheduler.Tick(now)
	v.Draw()
}

// Draw 把投影后的点写入像素缓冲并输出到终端
func (v *Viewer) Draw() {
	for i := range v.pixels {
		v.pixels[i] = v.background
	}

	// 由远到近覆盖，最近的点留在像素上
	scale := float32(v.scene.Settings().GetSettings().PointScale)
	for _, p := range v.projector.Project(v.scene.View(), scale) {
		x, y := int(p.X), int(p.Y)
		if x < 0 || y < 0 || x >= v.width || y >= v.height {
			continue
		}
		v.pixels[y*v.width+x] = tcell.NewRGBColor(channel(p.R), channel(p.G), channel(p.B))
	}

	for row := 0; row < v.height/2; row++ {
		for col := 0; col < v.width; col++ {
			top := v.pixels[(row*2)*v.width+col]
			bottom := v.pixels[(row*2+1)*v.width+col]
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			v.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	v.screen.Show()
}

// Run 运行事件循环直到用户退出或 ctx 取消
func (v *Viewer) Run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// 屏幕已 Fini
				return
			}
			events <- ev
		}
	}()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.Step(time.Since(start))
		}
	}
}

// channel 把 0-1 颜色分量转换为 0-255
func channel(c float32) int32 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return int32(c*255 + 0.5)
}
