package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/daffodil/pkg/app"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/embedded"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	configPath  = flag.String("config", "", "场景配置文件路径（默认使用内置 data/scene.yaml）")
	inspectAddr = flag.String("inspect", "", "检查器 WebSocket 监听地址，如 127.0.0.1:8090")
	seed        = flag.Int64("seed", 0, "背景粒子随机种子（0 表示使用配置文件中的值）")
	width       = flag.Int("width", config.DefaultWindowWidth, "窗口宽度")
	height      = flag.Int("height", config.DefaultWindowHeight, "窗口高度")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		InspectAddr: *inspectAddr,
		Seed:        *seed,
	})
	if err != nil {
		// NewApp 可能已静默日志
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer viewer.Close()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(viewer.Settings().GetSettings().Fullscreen)

	if err := ebiten.RunGame(viewer); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
