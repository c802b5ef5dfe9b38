// daffodil-term 在终端中运行水仙花场景
//
// 用法：
//
//	go run ./cmd/daffodil-term [--config scene.yaml] [--seed 42] [--verbose]
//
// 鼠标移动排斥花瓣，滚轮/PgUp/PgDn/Home/End 滚动，b 切换背景粒子，p 切换视差，q 或 Esc 退出。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/daffodil/pkg/app"
	"github.com/gonewx/daffodil/pkg/config"
	"github.com/gonewx/daffodil/pkg/game"
	"github.com/gonewx/daffodil/pkg/scenes"
	"github.com/gonewx/daffodil/pkg/termview"
)

var (
	verbose    = flag.Bool("verbose", false, "输出日志到 stderr（会干扰终端画面，建议重定向）")
	configPath = flag.String("config", "", "场景配置文件路径（默认使用内置配置）")
	seed       = flag.Int64("seed", 0, "背景粒子随机种子（0 表示使用配置文件中的值）")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daffodil-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var sceneConfig *config.SceneConfig
	var err error
	if *configPath != "" {
		sceneConfig, err = app.LoadSceneConfig(app.Config{ConfigPath: *configPath, Seed: *seed})
	} else {
		// 终端版本不嵌入文件，直接使用内置默认值
		sceneConfig = config.DefaultSceneConfig()
		if *seed != 0 {
			sceneConfig.Background.Seed = *seed
		}
	}
	if err != nil {
		return err
	}

	settings, _ := game.NewSettingsManager(game.OpenSettingsStore(app.AppName))
	scene, err := scenes.NewFlowerScene(sceneConfig, game.NewInteractionState(1, 1, 0), settings)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	termview.NewViewer(screen, scene).Run(ctx)
	return nil
}
