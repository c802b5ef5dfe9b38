// verify_geometry 生成场景中每个花朵部件的点云并输出统计信息
//
// 用于调整 scene.yaml 参数时快速检查点数、包围盒、居中误差和颜色范围，无需打开窗口。
//
// 用法：
//
//	go run ./cmd/verify_geometry [--config data/scene.yaml] [--part trumpet]
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/gonewx/daffodil/internal/flower"
	"github.com/gonewx/daffodil/pkg/config"
)

var (
	configPath = flag.String("config", "", "场景配置文件路径（默认使用内置默认值）")
	partName   = flag.String("part", "", "只检查指定名称的部件")
)

func main() {
	flag.Parse()

	sceneConfig := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		sceneConfig = loaded
	}

	checked := 0
	failed := false
	for _, part := range sceneConfig.Parts {
		if *partName != "" && part.Name != *partName {
			continue
		}
		checked++
		if !report(part) {
			failed = true
		}
	}

	if checked == 0 {
		fmt.Fprintf(os.Stderr, "❌ 没有名为 %q 的部件\n", *partName)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}

// report 打印一个部件的统计信息，返回检查是否通过
func report(part config.PartConfig) bool {
	cfg := part.Flower
	grid := flower.Generate(cfg)

	fmt.Printf("=== %s ===\n", part.Name)
	fmt.Printf("网格: %d x %d = %d 点 (期望 %d)\n", cfg.Rows, cfg.Cols, grid.PointCount(), cfg.Rows*cfg.Cols)

	min, max := grid.Bounds()
	fmt.Printf("包围盒: min=(%.4f, %.4f, %.4f) max=(%.4f, %.4f, %.4f)\n",
		min[0], min[1], min[2], max[0], max[1], max[2])

	centerErr := 0.0
	for axis := 0; axis < 3; axis++ {
		centerErr = math.Max(centerErr, math.Abs(float64(min[axis]+max[axis])/2))
	}
	fmt.Printf("居中误差: %.2e\n", centerErr)

	lo, hi := colorRange(grid.Colors)
	fmt.Printf("颜色范围: min=(%.3f, %.3f, %.3f) max=(%.3f, %.3f, %.3f)\n",
		lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])

	ok := grid.PointCount() == cfg.Rows*cfg.Cols && len(grid.Colors) == len(grid.Positions) && centerErr < 1e-4
	if ok {
		fmt.Println("✅ 通过")
	} else {
		fmt.Println("❌ 失败")
	}
	fmt.Println()
	return ok
}

// colorRange 返回每个通道的最小值和最大值
func colorRange(colors []float32) (lo, hi [3]float32) {
	if len(colors) < 3 {
		return lo, hi
	}
	copy(lo[:], colors[:3])
	copy(hi[:], colors[:3])
	for i := 3; i+2 < len(colors); i += 3 {
		for c := 0; c < 3; c++ {
			lo[c] = float32(math.Min(float64(lo[c]), float64(colors[i+c])))
			hi[c] = float32(math.Max(float64(hi[c]), float64(colors[i+c])))
		}
	}
	return lo, hi
}
