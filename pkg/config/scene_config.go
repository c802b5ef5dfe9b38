package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/daffodil/internal/flower"
	"github.com/gonewx/daffodil/pkg/embedded"
)

// Vec3 YAML 中的三维向量 {x, y, z}
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec 转换为 mgl32.Vec3
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// PartConfig 花朵的一个组成部分（花瓣、副冠）
type PartConfig struct {
	// Name 部件名称
	Name string `yaml:"name"`

	// Flower 几何生成参数
	Flower flower.Config `yaml:"flower"`

	// Position 相对花朵分组的局部位置
	Position Vec3 `yaml:"position"`

	// PointSize 精灵尺寸（世界单位）
	PointSize float32 `yaml:"pointSize"`

	// Interactive 是否响应指针排斥
	Interactive bool `yaml:"interactive"`
}

// InteractionConfig 指针排斥参数
type InteractionConfig struct {
	// Radius 影响半径（世界单位）
	Radius float32 `yaml:"radius"`

	// Strength 排斥强度
	Strength float32 `yaml:"strength"`

	// LerpSpeed 回弹速度（每帧剩余偏移的比例）
	LerpSpeed float32 `yaml:"lerpSpeed"`

	// RaycastThreshold 射线命中点的最大距离
	RaycastThreshold float32 `yaml:"raycastThreshold"`
}

// CameraConfig 镜头与滚动参数
type CameraConfig struct {
	FovY     float32 `yaml:"fovY"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`

	// SectionDistance 每个滚动分区对应的镜头下移距离
	SectionDistance float32 `yaml:"sectionDistance"`

	// Parallax 指针视差幅度
	Parallax float32 `yaml:"parallax"`

	// Smoothing 视差每帧逼近比例
	Smoothing float32 `yaml:"smoothing"`

	// ScrollSections 可滚动的分区数
	ScrollSections int `yaml:"scrollSections"`
}

// GroupConfig 花朵分组的姿态平滑参数
type GroupConfig struct {
	Smoothing float32 `yaml:"smoothing"`
}

// BackgroundConfig 背景粒子参数
type BackgroundConfig struct {
	Count     int     `yaml:"count"`
	Spread    float32 `yaml:"spread"`
	PointSize float32 `yaml:"pointSize"`
	Seed      int64   `yaml:"seed"`
}

// SectionPose 某个滚动分区对应的花朵分组目标姿态
type SectionPose struct {
	// Rotation 欧拉角（弧度）
	Rotation Vec3 `yaml:"rotation"`
	Position Vec3 `yaml:"position"`
}

// SectionTable 分区姿态表，下标即分区序号
type SectionTable []SectionPose

// Lookup 返回分区对应的姿态，超出表范围返回中性姿态 {0,0,0}
func (t SectionTable) Lookup(section int) SectionPose {
	if section < 0 || section >= len(t) {
		return SectionPose{}
	}
	return t[section]
}

// SceneConfig 场景配置（data/scene.yaml）
type SceneConfig struct {
	Parts       []PartConfig      `yaml:"parts"`
	Interaction InteractionConfig `yaml:"interaction"`
	Camera      CameraConfig      `yaml:"camera"`
	Group       GroupConfig       `yaml:"group"`
	Sections    SectionTable      `yaml:"sections"`
	Background  BackgroundConfig  `yaml:"background"`
}

// DefaultSceneConfig 返回默认场景配置
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Parts: []PartConfig{
			{
				Name:        "petals",
				Flower:      flower.DefaultPetals(),
				Position:    Vec3{X: 1.8},
				PointSize:   0.05,
				Interactive: true,
			},
			{
				Name:        "trumpet",
				Flower:      flower.DefaultTrumpet(),
				Position:    Vec3{X: 1.8, Z: 1.25},
				PointSize:   0.05,
				Interactive: true,
			},
		},
		Interaction: InteractionConfig{
			Radius:           1.2,
			Strength:         0.3,
			LerpSpeed:        0.04,
			RaycastThreshold: 1.0,
		},
		Camera: CameraConfig{
			FovY:            35,
			Near:            0.1,
			Far:             1000,
			Distance:        5,
			SectionDistance: 4,
			Parallax:        0.5,
			Smoothing:       0.05,
			ScrollSections:  3,
		},
		Group: GroupConfig{Smoothing: 0.05},
		Sections: SectionTable{
			{},
			{},
			{
				Rotation: Vec3{X: 0.5, Y: -0.5, Z: -1},
				Position: Vec3{X: 3.15, Y: 7.1, Z: -3.5},
			},
		},
		Background: BackgroundConfig{
			Count:     1000,
			Spread:    10,
			PointSize: 0.02,
			Seed:      1,
		},
	}
}

// Validate 检查配置是否可用于构建场景
func (c *SceneConfig) Validate() error {
	if len(c.Parts) == 0 {
		return fmt.Errorf("scene has no parts")
	}
	for i, part := range c.Parts {
		if err := part.Flower.Validate(); err != nil {
			return fmt.Errorf("part %d (%s): %w", i, part.Name, err)
		}
		if part.PointSize <= 0 {
			return fmt.Errorf("part %d (%s): pointSize must be positive", i, part.Name)
		}
	}
	if c.Interaction.Radius <= 0 {
		return fmt.Errorf("interaction radius must be positive, got %v", c.Interaction.Radius)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid camera clip planes: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Background.Count < 0 {
		return fmt.Errorf("background count must not be negative, got %d", c.Background.Count)
	}
	return nil
}

// ParseSceneConfig 解析 YAML 场景配置
//
// 未出现在 YAML 中的字段保留默认值；列表（parts、sections）整体替换。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// LoadSceneConfigFile 从磁盘加载场景配置
func LoadSceneConfigFile(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config %s: %w", path, err)
	}
	return ParseSceneConfig(data)
}

// LoadEmbeddedSceneConfig 加载嵌入的 data/scene.yaml
func LoadEmbeddedSceneConfig() (*SceneConfig, error) {
	data, err := embedded.ReadFile(SceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene config: %w", err)
	}
	return ParseSceneConfig(data)
}
