package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gonewx/daffodil/internal/flower"
)

// getProjectRoot returns the project root directory.
func getProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	// This file is at pkg/config/scene_config_test.go
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// TestDefaultSceneConfig 测试默认配置
func TestDefaultSceneConfig(t *testing.T) {
	cfg := DefaultSceneConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(cfg.Parts))
	}
	if cfg.Parts[0].Flower != flower.DefaultPetals() {
		t.Error("petals part should use DefaultPetals()")
	}
	if cfg.Parts[1].Flower.Cols != flower.DefaultCols/2 {
		t.Errorf("trumpet cols = %d, want %d", cfg.Parts[1].Flower.Cols, flower.DefaultCols/2)
	}
	if cfg.Interaction.Radius != 1.2 || cfg.Interaction.Strength != 0.3 || cfg.Interaction.LerpSpeed != 0.04 {
		t.Errorf("unexpected interaction defaults: %+v", cfg.Interaction)
	}
}

// TestSectionTableLookup 测试分区姿态查表
func TestSectionTableLookup(t *testing.T) {
	table := DefaultSceneConfig().Sections

	tests := []struct {
		name    string
		section int
		want    SectionPose
	}{
		{"Neutral0", 0, SectionPose{}},
		{"Neutral1", 1, SectionPose{}},
		{"Reveal", 2, SectionPose{Rotation: Vec3{0.5, -0.5, -1}, Position: Vec3{3.15, 7.1, -3.5}}},
		{"BeyondTable", 3, SectionPose{}},
		{"Negative", -1, SectionPose{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Lookup(tt.section); got != tt.want {
				t.Errorf("Lookup(%d) = %+v, want %+v", tt.section, got, tt.want)
			}
		})
	}
}

// TestParseSceneConfig_PartialOverride 测试部分字段覆盖
func TestParseSceneConfig_PartialOverride(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte("interaction:\n  radius: 2.5\n"))
	if err != nil {
		t.Fatalf("ParseSceneConfig error: %v", err)
	}
	if cfg.Interaction.Radius != 2.5 {
		t.Errorf("radius = %v, want 2.5", cfg.Interaction.Radius)
	}
	// 未提及的字段保持默认值
	if cfg.Interaction.Strength != 0.3 {
		t.Errorf("strength = %v, want default 0.3", cfg.Interaction.Strength)
	}
	if len(cfg.Parts) != 2 {
		t.Errorf("parts replaced unexpectedly: %d", len(cfg.Parts))
	}
}

// TestParseSceneConfig_Invalid 测试非法配置
func TestParseSceneConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"BadYAML", "parts: [", "parse"},
		{"ZeroRows", "parts:\n  - name: broken\n    pointSize: 0.05\n    flower: { scale: 1, rows: 0, cols: 4 }\n", "broken"},
		{"NoParts", "parts: []\n", "no parts"},
		{"BadClip", "camera:\n  near: 5\n  far: 1\n", "clip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

// TestSceneYAMLMatchesDefaults 测试 data/scene.yaml 与内置默认值一致
func TestSceneYAMLMatchesDefaults(t *testing.T) {
	path := filepath.Join(getProjectRoot(), SceneConfigPath)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("scene.yaml not found: %v", err)
	}

	cfg, err := LoadSceneConfigFile(path)
	if err != nil {
		t.Fatalf("LoadSceneConfigFile error: %v", err)
	}

	def := DefaultSceneConfig()
	for i := range def.Parts {
		if cfg.Parts[i] != def.Parts[i] {
			t.Errorf("part %d differs:\n yaml=%+v\n default=%+v", i, cfg.Parts[i], def.Parts[i])
		}
	}
	if cfg.Interaction != def.Interaction || cfg.Camera != def.Camera || cfg.Background != def.Background {
		t.Error("scene.yaml scalar sections differ from defaults")
	}
	if len(cfg.Sections) != len(def.Sections) {
		t.Fatalf("sections length = %d, want %d", len(cfg.Sections), len(def.Sections))
	}
	for i := range def.Sections {
		if cfg.Sections[i] != def.Sections[i] {
			t.Errorf("section %d = %+v, want %+v", i, cfg.Sections[i], def.Sections[i])
		}
	}
}

// TestLoadSceneConfigFile_Missing 测试文件不存在
func TestLoadSceneConfigFile_Missing(t *testing.T) {
	_, err := LoadSceneConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
