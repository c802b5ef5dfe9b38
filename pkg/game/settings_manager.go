package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器的持久化设置
type ViewerSettings struct {
	// 显示设置
	Fullscreen     bool `yaml:"fullscreen"`     // 启动时是否全屏
	ShowBackground bool `yaml:"showBackground"` // 是否绘制背景粒子

	// 交互设置
	Parallax bool `yaml:"parallax"` // 指针视差开关

	// PointScale 精灵尺寸倍率 MinPointScale ~ MaxPointScale
	PointScale float64 `yaml:"pointScale"`
}

// 精灵尺寸倍率范围
const (
	MinPointScale = 0.25
	MaxPointScale = 4.0
)

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Fullscreen:     false,
		ShowBackground: true,
		Parallax:       true,
		PointScale:     1.0,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// OpenSettingsStore 打开 gdata 存储
//
// 打开失败时记录日志并返回 nil，调用方以降级模式运行（仅内存设置）。
func OpenSettingsStore(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留用于与存储初始化错误对齐，目前总是 nil
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 已保存数据中缺失的字段保留默认值。
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.PointScale = clampPointScale(loaded.PointScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowBackground 设置背景粒子开关
func (sm *SettingsManager) SetShowBackground(enabled bool) {
	sm.settings.ShowBackground = enabled
}

// SetParallax 设置指针视差开关
func (sm *SettingsManager) SetParallax(enabled bool) {
	sm.settings.Parallax = enabled
}

// SetPointScale 设置精灵尺寸倍率，限制在 MinPointScale ~ MaxPointScale
func (sm *SettingsManager) SetPointScale(scale float64) {
	sm.settings.PointScale = clampPointScale(scale)
}

// ToggleAndSave 翻转一个布尔设置并立即持久化
//
// 保存失败只记录日志，内存中的设置仍然生效。
func (sm *SettingsManager) ToggleAndSave(field *bool) bool {
	*field = !*field
	if err := sm.Save(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	return *field
}

// clampPointScale 将倍率限制在有效范围内，0 或 NaN 视为 1
func clampPointScale(scale float64) float64 {
	if scale != scale || scale == 0 {
		return 1.0
	}
	if scale < MinPointScale {
		return MinPointScale
	}
	if scale > MaxPointScale {
		return MaxPointScale
	}
	return scale
}
