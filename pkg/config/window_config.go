package config

// 窗口配置常量
const (
	// DefaultWindowWidth 默认窗口宽度（像素）
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 默认窗口高度（像素）
	DefaultWindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Daffodil"

	// SceneConfigPath 嵌入的场景配置路径
	SceneConfigPath = "data/scene.yaml"
)
