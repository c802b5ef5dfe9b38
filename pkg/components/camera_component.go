package components

// CameraComponent 透视镜头参数
//
// 镜头实体的 TransformComponent 挂在视差支架实体下：
// 支架负责鼠标视差偏移，镜头自身的局部 Y 由滚动距离直接决定。
// 镜头始终朝向 -Z。
type CameraComponent struct {
	// FovY 垂直视场角（度）
	FovY float32

	// Near / Far 裁剪面
	Near float32
	Far  float32

	// Distance 镜头局部 Z（到场景原点平面的距离）
	Distance float32
}
