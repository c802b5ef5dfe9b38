package components

// PointCloudComponent 一组以精灵形式渲染的点（花瓣、副冠、背景粒子）
//
// Positions 是每帧被交互系统原地修改的实时缓冲区；
// Original 是生成后立即拷贝的静止位置快照，之后永不修改，
// 用作回弹目标和距离判定的参考系。
type PointCloudComponent struct {
	// Name 点云名称（用于日志和检查器）
	Name string

	// Positions 实时位置缓冲区，每点 3 个 float32（局部坐标）
	Positions []float32

	// Original 静止位置快照，与 Positions 一一对应
	Original []float32

	// Colors 顶点颜色缓冲区（0-1），与 Positions 一一对应
	// 为 nil 时使用 Tint
	Colors []float32

	// Tint 无顶点颜色时的统一颜色
	Tint [3]float32

	// Size 精灵尺寸（世界单位，随深度衰减）
	Size float32

	// Dirty 位置缓冲区已修改，需要重新上传到绘制批次
	Dirty bool

	// Hidden 为 true 时跳过绘制（例如关闭背景粒子）
	Hidden bool
}

// PointCount 返回点数
func (c *PointCloudComponent) PointCount() int {
	return len(c.Positions) / 3
}
