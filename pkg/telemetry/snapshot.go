// Package telemetry 通过 WebSocket 向检查器推送场景状态
//
// 渲染线程每帧调用 Hub.Publish 投递最新快照（不阻塞，只保留最新一份），
// 广播协程把快照以 JSON 发送给所有连接的客户端。客户端可以发回 Command
// 远程滚动或切换背景，命令经缓冲通道交给渲染线程在下一帧开始时处理。
package telemetry

// Snapshot 一帧的场景状态
type Snapshot struct {
	Frame  uint64 `json:"frame"`
	TimeMs int64  `json:"timeMs"`

	// Pointer 指针 NDC
	Pointer [2]float32 `json:"pointer"`

	// Influence 影响点（世界坐标）
	Influence [3]float32 `json:"influence"`

	ScrollY float64 `json:"scrollY"`
	Section int     `json:"section"`

	// GroupRotation / GroupPosition 花朵分组当前姿态
	GroupRotation [3]float32 `json:"groupRotation"`
	GroupPosition [3]float32 `json:"groupPosition"`

	// Camera 镜头世界坐标
	Camera [3]float32 `json:"camera"`

	Parts []PartStats `json:"parts"`
}

// PartStats 一个点云的位移统计
type PartStats struct {
	Name   string `json:"name"`
	Points int    `json:"points"`

	// Displaced 偏离静止位置超过 DisplacedEpsilon 的点数
	Displaced int `json:"displaced"`

	// MaxOffset 最大偏移（局部单位）
	MaxOffset float32 `json:"maxOffset"`
}

// DisplacedEpsilon 统计位移点数时的阈值
const DisplacedEpsilon = 1e-3

// MeasureOffsets 统计实时位置相对静止位置的偏移
func MeasureOffsets(name string, live, rest []float32) PartStats {
	stats := PartStats{Name: name, Points: len(live) / 3}

	n := len(live)
	if len(rest) < n {
		n = len(rest)
	}
	for i := 0; i+2 < n; i += 3 {
		dx := live[i] - rest[i]
		dy := live[i+1] - rest[i+1]
		dz := live[i+2] - rest[i+2]
		sq := dx*dx + dy*dy + dz*dz
		if sq > DisplacedEpsilon*DisplacedEpsilon {
			stats.Displaced++
		}
		if sq > stats.MaxOffset*stats.MaxOffset {
			stats.MaxOffset = sqrt32(sq)
		}
	}
	return stats
}

// Command 客户端发来的控制命令，字段为 nil 表示不修改
type Command struct {
	// ScrollY 设置滚动偏移（像素）
	ScrollY *float64 `json:"scrollY,omitempty"`

	// ShowBackground 切换背景粒子
	ShowBackground *bool `json:"showBackground,omitempty"`
}
