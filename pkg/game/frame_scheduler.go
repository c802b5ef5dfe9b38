package game

import "time"

// FrameCallback 帧回调，now 为宿主循环启动以来的累计时间
type FrameCallback func(now time.Duration)

// FrameScheduler 请求下一帧的能力
//
// 场景不直接依赖 ebiten 的主循环：它在启动时拿到一个调度器，
// 每帧结束前调用 RequestFrame 预约下一帧。测试可以注入 TickScheduler
// 并手动推进时间。
type FrameScheduler interface {
	RequestFrame(cb FrameCallback)
}

// TickScheduler 由外部循环驱动的调度器
//
// 每次 Tick 只执行 Tick 之前预约的回调；回调内部再次预约的回调
// 推迟到下一次 Tick，与浏览器 requestAnimationFrame 的语义一致。
// 不是并发安全的：所有调用都应发生在渲染线程上。
type TickScheduler struct {
	pending []FrameCallback
	frames  uint64
	last    time.Duration
}

// NewTickScheduler 创建空的调度器
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// RequestFrame 预约下一次 Tick 时执行 cb
func (s *TickScheduler) RequestFrame(cb FrameCallback) {
	if cb == nil {
		return
	}
	s.pending = append(s.pending, cb)
}

// Tick 执行当前所有已预约的回调，返回执行的回调数量
func (s *TickScheduler) Tick(now time.Duration) int {
	if len(s.pending) == 0 {
		return 0
	}

	batch := s.pending
	s.pending = nil
	for _, cb := range batch {
		cb(now)
	}

	s.frames++
	s.last = now
	return len(batch)
}

// Pending 返回等待执行的回调数量
func (s *TickScheduler) Pending() int {
	return len(s.pending)
}

// Frames 返回至少执行过一个回调的 Tick 次数
func (s *TickScheduler) Frames() uint64 {
	return s.frames
}

// LastTick 返回最近一次执行回调时的时间
func (s *TickScheduler) LastTick() time.Duration {
	return s.last
}
