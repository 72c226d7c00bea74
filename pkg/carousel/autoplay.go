package carousel

import "time"

// AutoplayTimer 自动播放计时器
//
// 由游戏循环以帧间隔驱动，不持有 goroutine。
// 每隔 interval 触发一次 tick；CurrentIndex 变化时计时重新开始，
// 因此用户导航后不会立刻被自动播放接管。
type AutoplayTimer struct {
	interval time.Duration
	elapsed  time.Duration

	lastIndex int
	running   bool
	paused    bool // 指针悬停在视口上
	enabled   bool // 用户开关
}

// NewAutoplayTimer 创建计时器（默认启用但未运行，需调用 Start）
func NewAutoplayTimer(interval time.Duration) *AutoplayTimer {
	if interval <= 0 {
		interval = DefaultPlayTime
	}
	return &AutoplayTimer{
		interval: interval,
		enabled:  true,
	}
}

// Start 开始计时
func (a *AutoplayTimer) Start(index int) {
	a.running = true
	a.elapsed = 0
	a.lastIndex = index
}

// Stop 停止计时，之后 Advance 不再触发
func (a *AutoplayTimer) Stop() {
	a.running = false
	a.elapsed = 0
}

// Running 是否在计时
func (a *AutoplayTimer) Running() bool {
	return a.running
}

// SetInterval 修改间隔，计时重新开始
func (a *AutoplayTimer) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	a.interval = interval
	a.elapsed = 0
}

// Interval 返回当前间隔
func (a *AutoplayTimer) Interval() time.Duration {
	return a.interval
}

// Pause 悬停暂停（tick 仍按时发生，但不会前进）
func (a *AutoplayTimer) Pause() { a.paused = true }

// Resume 取消悬停暂停
func (a *AutoplayTimer) Resume() { a.paused = false }

// Paused 是否悬停暂停
func (a *AutoplayTimer) Paused() bool { return a.paused }

// SetEnabled 用户开关
func (a *AutoplayTimer) SetEnabled(enabled bool) { a.enabled = enabled }

// Enabled 用户是否启用了自动播放
func (a *AutoplayTimer) Enabled() bool { return a.enabled }

// Active 当前 tick 是否允许前进（运行中、已启用且未暂停）
func (a *AutoplayTimer) Active() bool {
	return a.running && a.enabled && !a.paused
}

// Advance 推进计时
//
// 参数：
//   - dt: 距上一帧的时间
//   - index: 当前已吸附索引，与上次不同则计时清零
//
// 返回：
//   - bool: 本帧是否到达一次 tick
func (a *AutoplayTimer) Advance(dt time.Duration, index int) bool {
	if !a.running {
		return false
	}
	if index != a.lastIndex {
		a.lastIndex = index
		a.elapsed = 0
	}

	a.elapsed += dt
	if a.elapsed < a.interval {
		return false
	}
	a.elapsed %= a.interval
	return true
}
