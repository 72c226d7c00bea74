package carousel

import (
	"log"
	"math"
	"time"
)

// State 拖拽引擎状态
type State int

const (
	// StateIdle 空闲
	StateIdle State = iota
	// StateDragging 拖拽中（指针按下）
	StateDragging
	// StateSettling 已发出吸附目标，等待过渡完成
	StateSettling
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDragging:
		return "Dragging"
	case StateSettling:
		return "Settling"
	default:
		return "Unknown"
	}
}

// Decision 一次释放的吸附决策
type Decision struct {
	Jump     int           // 相对当前索引的跳转张数（带符号，-2..2）
	Duration time.Duration // 过渡时长
	Velocity float64       // 释放速度 (px/ms)
	Slides   float64       // 拖动距离折合的张数
}

// Resolve 根据拖动距离与耗时计算吸附决策
//
// 规则：
//   - |diff| < MinDragDistance: 回弹，Jump = 0
//   - 距离折合张数 > LongDragSlides 时跨两张，否则一张
//   - 速度 > FlickVelocity 且张数 > FlickMinSlides 时强制两张（速度只能升级）
//   - 跨度最终限制在 MaxJump 以内
//
// 过渡时长 = max(300, 550 - |v|*100)，跨两张 +150，最终不超过 400ms。
//
// 参数：
//   - diff: 释放点与按下点的水平差（像素），向右为正
//   - elapsed: 按下到释放的耗时，非正值按 1ms 处理
//   - slideSize: 有效幻灯片尺寸，必须大于 0
func Resolve(diff float64, elapsed time.Duration, slideSize float64) Decision {
	elapsedMs := float64(elapsed) / float64(time.Millisecond)
	if elapsedMs < minElapsedMs {
		elapsedMs = minElapsedMs
	}

	velocity := diff / elapsedMs
	speed := math.Abs(velocity)
	distance := math.Abs(diff)
	slides := distance / slideSize

	jump := 0
	if distance >= MinDragDistance {
		if slides <= 1.0 {
			jump = 1
		} else if slides > LongDragSlides {
			jump = 2
		} else {
			jump = 1
		}

		if speed > FlickVelocity && slides > FlickMinSlides {
			jump = 2
		}

		if jump > MaxJump {
			jump = MaxJump
		}

		// 向右拖动回到上一张
		if diff > 0 {
			jump = -jump
		}
	}

	return Decision{
		Jump:     jump,
		Duration: settleDuration(speed, jump),
		Velocity: velocity,
		Slides:   slides,
	}
}

// settleDuration 计算过渡时长：速度越快越短（有下限），跨两张加时，整体封顶
func settleDuration(speed float64, jump int) time.Duration {
	ms := math.Max(durationFloorMs, durationBaseMs-speed*durationVelocityScale)
	if jump == 2 || jump == -2 {
		ms += multiSlideBonusMs
	}
	ms = math.Min(ms, durationCapMs)
	return time.Duration(ms * float64(time.Millisecond))
}

// dragState 仅在一次按下与对应释放之间存在
type dragState struct {
	originX      float64
	originTime   time.Time
	originOffset float64
	offset       float64
	lastX        float64
}

// DragEngine 拖拽-吸附状态机
//
// 状态：Idle → Dragging（按下）→ Settling（释放/导航）→ Idle（过渡完成）。
// Settling 由 AnimationGate 的 animating 标志表示，两者始终一致。
type DragEngine struct {
	target RenderTarget
	gate   *AnimationGate
	clock  Clock

	slideSize float64
	current   int

	drag *dragState

	// baseline 上一次稳定时的平移量，过渡结束后重新同步
	baseline float64
}

// NewDragEngine 创建拖拽引擎
//
// 参数：
//   - target: 渲染目标
//   - gate: 动画闸门，与 Carousel 共享
//   - clock: 时间源，为 nil 时使用系统时钟
//   - slideSize: 初始幻灯片尺寸
func NewDragEngine(target RenderTarget, gate *AnimationGate, clock Clock, slideSize float64) *DragEngine {
	if clock == nil {
		clock = systemClock{}
	}
	if gate == nil {
		gate = &AnimationGate{}
	}
	return &DragEngine{
		target:    target,
		gate:      gate,
		clock:     clock,
		slideSize: slideSize,
	}
}

// State 返回当前状态
func (e *DragEngine) State() State {
	if e.drag != nil {
		return StateDragging
	}
	if e.gate.Animating() {
		return StateSettling
	}
	return StateIdle
}

// Dragging 是否正在拖拽
func (e *DragEngine) Dragging() bool {
	return e.drag != nil
}

// CurrentIndex 返回当前已吸附的虚拟索引
func (e *DragEngine) CurrentIndex() int {
	return e.current
}

// SlideSize 返回引擎使用的幻灯片尺寸
func (e *DragEngine) SlideSize() float64 {
	return e.slideSize
}

// Offset 返回当前平移量：拖拽中为实时值，否则为稳定基线
func (e *DragEngine) Offset() float64 {
	if e.drag != nil {
		return e.drag.offset
	}
	return e.baseline
}

// LastX 返回拖拽中最后已知的指针坐标
func (e *DragEngine) LastX() (float64, bool) {
	if e.drag == nil {
		return 0, false
	}
	return e.drag.lastX, true
}

// Start 开始拖拽（指针按下 / 触摸开始）
//
// 允许打断进行中的吸附动画：起始平移量从渲染目标读回，
// 因此新的拖拽从屏幕上的真实位置开始。
//
// 返回：
//   - bool: 渲染目标未就绪时返回 false（不做任何事）
func (e *DragEngine) Start(x float64) bool {
	offset, ok := e.target.Translate()
	if !ok {
		return false
	}

	e.gate.Reset()
	e.drag = &dragState{
		originX:      x,
		originTime:   e.clock.Now(),
		originOffset: offset,
		offset:       offset,
		lastX:        x,
	}

	// 拖拽期间平移必须即时生效，同时冻结在读回的位置
	e.target.SetTransition(0)
	e.target.SetTranslate(offset)
	return true
}

// Move 拖拽移动（指针移动 / 触摸移动）
//
// 实时平移量被限制在当前索引左右各 MaxJump 张加 OvershootSlides 的橡皮筋范围内。
func (e *DragEngine) Move(x float64) {
	if e.drag == nil {
		return
	}

	delta := x - e.drag.originX
	if math.Abs(delta) > MoveThreshold {
		e.gate.MarkMoved()
	}

	minTranslate, maxTranslate := e.translateBounds()
	e.drag.offset = clamp(e.drag.originOffset+delta, minTranslate, maxTranslate)
	e.drag.lastX = x
	e.target.SetTranslate(e.drag.offset)
}

// translateBounds 返回拖拽允许的平移范围
func (e *DragEngine) translateBounds() (float64, float64) {
	size := e.slideSize
	cur := float64(e.current)
	minTranslate := -(cur+MaxJump)*size - OvershootSlides*size
	maxTranslate := -(cur-MaxJump)*size + OvershootSlides*size
	return minTranslate, maxTranslate
}

// End 结束拖拽（指针抬起 / 触摸结束 / 拖拽中离开视口）
//
// 返回：
//   - Decision: 吸附决策
//   - bool: 当前没有拖拽时返回 false
func (e *DragEngine) End(x float64) (Decision, bool) {
	if e.drag == nil {
		return Decision{}, false
	}

	diff := x - e.drag.originX
	elapsed := e.clock.Now().Sub(e.drag.originTime)
	e.drag = nil

	d := Resolve(diff, elapsed, e.slideSize)
	from := e.current
	e.settle(from+d.Jump, d.Duration)

	log.Printf("[DragEngine] release: diff=%.1fpx v=%.3fpx/ms index %d -> %d (%v)",
		diff, d.Velocity, from, e.current, d.Duration)
	return d, true
}

// MoveSlide 显式导航到指定虚拟索引（自动播放、前后按钮）
//
// 动画进行中时忽略，避免指令排队重叠；仅拖拽中不受影响。
//
// 参数：
//   - index: 目标虚拟索引
//   - d: 过渡时长，非正值使用 SlideSpeed
//
// 返回：
//   - bool: 是否被接受
func (e *DragEngine) MoveSlide(index int, d time.Duration) bool {
	if e.gate.Animating() {
		return false
	}
	if d <= 0 {
		d = SlideSpeed
	}
	e.settle(index, d)
	return true
}

// settle 发出新的吸附目标并进入 Settling
func (e *DragEngine) settle(index int, d time.Duration) {
	e.gate.Begin()
	e.current = index
	e.baseline = -float64(index) * e.slideSize
	e.target.SetTransition(d)
	e.target.SetTranslate(e.baseline)
}

// TransitionEnd 渲染目标通知过渡完成
//
// 清除 Settling，并把基线重新同步为 -CurrentIndex*SlideSize；
// 若屏幕位置与基线有偏差则立即校正。
func (e *DragEngine) TransitionEnd() {
	if !e.gate.Animating() {
		return
	}
	e.gate.Complete()
	e.baseline = -float64(e.current) * e.slideSize

	if e.drag != nil {
		return
	}
	if x, ok := e.target.Translate(); ok && math.Abs(x-e.baseline) > 0.5 {
		e.target.SetTransition(0)
		e.target.SetTranslate(e.baseline)
	}
}

// SetSlideSize 更新幻灯片尺寸（视口尺寸变化）
//
// 空闲时立即把渲染目标移动到新的基线；动画中则改写动画终点；
// 拖拽中只更新尺寸，释放时再按新尺寸吸附。
func (e *DragEngine) SetSlideSize(size float64) {
	if size <= 0 || size == e.slideSize {
		return
	}
	e.slideSize = size
	e.baseline = -float64(e.current) * size

	switch {
	case e.drag != nil:
		return
	case e.gate.Animating():
		e.target.SetTranslate(e.baseline)
	default:
		e.target.SetTransition(0)
		e.target.SetTranslate(e.baseline)
	}
}

// Reposition 立即把渲染目标放到当前基线（初始化时使用）
func (e *DragEngine) Reposition() {
	e.target.SetTransition(0)
	e.target.SetTranslate(e.baseline)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
