// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ============================================================================
// 指针跟踪器 - 把鼠标/触摸的逐帧状态转换为离散事件
// ============================================================================

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerDown 在区域内按下（鼠标按下 / 触摸开始）
	PointerDown PointerEventKind = iota
	// PointerMove 按下后移动
	PointerMove
	// PointerUp 释放（鼠标抬起 / 触摸结束）
	PointerUp
	// PointerEnter 鼠标进入区域（触摸没有悬停概念）
	PointerEnter
	// PointerLeave 鼠标离开区域
	PointerLeave
)

// String 返回事件名称
func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerEnter:
		return "enter"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// PointerEvent 指针事件（屏幕坐标）
type PointerEvent struct {
	Kind  PointerEventKind
	X, Y  int
	Touch bool
}

// PointerSample 一帧的指针采样
type PointerSample struct {
	// Pressed 鼠标左键按下或存在活动触摸
	Pressed bool
	// X, Y 指针位置（触摸释放后为最后一次触摸位置）
	X, Y int
	// Touch 是否为触摸输入
	Touch bool
}

// PointerTracker 指针跟踪器
//
// 每帧调用一次 Update（或在测试中调用 Feed），得到按发生顺序排列的事件。
// 只有在区域内开始的按下才会被跟踪；鼠标在跟踪期间离开区域会先产生
// PointerLeave，之后的释放不再产生 PointerUp。
type PointerTracker struct {
	bounds image.Rectangle

	pressed  bool // 上一帧是否按下
	tracking bool // 是否正在跟踪一次区域内的按下
	hovering bool // 鼠标是否在区域内
	touch    bool // 当前跟踪的是否为触摸

	lastX, lastY int
	touchID      ebiten.TouchID
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// SetBounds 设置交互区域（屏幕坐标）
func (pt *PointerTracker) SetBounds(bounds image.Rectangle) {
	pt.bounds = bounds
}

// Bounds 返回交互区域
func (pt *PointerTracker) Bounds() image.Rectangle {
	return pt.bounds
}

// Tracking 是否正在跟踪按下
func (pt *PointerTracker) Tracking() bool {
	return pt.tracking
}

// Update 采样 Ebitengine 输入并返回本帧事件
func (pt *PointerTracker) Update() []PointerEvent {
	return pt.Feed(pt.sample())
}

// sample 采样当前帧的指针状态，优先检测触摸
func (pt *PointerTracker) sample() PointerSample {
	// 新的触摸开始
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 && pt.touchID < 0 {
		pt.touchID = ids[0]
	}

	if pt.touchID >= 0 {
		// 触摸仍然活跃
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == pt.touchID {
				x, y := ebiten.TouchPosition(id)
				return PointerSample{Pressed: true, X: x, Y: y, Touch: true}
			}
		}
		// 触摸已释放，使用最后一次触摸位置
		pt.touchID = -1
		return PointerSample{Pressed: false, X: pt.lastX, Y: pt.lastY, Touch: true}
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
	}
}

// Feed 根据一帧采样推进状态并返回事件
func (pt *PointerTracker) Feed(s PointerSample) []PointerEvent {
	var events []PointerEvent
	emit := func(kind PointerEventKind) {
		events = append(events, PointerEvent{Kind: kind, X: s.X, Y: s.Y, Touch: s.Touch})
	}

	inside := image.Pt(s.X, s.Y).In(pt.bounds)

	// 悬停：仅鼠标
	if !s.Touch {
		if inside && !pt.hovering {
			pt.hovering = true
			emit(PointerEnter)
		} else if !inside && pt.hovering {
			pt.hovering = false
			emit(PointerLeave)
			// 离开区域即结束跟踪，释放由接收方合成
			pt.tracking = false
		}
	}

	switch {
	case s.Pressed && !pt.pressed:
		if inside {
			pt.tracking = true
			pt.touch = s.Touch
			emit(PointerDown)
		}
	case s.Pressed && pt.tracking:
		if s.X != pt.lastX || s.Y != pt.lastY {
			emit(PointerMove)
		}
	case !s.Pressed && pt.pressed && pt.tracking:
		pt.tracking = false
		emit(PointerUp)
	}

	pt.pressed = s.Pressed
	pt.lastX, pt.lastY = s.X, s.Y
	return events
}

// Reset 重置跟踪状态
func (pt *PointerTracker) Reset() {
	bounds := pt.bounds
	*pt = PointerTracker{bounds: bounds, touchID: -1}
}
