package carousel

// AnimationGate 动画闸门
//
// 跟踪两个标志：
//   - animating: 吸附/导航动画进行中，期间忽略显式导航
//   - moved: 本次按下后指针移动超过 MoveThreshold，随后的点击被抑制
//
// 两个标志在下一次交互开始时一起复位，避免残留的抑制状态。
type AnimationGate struct {
	animating bool
	moved     bool
}

// Begin 标记动画开始
func (g *AnimationGate) Begin() {
	g.animating = true
}

// Complete 标记动画结束
func (g *AnimationGate) Complete() {
	g.animating = false
}

// Animating 是否正在动画
func (g *AnimationGate) Animating() bool {
	return g.animating
}

// MarkMoved 标记本次交互为拖动
func (g *AnimationGate) MarkMoved() {
	g.moved = true
}

// Moved 本次交互是否拖动过
func (g *AnimationGate) Moved() bool {
	return g.moved
}

// Reset 同时复位两个标志
func (g *AnimationGate) Reset() {
	g.animating = false
	g.moved = false
}

// AllowClick 判断点击是否应触发条目激活
//
// 拖动过则返回 false（视为拖拽而非点击）；
// 否则复位闸门并返回 true。
func (g *AnimationGate) AllowClick() bool {
	if g.moved {
		return false
	}
	g.Reset()
	return true
}
