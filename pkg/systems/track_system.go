package systems

import (
	"math"
	"time"

	"github.com/gonewx/carousel/pkg/utils"
)

// TrackSystem 轮播轨道系统
//
// 实现 carousel.RenderTarget：持有轨道的水平平移量，
// 按设置的过渡时长和缓动曲线逐帧动画，完成时回调 OnTransitionEnd。
//
// 职责：
//   - Translate 返回屏幕上真实的（动画途中的）位置
//   - SetTransition(0) 后的 SetTranslate 立即生效，并取消进行中的动画
//   - 过渡到相同位置也会按时长完成并回调，状态机不会因此卡在 Settling
type TrackSystem struct {
	x     float64
	ready bool

	transition time.Duration
	easing     func(float64) float64

	animating bool
	from, to  float64
	duration  time.Duration
	elapsed   time.Duration

	onTransitionEnd func()
}

// NewTrackSystem 创建轨道系统
// 默认使用 CSS "ease" 曲线；布局完成前 Translate 报告未就绪
func NewTrackSystem() *TrackSystem {
	return &TrackSystem{
		easing: utils.EaseCSS,
	}
}

// SetOnTransitionEnd 设置过渡完成回调
// 回调在 Update 中同步调用
func (t *TrackSystem) SetOnTransitionEnd(fn func()) {
	t.onTransitionEnd = fn
}

// SetEasing 替换缓动函数
func (t *TrackSystem) SetEasing(fn func(float64) float64) {
	if fn != nil {
		t.easing = fn
	}
}

// SetReady 标记轨道已完成布局
func (t *TrackSystem) SetReady(ready bool) {
	t.ready = ready
}

// Translate 实现 carousel.RenderTarget
func (t *TrackSystem) Translate() (float64, bool) {
	return t.x, t.ready
}

// SetTransition 实现 carousel.RenderTarget
func (t *TrackSystem) SetTransition(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.transition = d
}

// SetTranslate 实现 carousel.RenderTarget
func (t *TrackSystem) SetTranslate(x float64) {
	if t.transition == 0 {
		t.x = x
		t.to = x
		t.animating = false
		return
	}

	// 从当前显示位置出发，动画途中改写终点也不会跳动
	t.from = t.x
	t.to = x
	t.duration = t.transition
	t.elapsed = 0
	t.animating = true
}

// Animating 是否有过渡在进行
func (t *TrackSystem) Animating() bool {
	return t.animating
}

// Target 返回最终目标位置
func (t *TrackSystem) Target() float64 {
	return t.to
}

// Update 推进过渡动画
//
// 参数：
//   - dt: 距上一帧的时间
func (t *TrackSystem) Update(dt time.Duration) {
	if !t.animating {
		return
	}

	t.elapsed += dt
	progress := math.Min(float64(t.elapsed)/float64(t.duration), 1)
	t.x = utils.Lerp(t.from, t.to, t.easing(progress))

	if progress >= 1 {
		t.x = t.to
		t.animating = false
		if t.onTransitionEnd != nil {
			t.onTransitionEnd()
		}
	}
}
