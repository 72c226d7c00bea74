package carousel

import (
	"math"
	"testing"
	"time"
)

func newTestEngine(size float64) (*DragEngine, *fakeTarget, *fakeClock, *AnimationGate) {
	target := newFakeTarget()
	clock := newFakeClock()
	gate := &AnimationGate{}
	e := NewDragEngine(target, gate, clock, size)
	e.Reposition()
	return e, target, clock, gate
}

// TestResolveTable 测试释放决策表
func TestResolveTable(t *testing.T) {
	tests := []struct {
		name     string
		diff     float64
		elapsed  time.Duration
		size     float64
		wantJump int
	}{
		{"小距离回弹", 39, 100 * time.Millisecond, 100, 0},
		{"小距离高速仍回弹", -39, 1 * time.Millisecond, 100, 0},
		{"左拖一张", -60, 1000 * time.Millisecond, 100, 1},
		{"右拖一张", 60, 1000 * time.Millisecond, 100, -1},
		{"慢速1.2张仍为一张", -120, 2000 * time.Millisecond, 100, 1},
		{"慢速1.4张跨两张", -140, 2000 * time.Millisecond, 100, 2},
		{"轻扫升级为两张", 90, 200 * time.Millisecond, 100, -2},
		{"快速但距离不足0.7张", -65, 100 * time.Millisecond, 100, 1},
		{"超长拖动限制为两张", -1000, 5000 * time.Millisecond, 100, 2},
		{"超快超长仍限制为两张", 5000, 10 * time.Millisecond, 100, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.diff, tt.elapsed, tt.size)
			if d.Jump != tt.wantJump {
				t.Errorf("Jump: got %d, want %d (slides=%.2f v=%.3f)", d.Jump, tt.wantJump, d.Slides, d.Velocity)
			}
		})
	}
}

// TestResolveVelocityUpgrade diff=90, size=100, 200ms → 速度 0.45，升级为两张
func TestResolveVelocityUpgrade(t *testing.T) {
	d := Resolve(90, 200*time.Millisecond, 100)

	if math.Abs(d.Velocity-0.45) > 1e-9 {
		t.Errorf("Velocity: got %v, want 0.45", d.Velocity)
	}
	if math.Abs(d.Slides-0.9) > 1e-9 {
		t.Errorf("Slides: got %v, want 0.9", d.Slides)
	}
	if d.Jump != -2 {
		t.Errorf("Jump: got %d, want -2", d.Jump)
	}
}

// TestResolveZeroElapsed 耗时为 0 或负数时不能产生无穷速度
func TestResolveZeroElapsed(t *testing.T) {
	for _, elapsed := range []time.Duration{0, -5 * time.Millisecond} {
		d := Resolve(50, elapsed, 100)
		if math.IsInf(d.Velocity, 0) || math.IsNaN(d.Velocity) {
			t.Fatalf("elapsed %v: velocity not finite: %v", elapsed, d.Velocity)
		}
		if d.Velocity != 50 {
			t.Errorf("elapsed %v: velocity got %v, want 50 (1ms floor)", elapsed, d.Velocity)
		}
	}
}

// TestResolveDurationBounds 任何速度下过渡时长都在 [300, 400]ms
func TestResolveDurationBounds(t *testing.T) {
	for _, elapsed := range []time.Duration{1, 10, 50, 100, 200, 500, 1000, 5000} {
		for _, diff := range []float64{-500, -150, -90, -45, 0, 20, 45, 90, 150, 500} {
			d := Resolve(diff, elapsed*time.Millisecond, 100)
			if d.Duration < 300*time.Millisecond || d.Duration > 400*time.Millisecond {
				t.Errorf("diff=%v elapsed=%vms: duration %v out of [300ms, 400ms]", diff, elapsed, d.Duration)
			}
		}
	}
}

// TestSettleDuration 速度越快越短，跨两张加时，封顶 400ms
func TestSettleDuration(t *testing.T) {
	tests := []struct {
		speed float64
		jump  int
		want  time.Duration
	}{
		{0, 1, 400 * time.Millisecond},   // 550 封顶
		{2.0, 1, 350 * time.Millisecond}, // 550-200
		{3.0, 1, 300 * time.Millisecond}, // 下限
		{9.0, 1, 300 * time.Millisecond}, // 下限
		{9.0, 2, 400 * time.Millisecond}, // 300+150 封顶
		{9.0, 0, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := settleDuration(tt.speed, tt.jump); got != tt.want {
			t.Errorf("settleDuration(%v, %d): got %v, want %v", tt.speed, tt.jump, got, tt.want)
		}
	}
}

// TestDragJumpBound 任何拖拽输入下 |target - current| <= 2
func TestDragJumpBound(t *testing.T) {
	e, _, clock, gate := newTestEngine(100)

	for _, dx := range []float64{-3000, -250, -131, -99, -41, 0, 41, 99, 131, 250, 3000} {
		for _, elapsed := range []time.Duration{time.Millisecond, 50 * time.Millisecond, 2 * time.Second} {
			before := e.CurrentIndex()
			drag(e, clock, 500, 500+dx, elapsed)
			delta := e.CurrentIndex() - before
			if delta > MaxJump || delta < -MaxJump {
				t.Errorf("dx=%v elapsed=%v: jumped %d", dx, elapsed, delta)
			}
			e.TransitionEnd()
			if gate.Animating() {
				t.Fatal("gate still animating after TransitionEnd")
			}
		}
	}
}

// TestSmallDragSnapBack 小于 40px 的释放总是回到原索引
func TestSmallDragSnapBack(t *testing.T) {
	e, target, clock, _ := newTestEngine(100)
	e.MoveSlide(5, 0)
	e.TransitionEnd()

	for _, dx := range []float64{-39, -20, 0, 20, 39.9} {
		drag(e, clock, 300, 300+dx, time.Millisecond)
		if e.CurrentIndex() != 5 {
			t.Errorf("dx=%v: index got %d, want 5", dx, e.CurrentIndex())
		}
		if target.x != -500 {
			t.Errorf("dx=%v: translate got %v, want -500", dx, target.x)
		}
		e.TransitionEnd()
	}
}

// TestDragStateTransitions Idle → Dragging → Settling → Idle
func TestDragStateTransitions(t *testing.T) {
	e, target, clock, _ := newTestEngine(100)

	if e.State() != StateIdle {
		t.Fatalf("initial state: got %v, want Idle", e.State())
	}

	e.Start(400)
	if e.State() != StateDragging {
		t.Fatalf("after Start: got %v, want Dragging", e.State())
	}
	if target.transition != 0 {
		t.Errorf("transition during drag: got %v, want 0", target.transition)
	}

	clock.Advance(1000 * time.Millisecond)
	e.Move(340)
	if target.x != -60 {
		t.Errorf("live offset: got %v, want -60", target.x)
	}

	d, ok := e.End(340)
	if !ok {
		t.Fatal("End returned false during drag")
	}
	if d.Jump != 1 {
		t.Errorf("Jump: got %d, want 1", d.Jump)
	}
	if e.State() != StateSettling {
		t.Fatalf("after End: got %v, want Settling", e.State())
	}
	if target.transition != d.Duration {
		t.Errorf("transition: got %v, want %v", target.transition, d.Duration)
	}
	if target.x != -100 {
		t.Errorf("settled translate: got %v, want -100", target.x)
	}

	e.TransitionEnd()
	if e.State() != StateIdle {
		t.Fatalf("after TransitionEnd: got %v, want Idle", e.State())
	}
	if e.Offset() != -100 {
		t.Errorf("baseline: got %v, want -100", e.Offset())
	}
}

// TestDragClamp 拖拽偏移被限制在橡皮筋范围内
func TestDragClamp(t *testing.T) {
	e, target, _, _ := newTestEngine(100)
	e.MoveSlide(3, 0)
	e.TransitionEnd()

	e.Start(0)
	e.Move(-10000)
	// min = -(3+2)*100 - 120 = -620
	if target.x != -620 {
		t.Errorf("min clamp: got %v, want -620", target.x)
	}
	e.Move(10000)
	// max = -(3-2)*100 + 120 = 20
	if target.x != 20 {
		t.Errorf("max clamp: got %v, want 20", target.x)
	}
}

// TestStartInterruptsSettling 动画中按下从屏幕真实位置开始拖拽
func TestStartInterruptsSettling(t *testing.T) {
	e, target, clock, gate := newTestEngine(100)

	e.MoveSlide(1, 0)
	if !gate.Animating() {
		t.Fatal("expected animating after MoveSlide")
	}

	// 渲染目标还在动画途中
	target.x = -37
	if !e.Start(200) {
		t.Fatal("Start should be accepted while settling")
	}
	if gate.Animating() {
		t.Error("Start should reset the animating flag")
	}
	if e.Offset() != -37 {
		t.Errorf("origin offset: got %v, want -37 (read back from target)", e.Offset())
	}

	clock.Advance(50 * time.Millisecond)
	e.Move(210)
	if target.x != -27 {
		t.Errorf("live offset: got %v, want -27", target.x)
	}

	// 旧动画的完成信号到达时不应影响拖拽
	e.TransitionEnd()
	if e.State() != StateDragging {
		t.Errorf("stale TransitionEnd changed state to %v", e.State())
	}
}

// TestStartUnreadyTarget 渲染目标未就绪时按下为空操作
func TestStartUnreadyTarget(t *testing.T) {
	e, target, _, _ := newTestEngine(100)
	target.ready = false

	if e.Start(10) {
		t.Error("Start should fail when target is not ready")
	}
	if e.State() != StateIdle {
		t.Errorf("state: got %v, want Idle", e.State())
	}
	if _, ok := e.End(100); ok {
		t.Error("End without drag should return false")
	}
}

// TestMoveSlideIgnoredWhileSettling 动画中忽略显式导航，仅拖拽时不忽略
func TestMoveSlideIgnoredWhileSettling(t *testing.T) {
	e, _, _, _ := newTestEngine(100)

	if !e.MoveSlide(1, 0) {
		t.Fatal("first MoveSlide should be accepted")
	}
	if e.MoveSlide(2, 0) {
		t.Error("MoveSlide during Settling should be ignored")
	}
	if e.CurrentIndex() != 1 {
		t.Errorf("index: got %d, want 1", e.CurrentIndex())
	}

	e.TransitionEnd()
	e.Start(0)
	if !e.MoveSlide(2, 0) {
		t.Error("MoveSlide while only Dragging should be accepted")
	}
}

// TestMoveSlideDefaultDuration 非正时长使用 SlideSpeed
func TestMoveSlideDefaultDuration(t *testing.T) {
	e, target, _, _ := newTestEngine(100)
	e.MoveSlide(-4, 0)
	if target.transition != SlideSpeed {
		t.Errorf("transition: got %v, want %v", target.transition, SlideSpeed)
	}
	if target.x != 400 {
		t.Errorf("translate: got %v, want 400", target.x)
	}
}

// TestTransitionEndRecenters 过渡结束时校正漂移
func TestTransitionEndRecenters(t *testing.T) {
	e, target, _, _ := newTestEngine(100)
	e.MoveSlide(2, 0)
	target.x = -203.7

	e.TransitionEnd()
	if target.x != -200 {
		t.Errorf("translate after recenter: got %v, want -200", target.x)
	}
	if target.transition != 0 {
		t.Errorf("recenter should not animate, got %v", target.transition)
	}
}

// TestSetSlideSize 尺寸变化时重新定位
func TestSetSlideSize(t *testing.T) {
	e, target, _, _ := newTestEngine(100)
	e.MoveSlide(3, 0)
	e.TransitionEnd()

	e.SetSlideSize(80)
	if target.x != -240 {
		t.Errorf("translate after resize: got %v, want -240", target.x)
	}

	e.SetSlideSize(0)
	if e.SlideSize() != 80 {
		t.Errorf("non-positive size should be ignored, got %v", e.SlideSize())
	}
}

// TestMovedFlag 超过 5px 才标记为拖动
func TestMovedFlag(t *testing.T) {
	e, _, _, gate := newTestEngine(100)

	e.Start(100)
	e.Move(105)
	if gate.Moved() {
		t.Error("5px should not mark moved")
	}
	e.Move(94)
	if !gate.Moved() {
		t.Error("6px should mark moved")
	}
	e.End(94)

	// 下一次交互开始时复位
	e.Start(0)
	if gate.Moved() {
		t.Error("moved flag should reset on next Start")
	}
}

func TestStateString(t *testing.T) {
	if StateSettling.String() != "Settling" {
		t.Errorf("got %q", StateSettling.String())
	}
	if State(42).String() != "Unknown" {
		t.Errorf("got %q", State(42).String())
	}
}
