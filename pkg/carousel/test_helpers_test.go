package carousel

import (
	"time"
)

// fakeTarget 记录引擎对渲染目标的调用
// 过渡是"瞬时"的：SetTranslate 直接改写位置，测试通过 TransitionEnd 模拟完成信号
type fakeTarget struct {
	x          float64
	ready      bool
	transition time.Duration
	sets       int
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{ready: true}
}

func (f *fakeTarget) Translate() (float64, bool) { return f.x, f.ready }

func (f *fakeTarget) SetTranslate(x float64) {
	f.x = x
	f.sets++
}

func (f *fakeTarget) SetTransition(d time.Duration) { f.transition = d }

// fakeClock 手动推进的时钟
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeViewport 可手动改变宽度的视口
type fakeViewport struct {
	width    float64
	measured bool
	subs     map[int]func(float64)
	nextID   int
}

func newFakeViewport() *fakeViewport {
	return &fakeViewport{subs: make(map[int]func(float64))}
}

func (v *fakeViewport) Width() (float64, bool) { return v.width, v.measured }

func (v *fakeViewport) Subscribe(fn func(float64)) func() {
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	return func() { delete(v.subs, id) }
}

func (v *fakeViewport) Set(width float64) {
	v.width = width
	v.measured = true
	for _, fn := range v.subs {
		fn(width)
	}
}

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		id := string(rune('A' + i))
		items[i] = Item{ID: id, Title: "Slide " + id, Link: "https://example.com/" + id}
	}
	return items
}

// drag 模拟一次完整的按下-移动-抬起
func drag(e *DragEngine, clock *fakeClock, from, to float64, elapsed time.Duration) Decision {
	e.Start(from)
	clock.Advance(elapsed / 2)
	e.Move((from + to) / 2)
	clock.Advance(elapsed - elapsed/2)
	e.Move(to)
	d, _ := e.End(to)
	return d
}
