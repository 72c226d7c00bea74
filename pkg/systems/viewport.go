package systems

import "sync"

// ViewportSource 视口宽度来源
//
// 实现 carousel.Viewport。App.Layout 每帧报告窗口尺寸，
// 宽度变化时通知订阅者。通知在锁外进行，订阅者可以安全地
// 回调其他持锁对象。
type ViewportSource struct {
	mu       sync.Mutex
	width    float64
	measured bool
	subs     map[int]func(float64)
	nextID   int
}

// NewViewportSource 创建视口来源
func NewViewportSource() *ViewportSource {
	return &ViewportSource{
		subs: make(map[int]func(float64)),
	}
}

// Width 实现 carousel.Viewport
func (v *ViewportSource) Width() (float64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.measured
}

// Subscribe 实现 carousel.Viewport
func (v *ViewportSource) Subscribe(fn func(width float64)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.subs[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
}

// Set 报告一次测量，宽度未变化时不通知
func (v *ViewportSource) Set(width float64) {
	v.mu.Lock()
	if v.measured && v.width == width {
		v.mu.Unlock()
		return
	}
	v.width = width
	v.measured = true

	subs := make([]func(float64), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(width)
	}
}

// Subscribers 返回当前订阅者数量
func (v *ViewportSource) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
