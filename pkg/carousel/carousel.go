package carousel

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Slide 渲染层需要的一张幻灯片
type Slide struct {
	WindowEntry
	X     float64 // 相对轨道原点的位置 (VirtualIndex × SlideSize)
	Width float64 // 幻灯片尺寸
}

// Snapshot 轮播状态的只读副本
type Snapshot struct {
	CurrentIndex int
	ItemIndex    int
	State        State
	Offset       float64
	SlideSize    float64
	Ready        bool
	Paused       bool
	Autoplay     bool
	Moved        bool
}

// Option 构造选项
type Option func(*Carousel)

// WithClock 指定时间源
func WithClock(clock Clock) Option {
	return func(c *Carousel) { c.clock = clock }
}

// WithActivator 指定条目激活处理
func WithActivator(a Activator) Option {
	return func(c *Carousel) { c.activator = a }
}

// WithViewport 指定视口测量能力，构造时即订阅
func WithViewport(vp Viewport) Option {
	return func(c *Carousel) { c.viewport = vp }
}

// Carousel 轮播控制器
//
// 所有导出方法通过同一把锁串行化，CurrentIndex/平移量只有一个写者。
// Ebitengine 的 Update 本身是单线程的，锁用于配置热重载等跨 goroutine 调用。
type Carousel struct {
	mu sync.Mutex

	items []Item
	cfg   Config

	resolver *SizeResolver
	gate     *AnimationGate
	engine   *DragEngine
	autoplay *AutoplayTimer

	clock     Clock
	activator Activator
	viewport  Viewport
	closed    bool
}

// New 创建轮播控制器
//
// 参数：
//   - items: 条目集合，不能为空
//   - cfg: 配置，会先校验
//   - target: 渲染目标
//   - opts: 可选项
//
// 返回：
//   - error: ErrEmptyCollection / ErrInvalidConfig / ErrNilRenderTarget
func New(items []Item, cfg Config, target RenderTarget, opts ...Option) (*Carousel, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNilRenderTarget
	}

	c := &Carousel{
		items: append([]Item(nil), items...),
		cfg:   cfg,
		gate:  &AnimationGate{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}

	c.resolver = NewSizeResolver(cfg.Size, cfg.ItemsPerView)
	c.engine = NewDragEngine(target, c.gate, c.clock, c.resolver.SlideSize())
	c.autoplay = NewAutoplayTimer(cfg.PlayTime)

	c.engine.Reposition()
	c.resolver.Attach(c.viewport, c.Resize)
	c.autoplay.Start(c.engine.CurrentIndex())

	log.Printf("[Carousel] created: %d items, size=%.0f perView=%.2f buffer=%d playTime=%v",
		len(items), cfg.Size, cfg.ItemsPerView, cfg.Buffer, cfg.PlayTime)
	return c, nil
}

// Close 释放计时器与视口订阅，可重复调用
func (c *Carousel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.autoplay.Stop()
	c.resolver.Close()
	log.Printf("[Carousel] closed")
}

func (c *Carousel) applySlideSize(size float64) {
	before := c.engine.SlideSize()
	c.engine.SetSlideSize(size)
	if before != size {
		log.Printf("[Carousel] slide size %.1f -> %.1f", before, size)
	}
}

// Resize 报告一次视口宽度测量
// 使用 WithViewport 时由订阅自动调用
func (c *Carousel) Resize(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size, changed := c.resolver.Observe(width); changed {
		c.applySlideSize(size)
	}
}

// PointerDown 指针按下 / 触摸开始
func (c *Carousel) PointerDown(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.engine.Start(x)
}

// PointerMove 指针移动 / 触摸移动
func (c *Carousel) PointerMove(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Move(x)
}

// PointerUp 指针抬起 / 触摸结束
//
// 返回：
//   - Decision: 吸附决策
//   - bool: 是否有拖拽被结束
func (c *Carousel) PointerUp(x float64) (Decision, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.End(x)
}

// PointerEnter 指针进入视口：暂停自动播放
func (c *Carousel) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay.Pause()
}

// PointerLeave 指针离开视口：恢复自动播放
//
// 若仍在拖拽，则在最后已知的指针位置合成一次释放，
// 保证状态机不会停留在 Dragging。
func (c *Carousel) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay.Resume()
	if x, ok := c.engine.LastX(); ok {
		c.engine.End(x)
	}
}

// Next 前进一张，动画中忽略
func (c *Carousel) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.MoveSlide(c.engine.CurrentIndex()+1, SlideSpeed)
}

// Prev 后退一张，动画中忽略
func (c *Carousel) Prev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.MoveSlide(c.engine.CurrentIndex()-1, SlideSpeed)
}

// MoveSlide 显式导航到虚拟索引
func (c *Carousel) MoveSlide(index int, d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.MoveSlide(index, d)
}

// GoTo 导航到物理条目 itemIndex 最近的虚拟位置（距离相等时向前）
func (c *Carousel) GoTo(itemIndex int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	if itemIndex < 0 || itemIndex >= n {
		return false
	}
	cur := c.engine.CurrentIndex()
	delta := WrapIndex(itemIndex-WrapIndex(cur, n), n)
	if delta > n/2 {
		delta -= n
	}
	if delta == 0 {
		return false
	}
	return c.engine.MoveSlide(cur+delta, SlideSpeed)
}

// TransitionEnd 渲染目标通知过渡完成
func (c *Carousel) TransitionEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.TransitionEnd()
}

// Update 推进自动播放计时
//
// 返回：
//   - bool: 本帧是否由自动播放前进了一张
func (c *Carousel) Update(dt time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.autoplay.Advance(dt, c.engine.CurrentIndex()) {
		return false
	}
	return c.tick()
}

// tick 自动播放触发：拖拽或动画中为空操作
func (c *Carousel) tick() bool {
	if !c.autoplay.Active() || c.engine.Dragging() || c.gate.Animating() {
		return false
	}
	return c.engine.MoveSlide(c.engine.CurrentIndex()+1, SlideSpeed)
}

// SetAutoplay 用户开关自动播放
func (c *Carousel) SetAutoplay(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay.SetEnabled(enabled)
	log.Printf("[Carousel] autoplay enabled=%v", enabled)
}

// Click 条目点击
//
// 本次交互拖动过时抑制点击；否则复位闸门并激活条目。
//
// 返回：
//   - Item: 被点击的条目
//   - bool: 是否触发了激活
func (c *Carousel) Click(virtualIndex int) (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.items[WrapIndex(virtualIndex, len(c.items))]
	if !c.gate.AllowClick() {
		return item, false
	}
	if c.activator != nil {
		if err := c.activator.Activate(item); err != nil {
			log.Printf("[Carousel] Warning: activate item %s failed: %v", item.ID, err)
		}
	}
	return item, true
}

// Visible 返回需要渲染的幻灯片
func (c *Carousel) Visible() []Slide {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.engine.SlideSize()
	entries := ComputeWindow(c.engine.CurrentIndex(), c.cfg.Buffer, c.cfg.ItemsPerView, c.items)
	slides := make([]Slide, len(entries))
	for i, e := range entries {
		slides[i] = Slide{
			WindowEntry: e,
			X:           float64(e.VirtualIndex) * size,
			Width:       size,
		}
	}
	return slides
}

// SetConfig 应用新配置（热重载），保留 CurrentIndex
func (c *Carousel) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cfg = cfg
	if size, changed := c.resolver.SetNominal(cfg.Size, cfg.ItemsPerView); changed {
		c.applySlideSize(size)
	}
	if cfg.PlayTime != c.autoplay.Interval() {
		c.autoplay.SetInterval(cfg.PlayTime)
	}
	log.Printf("[Carousel] config applied: size=%.0f perView=%.2f buffer=%d playTime=%v",
		cfg.Size, cfg.ItemsPerView, cfg.Buffer, cfg.PlayTime)
	return nil
}

// Config 返回当前配置
func (c *Carousel) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Items 返回条目集合的副本
func (c *Carousel) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// CurrentItem 返回当前索引对应的条目
func (c *Carousel) CurrentItem() Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[WrapIndex(c.engine.CurrentIndex(), len(c.items))]
}

// Snapshot 返回状态快照
func (c *Carousel) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.engine.CurrentIndex()
	return Snapshot{
		CurrentIndex: cur,
		ItemIndex:    WrapIndex(cur, len(c.items)),
		State:        c.engine.State(),
		Offset:       c.engine.Offset(),
		SlideSize:    c.engine.SlideSize(),
		Ready:        c.resolver.IsReady(),
		Paused:       c.autoplay.Paused(),
		Autoplay:     c.autoplay.Enabled(),
		Moved:        c.gate.Moved(),
	}
}
