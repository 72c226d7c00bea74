// Package carousel 实现无限循环轮播的拖拽-吸附交互引擎
//
// 本包不依赖任何渲染框架。渲染目标、视口测量、时钟和条目激活
// 都通过小接口注入，Ebitengine 侧的实现位于 pkg/systems。
//
// 核心组件（自底向上）：
//   - SizeResolver: 根据视口宽度推导单张幻灯片尺寸
//   - ComputeWindow: 把无界的虚拟索引映射到有限的条目集合
//   - DragEngine: 指针拖拽状态机，释放时决定吸附到哪一张
//   - AutoplayTimer: 空闲时定时前进一张
//   - AnimationGate: 记录"是否正在吸附动画"与"是否拖动过"
//
// Carousel 把以上组件串起来，并用一把互斥锁保证单写者。
package carousel

import (
	"errors"
	"fmt"
	"time"
)

// Item 轮播条目
// 与渲染无关，仅描述数据本身
type Item struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Image string `yaml:"image"` // 图片 URI（本地路径或远程地址）
	Link  string `yaml:"link"`  // 点击后打开的地址
}

// 默认配置
const (
	DefaultSize         = 300.0
	DefaultItemsPerView = 2.5
	DefaultPlayTime     = 3000 * time.Millisecond
	DefaultBuffer       = 3
)

// 拖拽与吸附参数（像素 / 毫秒）
const (
	// SlideSpeed 显式导航（按钮、自动播放）的过渡时长
	SlideSpeed = 300 * time.Millisecond

	// MinDragDistance 小于此距离的释放视为回弹
	MinDragDistance = 40.0

	// MoveThreshold 超过此距离才算"拖动过"，用于区分点击
	MoveThreshold = 5.0

	// MaxJump 一次释放最多跨越的张数
	MaxJump = 2

	// OvershootSlides 橡皮筋越界量（以幻灯片尺寸为单位）
	OvershootSlides = 1.2

	// FlickVelocity 快速轻扫的速度阈值 (px/ms)
	FlickVelocity = 0.3

	// FlickMinSlides 轻扫升级为两张所需的最小拖动张数
	FlickMinSlides = 0.7

	// LongDragSlides 慢速拖动超过此张数才跨两张
	LongDragSlides = 1.3

	durationFloorMs       = 300.0
	durationBaseMs        = 550.0
	durationVelocityScale = 100.0
	multiSlideBonusMs     = 150.0
	durationCapMs         = 400.0

	// minElapsedMs 释放时耗时的下限，避免除零
	minElapsedMs = 1.0
)

var (
	// ErrEmptyCollection 条目集合为空，无法渲染任何内容
	ErrEmptyCollection = errors.New("carousel: item collection is empty")

	// ErrInvalidConfig 配置参数不合法
	ErrInvalidConfig = errors.New("carousel: invalid config")

	// ErrNilRenderTarget 未提供渲染目标
	ErrNilRenderTarget = errors.New("carousel: render target is nil")
)

// Config 轮播配置
type Config struct {
	// Size 名义幻灯片尺寸（像素），视口足够宽时使用
	Size float64 `yaml:"size" koanf:"size"`

	// ItemsPerView 每屏可见张数，可以是小数（露出下一张的一部分）
	ItemsPerView float64 `yaml:"itemsPerView" koanf:"items_per_view"`

	// PlayTime 自动播放间隔
	PlayTime time.Duration `yaml:"playTime" koanf:"play_time"`

	// Buffer 可见范围两侧额外渲染的张数
	Buffer int `yaml:"buffer" koanf:"buffer"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Size:         DefaultSize,
		ItemsPerView: DefaultItemsPerView,
		PlayTime:     DefaultPlayTime,
		Buffer:       DefaultBuffer,
	}
}

// MaxWidth 返回视口的最大宽度 (Size × ItemsPerView)
func (c Config) MaxWidth() float64 {
	return c.Size * c.ItemsPerView
}

// Validate 验证配置有效性
//
// 返回:
//   - error: 包装 ErrInvalidConfig，说明具体字段
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %.1f", ErrInvalidConfig, c.Size)
	}
	if c.ItemsPerView <= 0 {
		return fmt.Errorf("%w: itemsPerView must be positive, got %.2f", ErrInvalidConfig, c.ItemsPerView)
	}
	if c.PlayTime <= 0 {
		return fmt.Errorf("%w: playTime must be positive, got %v", ErrInvalidConfig, c.PlayTime)
	}
	if c.Buffer < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %d", ErrInvalidConfig, c.Buffer)
	}
	return nil
}

// Clock 时间源，测试中可替换
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RenderTarget 渲染目标能力
//
// 引擎把它当作"屏幕上真实位置"的权威来源：开始拖拽时读回当前平移量，
// 而不是根据 CurrentIndex 推算，这样打断进行中的动画时不会跳动。
type RenderTarget interface {
	// Translate 返回当前屏幕上的水平平移量（像素）
	// ok 为 false 表示渲染目标尚未就绪
	Translate() (x float64, ok bool)

	// SetTranslate 设置目标平移量，按当前过渡时长动画过去
	SetTranslate(x float64)

	// SetTransition 设置之后平移所用的过渡时长，0 表示立即生效
	SetTransition(d time.Duration)
}

// Viewport 视口测量能力
type Viewport interface {
	// Width 返回当前渲染宽度，ok 为 false 表示尚未测量
	Width() (width float64, ok bool)

	// Subscribe 订阅宽度变化，返回取消订阅函数
	Subscribe(fn func(width float64)) (cancel func())
}

// Activator 条目激活（例如打开链接）
type Activator interface {
	Activate(item Item) error
}

// ActivatorFunc 函数适配器
type ActivatorFunc func(item Item) error

// Activate 实现 Activator
func (f ActivatorFunc) Activate(item Item) error { return f(item) }
