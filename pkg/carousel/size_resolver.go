package carousel

import "math"

// ResolveSlideSize 根据视口宽度计算有效幻灯片尺寸
//
// 视口宽度不足 nominal × perView 时按比例缩小，否则使用名义尺寸。
func ResolveSlideSize(nominal, perView, width float64) float64 {
	maxWidth := nominal * perView
	if width < maxWidth {
		return width / perView
	}
	return nominal
}

// SizeResolver 观察视口宽度并推导单张幻灯片尺寸
//
// 首次测量之前 IsReady 返回 false，SlideSize 返回名义尺寸作为占位，
// 依赖布局应保持隐藏，避免首帧出现"跳动"。
type SizeResolver struct {
	nominal float64
	perView float64

	width float64
	ready bool

	cancel func()
}

// NewSizeResolver 创建尺寸解析器
func NewSizeResolver(nominal, perView float64) *SizeResolver {
	return &SizeResolver{
		nominal: nominal,
		perView: perView,
	}
}

// Attach 订阅视口宽度变化
//
// 若视口已可测量，会立即以当前宽度报告一次。再次调用会先释放之前的订阅。
//
// 参数：
//   - vp: 视口测量能力，为 nil 时不做任何事
//   - onWidth: 宽度通知的接收者，供调用方在自己的串行上下文中调用 Observe；
//     为 nil 时解析器直接 Observe
func (r *SizeResolver) Attach(vp Viewport, onWidth func(width float64)) {
	r.Close()
	if vp == nil {
		return
	}
	deliver := onWidth
	if deliver == nil {
		deliver = func(width float64) { r.Observe(width) }
	}
	r.cancel = vp.Subscribe(deliver)
	if width, ok := vp.Width(); ok {
		deliver(width)
	}
}

// Close 释放视口订阅
func (r *SizeResolver) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Observe 记录一次宽度测量
//
// 宽度会先四舍五入到整数像素；非正宽度视为尚未布局，直接忽略。
//
// 返回：
//   - size: 当前有效尺寸
//   - changed: 有效尺寸或就绪状态是否发生变化
func (r *SizeResolver) Observe(width float64) (size float64, changed bool) {
	width = math.Round(width)
	if width <= 0 {
		return r.SlideSize(), false
	}

	before := r.SlideSize()
	wasReady := r.ready

	r.width = width
	r.ready = true

	size = r.SlideSize()
	return size, size != before || !wasReady
}

// SetNominal 更新名义尺寸与每屏张数（配置热重载时使用）
//
// 返回值同 Observe
func (r *SizeResolver) SetNominal(nominal, perView float64) (size float64, changed bool) {
	before := r.SlideSize()
	r.nominal = nominal
	r.perView = perView
	size = r.SlideSize()
	return size, size != before
}

// SlideSize 返回当前有效尺寸
func (r *SizeResolver) SlideSize() float64 {
	if !r.ready {
		return r.nominal
	}
	return ResolveSlideSize(r.nominal, r.perView, r.width)
}

// IsReady 是否已完成首次测量
func (r *SizeResolver) IsReady() bool {
	return r.ready
}

// Width 返回最近一次测量的视口宽度
func (r *SizeResolver) Width() float64 {
	return r.width
}
