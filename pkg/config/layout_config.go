package config

import "math"

// 布局配置常量
// 本文件定义了窗口、视口和导航按钮的布局参数

// 窗口配置
const (
	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 960

	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 540

	// MinWindowWidth 窗口最小宽度
	MinWindowWidth = 320

	// MinWindowHeight 窗口最小高度
	MinWindowHeight = 240

	// WindowTitle 窗口标题
	WindowTitle = "Carousel"
)

// 视口配置
const (
	// ViewportMargin 视口与窗口左右边缘的最小间距
	ViewportMargin = 48.0

	// CardGap 卡片之间的间隙（每侧一半）
	CardGap = 8.0

	// CardTitleHeight 卡片底部标题条高度
	CardTitleHeight = 36.0

	// CardTitleFontSize 标题字号
	CardTitleFontSize = 16.0

	// NavButtonSize 导航按钮边长
	NavButtonSize = 40.0

	// NavButtonInset 导航按钮与视口边缘的距离
	NavButtonInset = 8.0

	// HintFontSize 底部提示文字字号
	HintFontSize = 12.0
)

// ViewportWidth 计算视口宽度
//
// 视口最宽为 maxWidth（Size × ItemsPerView），窗口较窄时收缩，
// 两侧保留 ViewportMargin。
//
// 参数：
//   - windowWidth: 窗口逻辑宽度
//   - maxWidth: 视口最大宽度
//
// 返回：
//   - float64: 视口宽度，窗口过窄时为 0
func ViewportWidth(windowWidth int, maxWidth float64) float64 {
	w := math.Min(float64(windowWidth)-2*ViewportMargin, maxWidth)
	if w < 0 {
		return 0
	}
	return w
}

// CalculateViewportRect 计算视口在窗口中的位置
// 视口水平、垂直居中，高度等于幻灯片尺寸
//
// 参数：
//   - windowWidth, windowHeight: 窗口逻辑尺寸
//   - viewportWidth: 视口宽度
//   - slideSize: 幻灯片尺寸
//
// 返回：
//   - x, y: 视口左上角
//   - w, h: 视口宽高
func CalculateViewportRect(windowWidth, windowHeight int, viewportWidth, slideSize float64) (x, y, w, h float64) {
	w = viewportWidth
	h = slideSize
	x = math.Round((float64(windowWidth) - w) / 2)
	y = math.Round((float64(windowHeight) - h) / 2)
	return x, y, w, h
}
