package systems

import (
	"image"
	"image/color"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NavButton 导航按钮标识
type NavButton int

const (
	// NavNone 未命中任何按钮
	NavNone NavButton = iota
	// NavPrev 上一张
	NavPrev
	// NavNext 下一张
	NavNext
)

// String 返回按钮名称
func (b NavButton) String() string {
	switch b {
	case NavPrev:
		return "prev"
	case NavNext:
		return "next"
	default:
		return "none"
	}
}

var (
	navButtonColor      = color.RGBA{255, 255, 255, 170}
	navButtonHoverColor = color.RGBA{255, 255, 255, 230}
	navButtonArrowColor = color.RGBA{30, 30, 30, 255}
)

// NavButtonSystem 导航按钮系统
// 负责视口左右两侧 "❮" / "❯" 按钮的布局、命中检测和渲染
//
// 按下与释放必须落在同一个按钮上才算一次点击。
type NavButtonSystem struct {
	viewport image.Rectangle

	hover   NavButton
	pressed NavButton
}

// NewNavButtonSystem 创建导航按钮系统
func NewNavButtonSystem() *NavButtonSystem {
	return &NavButtonSystem{}
}

// SetViewport 设置视口矩形（屏幕坐标）
func (s *NavButtonSystem) SetViewport(r image.Rectangle) {
	s.viewport = r
}

// ButtonRect 返回按钮矩形
func (s *NavButtonSystem) ButtonRect(b NavButton) image.Rectangle {
	size := int(config.NavButtonSize)
	inset := int(config.NavButtonInset)
	y := s.viewport.Min.Y + (s.viewport.Dy()-size)/2

	switch b {
	case NavPrev:
		x := s.viewport.Min.X + inset
		return image.Rect(x, y, x+size, y+size)
	case NavNext:
		x := s.viewport.Max.X - inset - size
		return image.Rect(x, y, x+size, y+size)
	default:
		return image.Rectangle{}
	}
}

// HitTest 返回屏幕坐标处的按钮
func (s *NavButtonSystem) HitTest(x, y int) NavButton {
	if s.viewport.Empty() {
		return NavNone
	}
	p := image.Pt(x, y)
	for _, b := range []NavButton{NavPrev, NavNext} {
		if p.In(s.ButtonRect(b)) {
			return b
		}
	}
	return NavNone
}

// Hover 更新悬停状态
func (s *NavButtonSystem) Hover(x, y int) {
	s.hover = s.HitTest(x, y)
}

// Press 按下；返回是否按在按钮上
func (s *NavButtonSystem) Press(x, y int) bool {
	s.pressed = s.HitTest(x, y)
	return s.pressed != NavNone
}

// Pressed 返回当前按下的按钮
func (s *NavButtonSystem) Pressed() NavButton {
	return s.pressed
}

// Release 释放；按下与释放在同一按钮上时返回该按钮
func (s *NavButtonSystem) Release(x, y int) NavButton {
	pressed := s.pressed
	s.pressed = NavNone
	if pressed != NavNone && s.HitTest(x, y) == pressed {
		return pressed
	}
	return NavNone
}

// Cancel 取消按下
func (s *NavButtonSystem) Cancel() {
	s.pressed = NavNone
}

// Draw 绘制两个按钮
func (s *NavButtonSystem) Draw(screen *ebiten.Image) {
	if s.viewport.Empty() {
		return
	}
	s.drawButton(screen, NavPrev)
	s.drawButton(screen, NavNext)
}

func (s *NavButtonSystem) drawButton(screen *ebiten.Image, b NavButton) {
	r := s.ButtonRect(b)
	cx := float32(r.Min.X) + float32(r.Dx())/2
	cy := float32(r.Min.Y) + float32(r.Dy())/2
	radius := float32(r.Dx()) / 2

	bg := navButtonColor
	if s.hover == b || s.pressed == b {
		bg = navButtonHoverColor
	}
	vector.DrawFilledCircle(screen, cx, cy, radius, bg, true)

	// 箭头：两条折线
	arm := radius * 0.35
	dir := float32(1)
	if b == NavPrev {
		dir = -1
	}
	tipX := cx + dir*arm/2
	vector.StrokeLine(screen, tipX-dir*arm, cy-arm, tipX, cy, 3, navButtonArrowColor, true)
	vector.StrokeLine(screen, tipX, cy, tipX-dir*arm, cy+arm, 3, navButtonArrowColor, true)
}
