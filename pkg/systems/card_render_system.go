package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/game"
	"github.com/gonewx/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	cardTitleBackground = color.RGBA{0, 0, 0, 150}
	cardTitleColor      = color.White
	cardTitleShadow     = color.RGBA{0, 0, 0, 128}
)

// CardRenderSystem 卡片渲染系统
// 负责把可见窗口中的幻灯片绘制到视口上
//
// 职责：
//   - 按轨道平移量和幻灯片位置计算卡片屏幕坐标
//   - 跳过完全在视口外的卡片
//   - 绘制卡片图片和底部标题条
type CardRenderSystem struct {
	resources *game.ResourceManager
	titleFont *text.GoTextFace

	// 上一次绘制的卡片尺寸，变化时释放旧尺寸的缓存
	lastSize int
}

// NewCardRenderSystem 创建卡片渲染系统
func NewCardRenderSystem(rm *game.ResourceManager) (*CardRenderSystem, error) {
	font, err := rm.LoadFont(config.CardTitleFontSize)
	if err != nil {
		return nil, err
	}
	return &CardRenderSystem{
		resources: rm,
		titleFont: font,
	}, nil
}

// CardRect 计算卡片在屏幕上的矩形（扣除两侧间隙）
//
// 参数：
//   - slide: 幻灯片
//   - trackX: 轨道当前平移量
//   - originX, originY: 视口左上角
//
// 返回：
//   - x, y, w, h: 卡片矩形
func CardRect(slide carousel.Slide, trackX, originX, originY float64) (x, y, w, h float64) {
	gap := math.Min(config.CardGap, slide.Width/4)
	x = originX + trackX + slide.X + gap/2
	w = slide.Width - gap
	return x, originY, w, slide.Width
}

// Visible 判断卡片是否与视口水平方向相交
func Visible(x, w, viewLeft, viewRight float64) bool {
	return x+w > viewLeft && x < viewRight
}

// Draw 绘制所有可见卡片
//
// 参数：
//   - dst: 视口子图（已按视口裁剪）
//   - slides: 可见窗口
//   - count: 条目总数
//   - trackX: 轨道当前平移量
func (s *CardRenderSystem) Draw(dst *ebiten.Image, slides []carousel.Slide, count int, trackX float64) {
	if len(slides) == 0 {
		return
	}

	size := int(math.Round(slides[0].Width - math.Min(config.CardGap, slides[0].Width/4)))
	if size != s.lastSize {
		if s.lastSize != 0 {
			s.resources.ClearImageCache()
		}
		s.lastSize = size
	}

	bounds := dst.Bounds()
	originX, originY := float64(bounds.Min.X), float64(bounds.Min.Y)
	for _, slide := range slides {
		x, y, w, h := CardRect(slide, trackX, originX, originY)
		if !Visible(x, w, float64(bounds.Min.X), float64(bounds.Max.X)) {
			continue
		}
		s.drawCard(dst, slide, count, size, x, y, w, h)
	}
}

func (s *CardRenderSystem) drawCard(dst *ebiten.Image, slide carousel.Slide, count, size int, x, y, w, h float64) {
	img := s.resources.SlideImage(slide.Item, slide.ItemIndex, count, size)

	op := &ebiten.DrawImageOptions{}
	ib := img.Bounds()
	op.GeoM.Scale(w/float64(ib.Dx()), h/float64(ib.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)

	s.drawTitle(dst, slide.Item.Title, x, y+h-config.CardTitleHeight, w)
}

// drawTitle 绘制标题条
func (s *CardRenderSystem) drawTitle(dst *ebiten.Image, title string, x, y, w float64) {
	if title == "" {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(config.CardTitleHeight), cardTitleBackground, false)

	const padding = 10.0
	label := utils.TruncateText(title, s.titleFont, w-2*padding)
	if label == "" {
		return
	}
	cy := y + config.CardTitleHeight/2

	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+padding+1, cy+1)
	shadowOp.SecondaryAlign = text.AlignCenter
	shadowOp.ColorScale.ScaleWithColor(cardTitleShadow)
	text.Draw(dst, label, s.titleFont, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+padding, cy)
	op.SecondaryAlign = text.AlignCenter // 垂直居中
	op.ColorScale.ScaleWithColor(cardTitleColor)
	text.Draw(dst, label, s.titleFont, op)
}

// HitTest 返回屏幕坐标 (px, py) 处的卡片虚拟索引
//
// 参数：
//   - slides: 可见窗口
//   - trackX: 轨道当前平移量
//   - originX, originY: 视口左上角
//
// 返回：
//   - int: 虚拟索引
//   - bool: 是否命中
func HitTest(slides []carousel.Slide, trackX, originX, originY, px, py float64) (int, bool) {
	for _, slide := range slides {
		x, y, w, h := CardRect(slide, trackX, originX, originY)
		if px >= x && px < x+w && py >= y && py < y+h {
			return slide.VirtualIndex, true
		}
	}
	return 0, false
}
