package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/game"
	"github.com/gonewx/carousel/pkg/systems"
	"github.com/gonewx/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	hintColor       = color.RGBA{180, 180, 190, 255}
)

// digitKeys 数字键 1-9 对应条目 0-8
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// CarouselSceneOptions 轮播场景参数
type CarouselSceneOptions struct {
	// Data 条目与轮播参数（已合并用户配置）
	Data *config.CarouselData

	// Resources 资源管理器
	Resources *game.ResourceManager

	// Settings 查看器设置，可为 nil
	Settings *game.SettingsManager

	// ConfigUpdates 热重载通道，可为 nil
	ConfigUpdates <-chan carousel.Config

	// Autoplay 初始自动播放开关
	Autoplay bool

	// Activator 条目激活处理，为 nil 时在浏览器中打开链接
	Activator carousel.Activator
}

// CarouselScene 轮播场景
//
// 把指针、键盘输入转发给 carousel.Carousel，
// 用 TrackSystem 承载平移动画，用 CardRenderSystem 绘制卡片。
//
// 轨道动画在 Carousel 的锁外推进，过渡完成回调再进入 Carousel。
type CarouselScene struct {
	carousel *carousel.Carousel
	count    int

	track    *systems.TrackSystem
	viewport *systems.ViewportSource
	cards    *systems.CardRenderSystem
	nav      *systems.NavButtonSystem
	pointer  *utils.PointerTracker

	settings *game.SettingsManager
	updates  <-chan carousel.Config

	hintFont *text.GoTextFace

	// 窗口逻辑尺寸
	width, height int
	// 视口矩形（屏幕坐标）
	rect image.Rectangle

	// 本次按下是否落在导航按钮上
	navPress bool
}

// NewCarouselScene 创建轮播场景
func NewCarouselScene(opts CarouselSceneOptions) (*CarouselScene, error) {
	if opts.Data == nil {
		return nil, fmt.Errorf("carousel scene: %w", carousel.ErrEmptyCollection)
	}
	if opts.Resources == nil {
		opts.Resources = game.NewResourceManager()
	}

	cards, err := systems.NewCardRenderSystem(opts.Resources)
	if err != nil {
		return nil, fmt.Errorf("carousel scene: %w", err)
	}
	hintFont, err := opts.Resources.LoadFont(config.HintFontSize)
	if err != nil {
		return nil, fmt.Errorf("carousel scene: %w", err)
	}

	activator := opts.Activator
	if activator == nil {
		activator = carousel.ActivatorFunc(func(item carousel.Item) error {
			return utils.OpenBrowser(item.Link)
		})
	}

	s := &CarouselScene{
		count:    len(opts.Data.Slides),
		track:    systems.NewTrackSystem(),
		viewport: systems.NewViewportSource(),
		cards:    cards,
		nav:      systems.NewNavButtonSystem(),
		pointer:  utils.NewPointerTracker(),
		settings: opts.Settings,
		updates:  opts.ConfigUpdates,
		hintFont: hintFont,
	}

	c, err := carousel.New(opts.Data.Slides, opts.Data.Carousel, s.track,
		carousel.WithViewport(s.viewport),
		carousel.WithActivator(activator),
	)
	if err != nil {
		return nil, fmt.Errorf("carousel scene: %w", err)
	}
	s.carousel = c
	s.track.SetOnTransitionEnd(c.TransitionEnd)
	c.SetAutoplay(opts.Autoplay)

	log.Printf("[CarouselScene] created with %d slides", s.count)
	return s, nil
}

// Carousel 返回轮播控制器
func (s *CarouselScene) Carousel() *carousel.Carousel {
	return s.carousel
}

// Resize 实现 game.Resizable
func (s *CarouselScene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.relayout()
}

// relayout 按窗口尺寸和当前配置重新计算视口
func (s *CarouselScene) relayout() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	cfg := s.carousel.Config()
	vw := config.ViewportWidth(s.width, cfg.MaxWidth())

	// 宽度变化经订阅同步送达 Carousel.Resize
	s.viewport.Set(vw)
	if vw > 0 {
		s.track.SetReady(true)
	}

	size := s.carousel.Snapshot().SlideSize
	x, y, w, h := config.CalculateViewportRect(s.width, s.height, vw, size)
	s.rect = image.Rect(int(x), int(y), int(x+w), int(y+h))
	s.pointer.SetBounds(s.rect)
	s.nav.SetViewport(s.rect)
}

// Update 更新场景逻辑
func (s *CarouselScene) Update(deltaTime float64) {
	dt := time.Duration(deltaTime * float64(time.Second))

	s.applyConfigUpdates()
	s.handleKeyboard()
	for _, ev := range s.pointer.Update() {
		s.handlePointer(ev)
	}
	if !utils.IsMobile() {
		s.nav.Hover(ebiten.CursorPosition())
	}

	// 轨道动画在锁外推进，完成时回调 Carousel.TransitionEnd
	s.track.Update(dt)
	s.carousel.Update(dt)
}

// applyConfigUpdates 应用热重载的配置
func (s *CarouselScene) applyConfigUpdates() {
	if s.updates == nil {
		return
	}
	select {
	case cfg := <-s.updates:
		if err := s.carousel.SetConfig(cfg); err != nil {
			log.Printf("[CarouselScene] Warning: %v", err)
			return
		}
		s.relayout()
	default:
	}
}

func (s *CarouselScene) handleKeyboard() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.carousel.Prev()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.carousel.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.toggleAutoplay()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.copyCurrentLink()
	}

	for i, key := range digitKeys {
		if i >= s.count {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			s.carousel.GoTo(i)
		}
	}
}

func (s *CarouselScene) toggleAutoplay() {
	enabled := !s.carousel.Snapshot().Autoplay
	s.carousel.SetAutoplay(enabled)
	if s.settings != nil {
		s.settings.SetAutoplay(enabled)
	}
}

func (s *CarouselScene) copyCurrentLink() {
	item := s.carousel.CurrentItem()
	if err := utils.CopyToClipboard(item.Link); err != nil {
		log.Printf("[CarouselScene] Warning: copy link failed: %v", err)
		return
	}
	log.Printf("[CarouselScene] copied link of slide %s", item.ID)
}

// handlePointer 把指针事件转发给导航按钮或 Carousel
func (s *CarouselScene) handlePointer(ev utils.PointerEvent) {
	x := float64(ev.X)

	switch ev.Kind {
	case utils.PointerEnter:
		s.carousel.PointerEnter()
		s.nav.Hover(ev.X, ev.Y)

	case utils.PointerLeave:
		s.nav.Hover(ev.X, ev.Y)
		s.nav.Cancel()
		s.navPress = false
		s.carousel.PointerLeave()

	case utils.PointerDown:
		if s.nav.Press(ev.X, ev.Y) {
			s.navPress = true
			return
		}
		s.carousel.PointerDown(x)

	case utils.PointerMove:
		s.nav.Hover(ev.X, ev.Y)
		if !s.navPress {
			s.carousel.PointerMove(x)
		}

	case utils.PointerUp:
		if s.navPress {
			s.navPress = false
			switch s.nav.Release(ev.X, ev.Y) {
			case systems.NavPrev:
				s.carousel.Prev()
			case systems.NavNext:
				s.carousel.Next()
			}
			return
		}
		s.releaseOnCard(ev)
	}
}

// releaseOnCard 结束拖拽，并在没有拖动过时激活指针下的卡片
// 命中检测使用释放前屏幕上的轨道位置
func (s *CarouselScene) releaseOnCard(ev utils.PointerEvent) {
	trackX, _ := s.track.Translate()
	idx, hit := systems.HitTest(s.carousel.Visible(), trackX,
		float64(s.rect.Min.X), float64(s.rect.Min.Y), float64(ev.X), float64(ev.Y))

	s.carousel.PointerUp(float64(ev.X))
	if !hit {
		return
	}
	if item, ok := s.carousel.Click(idx); ok {
		log.Printf("[CarouselScene] activated slide %s (%s)", item.ID, item.Link)
	}
}

// Draw 绘制场景
// 视口宽度测量之前不绘制轮播
func (s *CarouselScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := s.carousel.Snapshot()
	if !snap.Ready || s.rect.Empty() {
		return
	}

	trackX, _ := s.track.Translate()
	view := screen.SubImage(s.rect).(*ebiten.Image)
	s.cards.Draw(view, s.carousel.Visible(), s.count, trackX)
	s.nav.Draw(screen)

	s.drawHint(screen, snap)
}

func (s *CarouselScene) drawHint(screen *ebiten.Image, snap carousel.Snapshot) {
	autoplay := "off"
	if snap.Autoplay {
		autoplay = "on"
	}
	hint := fmt.Sprintf("%d / %d   ←/→ navigate   Space autoplay (%s)   C copy link   F11 fullscreen",
		snap.ItemIndex+1, s.count, autoplay)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(s.width)/2, float64(s.rect.Max.Y)+24)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(hintColor)
	text.Draw(screen, hint, s.hintFont, op)
}

// SaveOnExit 实现 game.Saveable：保存窗口和播放偏好
func (s *CarouselScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	fullscreen := ebiten.IsFullscreen()
	s.settings.SetFullscreen(fullscreen)
	if !fullscreen {
		w, h := ebiten.WindowSize()
		if w > 0 && h > 0 {
			s.settings.SetWindowSize(w, h)
		}
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[CarouselScene] Warning: save settings: %v", err)
		return false
	}
	return true
}

// Close 实现 io.Closer：释放计时器和视口订阅
func (s *CarouselScene) Close() error {
	s.carousel.Close()
	return nil
}
