// Package app 提供轮播查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/embedded"
	"github.com/gonewx/carousel/pkg/game"
	"github.com/gonewx/carousel/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// DataPath 外部条目文件（YAML），为空时使用内置的 data/carousel.yaml
	DataPath string
	// ConfigPath 用户 TOML 配置，为空时使用 XDG 默认路径
	ConfigPath string
	// NoWatch 禁用用户配置热重载
	NoWatch bool
	// NoAutoplay 启动时关闭自动播放（覆盖已保存的偏好）
	NoAutoplay bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager

	watcher     *config.Watcher
	stopWatcher context.CancelFunc

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用内置数据时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	data, err := loadData(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("条目数据加载失败: %w", err)
	}
	base := data.Carousel

	// 合并用户配置
	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultUserConfigPath()
	}
	merged, loaded, err := config.ApplyUserConfig(base, configPath)
	if err != nil {
		return nil, fmt.Errorf("用户配置加载失败: %w", err)
	}
	if loaded {
		log.Printf("[App] User config applied: %s", configPath)
	}
	data.Carousel = merged

	settings, _ := game.NewSettingsManager(game.OpenStorage(config.AppName))
	autoplay := settings.GetSettings().Autoplay && !cfg.NoAutoplay

	a := &App{
		settings: settings,
		verbose:  cfg.Verbose,
	}
	if !cfg.NoWatch {
		a.startWatcher(configPath, base)
	}

	opts := scenes.CarouselSceneOptions{
		Data:      data,
		Resources: game.NewResourceManager(),
		Settings:  settings,
		Autoplay:  autoplay,
	}
	if a.watcher != nil {
		opts.ConfigUpdates = a.watcher.Updates()
	}
	scene, err := scenes.NewCarouselScene(opts)
	if err != nil {
		a.stop()
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	a.sceneManager = game.NewSceneManager()
	a.sceneManager.SwitchTo(scene)

	log.Printf("[App] Started with %d slides (autoplay=%v)", len(data.Slides), autoplay)
	return a, nil
}

// loadData 加载条目数据：外部文件优先，否则读取内置数据
func loadData(path string) (*config.CarouselData, error) {
	if path != "" {
		return config.LoadCarouselDataFile(path)
	}
	if !embedded.IsInitialized() {
		return nil, fmt.Errorf("embedded data not initialized")
	}
	return config.LoadCarouselData(embedded.FS(), config.DefaultDataPath)
}

// startWatcher 启动用户配置热重载
// 配置目录不存在时跳过（此时也没有可监听的文件）
func (a *App) startWatcher(path string, base carousel.Config) {
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		log.Printf("[App] Config dir not found, hot reload disabled: %s", filepath.Dir(path))
		return
	}
	w, err := config.NewWatcher(path, base)
	if err != nil {
		log.Printf("[App] Warning: hot reload disabled: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.watcher = w
	a.stopWatcher = cancel
	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[App] Warning: config watcher stopped: %v", err)
		}
	}()
	log.Printf("[App] Watching user config: %s", path)
}

func (a *App) stop() {
	if a.stopWatcher != nil {
		a.stopWatcher()
		a.stopWatcher = nil
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: close watcher: %v", err)
		}
		a.watcher = nil
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 关闭窗口时先退出主循环，由调用方执行 Shutdown 保存设置
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			s := a.settings.GetSettings()
			ebiten.SetWindowSize(s.WindowWidth, s.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", s.WindowWidth, s.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			// 记下窗口尺寸，退出全屏时恢复
			if w, h := ebiten.WindowSize(); w > 0 && h > 0 {
				a.settings.SetWindowSize(w, h)
			}
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口，视口宽度据此重新测量
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Settings 返回查看器设置
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Shutdown 保存设置并释放资源
//
// 返回：
//   - bool: 保存是否成功
func (a *App) Shutdown() bool {
	saved := a.sceneManager.SaveOnExit()
	a.sceneManager.Close()
	a.stop()
	return saved
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
