// Package main 是轮播查看器的桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose        输出详细日志
//	--data <path>    从外部 YAML 文件加载条目（默认使用内置 data/carousel.yaml）
//	--config <path>  用户 TOML 配置（默认 ~/.config/carousel/config.toml）
//	--no-watch       禁用用户配置热重载
//	--no-autoplay    启动时关闭自动播放
//	--fullscreen     全屏启动
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/carousel/pkg/app"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
	dataFlag       = flag.String("data", "", "Load slides from an external YAML file")
	configFlag     = flag.String("config", "", "User TOML config (default: XDG config dir)")
	noWatchFlag    = flag.Bool("no-watch", false, "Disable user config hot reload")
	noAutoplayFlag = flag.Bool("no-autoplay", false, "Start with autoplay disabled")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen mode")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		DataPath:   *dataFlag,
		ConfigPath: *configFlag,
		NoWatch:    *noWatchFlag,
		NoAutoplay: *noAutoplayFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	// 窗口尺寸与全屏状态沿用上次退出时的设置
	s := gameApp.Settings().GetSettings()

	ebiten.SetWindowSize(s.WindowWidth, s.WindowHeight)
	ebiten.SetWindowSizeLimits(config.MinWindowWidth, config.MinWindowHeight, -1, -1)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(s.Fullscreen || *fullscreenFlag)

	runErr := ebiten.RunGame(gameApp)
	if !gameApp.Shutdown() {
		log.Printf("[Main] Warning: settings were not saved")
	}
	if runErr != nil && runErr != ebiten.Termination {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
