package game

import (
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the viewer's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene

	// 最近一次 Layout 尺寸，切换场景时转发给新场景
	width, height int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// 旧场景实现 io.Closer 时会被关闭；已知窗口尺寸时立即转发给新场景。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.closeScene(sm.currentScene)
	}
	sm.currentScene = scene

	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Layout 记录窗口逻辑尺寸并转发给当前场景
func (sm *SceneManager) Layout(width, height int) {
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// SaveOnExit 让当前场景保存状态
//
// 返回：
//   - bool: 当前场景不需要保存或保存成功时为 true
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Close 关闭当前场景
func (sm *SceneManager) Close() {
	if sm.currentScene != nil {
		sm.closeScene(sm.currentScene)
		sm.currentScene = nil
	}
}

func (sm *SceneManager) closeScene(scene Scene) {
	if c, ok := scene.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("[SceneManager] Warning: close scene: %v", err)
		}
	}
}
