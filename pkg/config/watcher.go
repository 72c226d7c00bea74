package config

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gonewx/carousel/pkg/carousel"
)

// WatcherDebounce 连续写入合并为一次重载
const WatcherDebounce = 200 * time.Millisecond

// Watcher 用户配置热重载
//
// 监听配置文件所在目录（编辑器常用"写临时文件再改名"的方式保存），
// 防抖后重新合并配置，合法的新配置发送到 Updates。
// 非法配置只记录日志，保持上一份配置生效。
type Watcher struct {
	watcher *fsnotify.Watcher

	path string
	base carousel.Config

	debounce time.Duration
	updates  chan carousel.Config

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher 创建配置监听器
//
// 参数:
//   - path: 用户配置文件路径，目录必须存在
//   - base: 用户配置覆盖之前的基础配置
func NewWatcher(path string, base carousel.Config) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		base:     base,
		debounce: WatcherDebounce,
		updates:  make(chan carousel.Config, 1),
	}

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Updates 返回新配置通道
// 通道容量为 1，只保留最新的一份
func (w *Watcher) Updates() <-chan carousel.Config {
	return w.updates
}

// Path 返回监听的文件路径
func (w *Watcher) Path() string {
	return w.path
}

// Run 处理文件事件直到 ctx 取消或监听器关闭
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isConfigEvent(event) {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[ConfigWatcher] Warning: %v", err)
		}
	}
}

// Close 停止监听，可重复调用
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.reload)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	cfg, loaded, err := ApplyUserConfig(w.base, w.path)
	if err != nil {
		log.Printf("[ConfigWatcher] Warning: keep previous config: %v", err)
		return
	}
	if !loaded {
		return
	}
	log.Printf("[ConfigWatcher] reloaded %s", w.path)
	w.publish(cfg)
}

// publish 发送新配置，丢弃尚未被取走的旧配置
func (w *Watcher) publish(cfg carousel.Config) {
	for {
		select {
		case w.updates <- cfg:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
