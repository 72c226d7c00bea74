package utils

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// BrowserCommand 返回在指定平台打开 url 的命令
//
// 返回：
//   - name, args: 命令名和参数
//   - error: 平台不支持
func BrowserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenBrowser 在系统默认浏览器中打开 url，不等待浏览器退出
func OpenBrowser(url string) error {
	if url == "" {
		return fmt.Errorf("empty url")
	}
	name, args, err := BrowserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	// 回收子进程
	go func() { _ = cmd.Wait() }()
	return nil
}

// CopyToClipboard 把文本写入系统剪贴板
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on %s", runtime.GOOS)
	}
	return clipboard.WriteAll(text)
}
