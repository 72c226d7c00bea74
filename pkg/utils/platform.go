//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 "1" 时桌面端按移动端处理输入（只用触摸，不做悬停）
const MobileEmulateEnv = "CAROUSEL_MOBILE_EMULATE"

// IsMobile 是否按移动端处理输入
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
