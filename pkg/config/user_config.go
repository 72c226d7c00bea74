package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppName 用于用户配置目录和存储目录
const AppName = "carousel"

// UserConfigFile 用户配置文件名
const UserConfigFile = "config.toml"

// DefaultUserConfigPath 返回用户配置文件路径
// 例如 Linux 上为 ~/.config/carousel/config.toml
func DefaultUserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, UserConfigFile)
}

// UserConfig 用户覆盖配置
//
//	[carousel]
//	size = 240
//	items_per_view = 3
//	play_time = "5s"
//	buffer = 2
type UserConfig struct {
	Carousel carousel.Config `koanf:"carousel"`
}

// ApplyUserConfig 把用户 TOML 配置覆盖到基础配置上
//
// 文件不存在时原样返回 base，不视为错误。
// 文件中未出现的字段保留 base 中的值。
//
// 参数:
//   - base: 基础配置（默认值 + 内置数据文件）
//   - path: 用户配置文件路径
//
// 返回:
//   - carousel.Config: 合并后的配置
//   - bool: 用户文件是否存在并被加载
//   - error: 解析失败或合并结果不合法
func ApplyUserConfig(base carousel.Config, path string) (carousel.Config, bool, error) {
	if path == "" {
		return base, false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, false, nil
		}
		return base, false, fmt.Errorf("failed to stat user config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return base, false, fmt.Errorf("failed to load user config %s: %w", path, err)
	}

	uc := UserConfig{Carousel: base}
	if err := k.Unmarshal("", &uc); err != nil {
		return base, false, fmt.Errorf("failed to decode user config %s: %w", path, err)
	}
	if err := uc.Carousel.Validate(); err != nil {
		return base, false, fmt.Errorf("invalid user config %s: %w", path, err)
	}
	return uc.Carousel, true, nil
}
