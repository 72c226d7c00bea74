package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gonewx/carousel/pkg/carousel"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath 内置轮播数据文件（相对嵌入文件系统根）
const DefaultDataPath = "data/carousel.yaml"

// ErrNoSlides 数据文件中没有任何幻灯片
var ErrNoSlides = errors.New("config: no slides defined")

// CarouselData 轮播数据文件
//
// 配置文件位置: data/carousel.yaml
//
//	carousel:
//	  size: 300
//	  itemsPerView: 2.5
//	  playTime: 3s
//	  buffer: 3
//	slides:
//	  - id: "1"
//	    title: Slide 1
//	    image: https://...
//	    link: https://...
type CarouselData struct {
	// Carousel 轮播参数，缺省字段保留默认值
	Carousel carousel.Config `yaml:"carousel"`

	// Slides 幻灯片列表
	Slides []carousel.Item `yaml:"slides"`
}

// ParseCarouselData 解析轮播数据
//
// 先用 carousel.DefaultConfig() 填充，再覆盖文件中出现的字段。
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *CarouselData: 解析并验证后的数据
//   - error: 解析失败或验证失败
func ParseCarouselData(data []byte) (*CarouselData, error) {
	cd := &CarouselData{Carousel: carousel.DefaultConfig()}
	if err := yaml.Unmarshal(data, cd); err != nil {
		return nil, fmt.Errorf("failed to parse carousel data: %w", err)
	}
	if err := cd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid carousel data: %w", err)
	}
	return cd, nil
}

// LoadCarouselData 从文件系统加载轮播数据
//
// 参数:
//   - fsys: 文件系统（嵌入资源或 os.DirFS）
//   - path: 文件路径（如 "data/carousel.yaml"）
func LoadCarouselData(fsys fs.FS, path string) (*CarouselData, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carousel data %s: %w", path, err)
	}
	return ParseCarouselData(data)
}

// LoadCarouselDataFile 从本地文件加载轮播数据
func LoadCarouselDataFile(path string) (*CarouselData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carousel data %s: %w", path, err)
	}
	return ParseCarouselData(data)
}

// Validate 验证数据有效性
//
// 检查：
//   - 轮播参数合法（carousel.Config.Validate）
//   - 至少一张幻灯片
//   - 幻灯片 ID 非空且不重复
func (cd *CarouselData) Validate() error {
	if err := cd.Carousel.Validate(); err != nil {
		return err
	}
	if len(cd.Slides) == 0 {
		return ErrNoSlides
	}

	seen := make(map[string]struct{}, len(cd.Slides))
	for i, s := range cd.Slides {
		if s.ID == "" {
			return fmt.Errorf("slide #%d has empty id", i)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate slide id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
