package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"os"
	"strings"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/image/font/gofont/gobold"
)

// MaxSourceSize 解码后的原图最长边上限，超过时先缩小再缓存
const MaxSourceSize = 1024

// 占位色块的色相范围（HCL 混合）
const (
	placeholderFrom = "#3b82f6"
	placeholderTo   = "#f97316"
)

// ResourceManager is responsible for centralized management of slide resources.
// It provides loading and caching mechanisms for card images and font faces,
// ensuring that resources are decoded only once and reused across frames.
//
// The ResourceManager implements the following key features:
// - Slide image loading from the embedded data FS or the local file system
// - Cover-fit scaling to the current slide size (nfnt/resize)
// - Colour placeholders for remote or missing images (go-colorful)
// - Title font faces built from the Go fonts
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All calls happen on the game loop goroutine.
//
// Usage:
//
//	rm := NewResourceManager()
//	img := rm.SlideImage(item, 0, len(items), 300)
type ResourceManager struct {
	sourceCache   map[string]image.Image       // Decoded (bounded) originals: path -> image
	imageCache    map[string]*ebiten.Image     // Fitted card images: "path@size" -> Image
	fontSource    *text.GoTextFaceSource       // Title font source
	fontFaceCache map[float64]*text.GoTextFace // Font faces by size

	// failed 记录加载失败的路径，避免每帧重试并刷屏日志
	failed map[string]struct{}
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]image.Image),
		imageCache:    make(map[string]*ebiten.Image),
		fontFaceCache: make(map[float64]*text.GoTextFace),
		failed:        make(map[string]struct{}),
	}
}

// IsRemote 判断图片地址是否为远程地址
// 远程图片不下载，使用占位色块
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// readImageData 读取图片数据
// 以 "data/" 开头且存在于嵌入资源中的优先读取嵌入资源，否则读取本地文件
func readImageData(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// DecodeImage 解码图片并把最长边限制在 MaxSourceSize 内
//
// Parameters:
//   - data: PNG / JPEG 数据
//
// Returns:
//   - image.Image: 解码后的图片
//   - error: 格式不支持或数据损坏
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > MaxSourceSize || b.Dy() > MaxSourceSize {
		img = resize.Thumbnail(MaxSourceSize, MaxSourceSize, img, resize.Lanczos3)
	}
	return img, nil
}

// FitSquare 按"覆盖"方式把图片缩放到 size×size
// 先等比缩放到短边等于 size，再居中裁剪
func FitSquare(img image.Image, size int) image.Image {
	if size <= 0 {
		size = 1
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, size, size))
	}

	var scaled image.Image
	if w >= h {
		// 横图：高度对齐
		scaled = resize.Resize(0, uint(size), img, resize.Lanczos3)
	} else {
		scaled = resize.Resize(uint(size), 0, img, resize.Lanczos3)
	}

	sb := scaled.Bounds()
	x0 := sb.Min.X + (sb.Dx()-size)/2
	y0 := sb.Min.Y + (sb.Dy()-size)/2

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), scaled, image.Pt(x0, y0), draw.Src)
	return dst
}

// PlaceholderColor 返回第 index 张（共 count 张）幻灯片的占位色
// 在两种颜色之间做 HCL 混合，相邻幻灯片颜色平滑过渡
func PlaceholderColor(index, count int) colorful.Color {
	from, _ := colorful.Hex(placeholderFrom)
	to, _ := colorful.Hex(placeholderTo)
	if count <= 1 {
		return from
	}
	t := float64(carousel.WrapIndex(index, count)) / float64(count-1)
	return from.BlendHcl(to, t).Clamped()
}

// PlaceholderImage 生成占位图片：自上而下由占位色渐变到更暗的同色
func PlaceholderImage(index, count, size int) image.Image {
	if size <= 0 {
		size = 1
	}
	top := PlaceholderColor(index, count)
	h, c, l := top.Hcl()
	bottom := colorful.Hcl(h, c, l*0.6).Clamped()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		t := float64(y) / float64(size)
		r, g, b := top.BlendRgb(bottom, t).RGB255()
		row := color.RGBA{R: r, G: g, B: b, A: 255}
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, row)
		}
	}
	return img
}

// loadSource 加载并缓存原图
func (rm *ResourceManager) loadSource(path string) (image.Image, error) {
	if img, ok := rm.sourceCache[path]; ok {
		return img, nil
	}
	data, err := readImageData(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	rm.sourceCache[path] = img
	return img, nil
}

// SlideImageSource 返回条目的卡片图片（未上传到 GPU）
//
// 远程地址、缺失或损坏的图片使用占位图，不返回错误。
//
// Parameters:
//   - item: 条目
//   - index, count: 条目在集合中的位置，用于占位色
//   - size: 卡片边长（像素）
func (rm *ResourceManager) SlideImageSource(item carousel.Item, index, count, size int) image.Image {
	if item.Image == "" || IsRemote(item.Image) {
		return PlaceholderImage(index, count, size)
	}
	if _, bad := rm.failed[item.Image]; bad {
		return PlaceholderImage(index, count, size)
	}

	src, err := rm.loadSource(item.Image)
	if err != nil {
		rm.failed[item.Image] = struct{}{}
		log.Printf("[ResourceManager] Warning: slide %s uses placeholder: %v", item.ID, err)
		return PlaceholderImage(index, count, size)
	}
	return FitSquare(src, size)
}

// SlideImage 返回条目在指定尺寸下的卡片图片，按 (图片, 尺寸) 缓存
func (rm *ResourceManager) SlideImage(item carousel.Item, index, count, size int) *ebiten.Image {
	key := fmt.Sprintf("%s#%d@%d", item.Image, carousel.WrapIndex(index, max(count, 1)), size)
	if img, ok := rm.imageCache[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(rm.SlideImageSource(item, index, count, size))
	rm.imageCache[key] = img
	return img
}

// ClearImageCache 释放缩放后的卡片图片（幻灯片尺寸变化时调用）
// 原图缓存保留
func (rm *ResourceManager) ClearImageCache() {
	for key, img := range rm.imageCache {
		img.Deallocate()
		delete(rm.imageCache, key)
	}
}

// CachedImages 返回缓存的卡片图片数量
func (rm *ResourceManager) CachedImages() int {
	return len(rm.imageCache)
}

// LoadFont 返回指定字号的标题字体
//
// Parameters:
//   - size: 字号
//
// Returns:
//   - *text.GoTextFace: 字体
//   - error: 字体数据解析失败
func (rm *ResourceManager) LoadFont(size float64) (*text.GoTextFace, error) {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face, nil
	}

	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source: %w", err)
		}
		rm.fontSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face, nil
}

// GetFont 返回已加载的字体，未加载时返回 nil
func (rm *ResourceManager) GetFont(size float64) *text.GoTextFace {
	return rm.fontFaceCache[size]
}
