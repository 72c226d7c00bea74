package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ellipsis 截断后追加的省略号
const ellipsis = "…"

// TruncateText 将文本截断到指定宽度以内，超出部分以省略号结尾
// 参数:
//   - textStr: 要截断的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - string: 截断后的文本（不超宽时原样返回）
//
// 规则:
//   - 逐字符回退，支持中文和英文混合文本
//   - 宽度连省略号都放不下时返回空字符串
func TruncateText(textStr string, font *text.GoTextFace, maxWidth float64) string {
	return truncate(textStr, maxWidth, func(s string) float64 {
		return measureTextWidth(s, font)
	})
}

// truncate 与字体无关的截断逻辑，measure 返回字符串宽度
func truncate(textStr string, maxWidth float64, measure func(string) float64) string {
	if textStr == "" || maxWidth <= 0 {
		return ""
	}
	if measure(textStr) <= maxWidth {
		return textStr
	}
	if measure(ellipsis) > maxWidth {
		return ""
	}

	s := textStr
	for len(s) > 0 {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
		candidate := strings.TrimRight(s, " ") + ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	// 使用 Measure 方法测量文本尺寸
	width, _ := text.Measure(textStr, font, 0)
	return width
}
