package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportWidth(t *testing.T) {
	tests := []struct {
		name        string
		windowWidth int
		maxWidth    float64
		want        float64
	}{
		{"宽窗口取最大宽度", 1200, 750, 750},
		{"窄窗口收缩", 600, 750, 600 - 2*ViewportMargin},
		{"极窄窗口为 0", 50, 750, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewportWidth(tt.windowWidth, tt.maxWidth))
		})
	}
}

func TestCalculateViewportRect(t *testing.T) {
	x, y, w, h := CalculateViewportRect(960, 540, 750, 300)
	assert.Equal(t, 105.0, x)
	assert.Equal(t, 120.0, y)
	assert.Equal(t, 750.0, w)
	assert.Equal(t, 300.0, h)
}
