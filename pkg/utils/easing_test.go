package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		if EaseLinear(v) != v {
			t.Errorf("EaseLinear(%v) = %v, 期望 %v", v, EaseLinear(v), v)
		}
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 1 - 0.125 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestCubicBezierLinear 控制点在对角线上时等价于线性
func TestCubicBezierLinear(t *testing.T) {
	linear := CubicBezier(0, 0, 1, 1)
	for p := 0.0; p <= 1.0; p += 0.05 {
		if math.Abs(linear(p)-p) > 1e-4 {
			t.Errorf("CubicBezier(0,0,1,1)(%v) = %v, 期望 %v", p, linear(p), p)
		}
	}
}

// TestEaseCSS 测试 CSS "ease" 曲线
func TestEaseCSS(t *testing.T) {
	if EaseCSS(0) != 0 || EaseCSS(1) != 1 {
		t.Errorf("端点错误: f(0)=%v f(1)=%v", EaseCSS(0), EaseCSS(1))
	}
	if EaseCSS(-1) != 0 || EaseCSS(2) != 1 {
		t.Error("超出 [0,1] 的输入应被钳制")
	}

	// 浏览器中 ease(0.5) ≈ 0.8024
	if got := EaseCSS(0.5); math.Abs(got-0.8024) > 0.01 {
		t.Errorf("EaseCSS(0.5) = %v, 期望约 0.8024", got)
	}

	t.Run("单调递增", func(t *testing.T) {
		prev := 0.0
		for p := 0.01; p <= 1.0; p += 0.01 {
			v := EaseCSS(p)
			if v < prev-1e-9 {
				t.Errorf("EaseCSS(%v) = %v 小于前一个值 %v", p, v, prev)
			}
			prev = v
		}
	})
}

// TestEaseCSSWithLerp 模拟轨道从 -300 平移到 -600
func TestEaseCSSWithLerp(t *testing.T) {
	from, to := -300.0, -600.0
	for p := 0.0; p <= 1.0; p += 0.1 {
		x := Lerp(from, to, EaseCSS(p))
		if x > from+0.001 || x < to-0.001 {
			t.Errorf("进度 %v: 位置 %v 超出 [%v, %v]", p, x, to, from)
		}
	}
}
