package systems

import (
	"testing"
	"time"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/utils"
)

var _ carousel.RenderTarget = (*TrackSystem)(nil)
var _ carousel.Viewport = (*ViewportSource)(nil)

const frame = time.Second / 60

func TestTrackSystemNotReady(t *testing.T) {
	track := NewTrackSystem()
	if _, ok := track.Translate(); ok {
		t.Error("track should not be ready before layout")
	}
	track.SetReady(true)
	if _, ok := track.Translate(); !ok {
		t.Error("track should be ready after SetReady")
	}
}

// TestTrackSystemInstant 过渡时长为 0 时立即生效
func TestTrackSystemInstant(t *testing.T) {
	track := NewTrackSystem()
	track.SetReady(true)
	track.SetTransition(0)
	track.SetTranslate(-250)

	if x, _ := track.Translate(); x != -250 {
		t.Errorf("Translate: got %v, want -250", x)
	}
	if track.Animating() {
		t.Error("instant translate should not animate")
	}
}

// TestTrackSystemAnimates 过渡按时长完成并回调一次
func TestTrackSystemAnimates(t *testing.T) {
	track := NewTrackSystem()
	track.SetReady(true)
	track.SetEasing(utils.EaseLinear)

	ends := 0
	track.SetOnTransitionEnd(func() { ends++ })

	track.SetTransition(300 * time.Millisecond)
	track.SetTranslate(-300)

	track.Update(150 * time.Millisecond)
	if x, _ := track.Translate(); x != -150 {
		t.Errorf("halfway: got %v, want -150", x)
	}
	if ends != 0 {
		t.Error("transition ended too early")
	}

	track.Update(200 * time.Millisecond)
	if x, _ := track.Translate(); x != -300 {
		t.Errorf("end: got %v, want -300", x)
	}
	if ends != 1 {
		t.Errorf("transition end callbacks: got %d, want 1", ends)
	}

	track.Update(frame)
	if ends != 1 {
		t.Errorf("callback repeated: got %d", ends)
	}
}

// TestTrackSystemInterrupt 动画途中设置 transition 0 冻结在当前位置且不回调
func TestTrackSystemInterrupt(t *testing.T) {
	track := NewTrackSystem()
	track.SetReady(true)
	track.SetEasing(utils.EaseLinear)

	ends := 0
	track.SetOnTransitionEnd(func() { ends++ })

	track.SetTransition(400 * time.Millisecond)
	track.SetTranslate(-400)
	track.Update(100 * time.Millisecond)

	x, _ := track.Translate()
	track.SetTransition(0)
	track.SetTranslate(x)
	track.Update(time.Second)

	if got, _ := track.Translate(); got != -100 {
		t.Errorf("frozen position: got %v, want -100", got)
	}
	if ends != 0 {
		t.Errorf("interrupted transition should not fire end, got %d", ends)
	}
}

// TestTrackSystemSamePosition 过渡到相同位置也会完成
func TestTrackSystemSamePosition(t *testing.T) {
	track := NewTrackSystem()
	track.SetReady(true)

	ends := 0
	track.SetOnTransitionEnd(func() { ends++ })
	track.SetTransition(300 * time.Millisecond)
	track.SetTranslate(0)

	for i := 0; i < 30; i++ {
		track.Update(frame)
	}
	if ends != 1 {
		t.Errorf("transition end callbacks: got %d, want 1", ends)
	}
}

// TestTrackSystemWithCarousel 轨道与控制器联动：释放后动画完成回到 Idle
func TestTrackSystemWithCarousel(t *testing.T) {
	track := NewTrackSystem()
	track.SetReady(true)

	cfg := carousel.DefaultConfig()
	cfg.Size = 100
	c, err := carousel.New([]carousel.Item{{ID: "1"}, {ID: "2"}, {ID: "3"}}, cfg, track)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()
	track.SetOnTransitionEnd(c.TransitionEnd)

	if !c.Next() {
		t.Fatal("Next rejected")
	}
	if c.Snapshot().State != carousel.StateSettling {
		t.Fatalf("state: got %v, want Settling", c.Snapshot().State)
	}

	for i := 0; i < 30; i++ {
		track.Update(frame)
	}
	s := c.Snapshot()
	if s.State != carousel.StateIdle {
		t.Errorf("state after animation: got %v, want Idle", s.State)
	}
	if x, _ := track.Translate(); x != -100 {
		t.Errorf("track: got %v, want -100", x)
	}
}

func TestViewportSource(t *testing.T) {
	vp := NewViewportSource()
	if _, ok := vp.Width(); ok {
		t.Error("unmeasured viewport should report not ok")
	}

	var got []float64
	cancel := vp.Subscribe(func(w float64) { got = append(got, w) })

	vp.Set(600)
	vp.Set(600)
	vp.Set(700)
	if len(got) != 2 || got[0] != 600 || got[1] != 700 {
		t.Errorf("notifications: got %v, want [600 700]", got)
	}

	cancel()
	if vp.Subscribers() != 0 {
		t.Errorf("subscribers after cancel: got %d", vp.Subscribers())
	}
	vp.Set(800)
	if len(got) != 2 {
		t.Error("cancelled subscriber was notified")
	}
}
