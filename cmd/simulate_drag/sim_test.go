package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gonewx/carousel/pkg/carousel"
)

func TestParseScriptDefaults(t *testing.T) {
	s, err := ParseScript([]byte("steps:\n  - next: true\n"))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	if s.Slides != 6 {
		t.Errorf("Slides: got %d, want 6", s.Slides)
	}
	if s.Carousel != carousel.DefaultConfig() {
		t.Errorf("Carousel: got %+v, want defaults", s.Carousel)
	}
	if s.Viewport != carousel.DefaultConfig().MaxWidth() {
		t.Errorf("Viewport: got %v", s.Viewport)
	}
}

func TestParseScriptInvalid(t *testing.T) {
	if _, err := ParseScript([]byte("slides: 0\n")); err == nil {
		t.Error("Expected error for zero slides")
	}
	if _, err := ParseScript([]byte("steps: [")); err == nil {
		t.Error("Expected error for broken yaml")
	}
}

// TestSimulatorFlickScript 回放示例脚本
func TestSimulatorFlickScript(t *testing.T) {
	data, err := os.ReadFile("testdata/flick.yaml")
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}

	var out bytes.Buffer
	sim, err := NewSimulator(script, &out)
	if err != nil {
		t.Fatalf("NewSimulator() error: %v", err)
	}
	defer sim.Close()
	sim.Run(script.Steps)

	activated := sim.Activated()
	if len(activated) != 1 || activated[0].ID != "2" {
		t.Errorf("activated: got %v, want slide 2 only", activated)
	}

	snap := sim.Carousel().Snapshot()
	if snap.State != carousel.StateIdle {
		t.Errorf("final state: got %v, want idle", snap.State)
	}
	// 0 → 1（慢拖）→ 3（轻扫）→ 2（离开）→ 3（next）→ 6（goto 0）
	if snap.CurrentIndex != 6 || snap.ItemIndex != 0 {
		t.Errorf("final index: got %d (item %d), want 6 (item 0)", snap.CurrentIndex, snap.ItemIndex)
	}

	log := out.String()
	for _, want := range []string{"jump +2", "jump +1", "next accepted=false", "activated=false"} {
		if !strings.Contains(log, want) {
			t.Errorf("output missing %q:\n%s", want, log)
		}
	}
}

func TestSimulatorAutoplay(t *testing.T) {
	script, err := ParseScript([]byte("carousel:\n  playTime: 1s\nsteps:\n  - wait: 1500ms\n"))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}

	var out bytes.Buffer
	sim, err := NewSimulator(script, &out)
	if err != nil {
		t.Fatalf("NewSimulator() error: %v", err)
	}
	defer sim.Close()
	sim.Carousel().SetAutoplay(true)
	sim.Run(script.Steps)

	if got := sim.Carousel().Snapshot().CurrentIndex; got != 1 {
		t.Errorf("CurrentIndex after one interval: got %d, want 1", got)
	}
	if !strings.Contains(out.String(), "autoplay") {
		t.Errorf("output should record the autoplay tick:\n%s", out.String())
	}
}
