package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/systems"
	"gopkg.in/yaml.v3"
)

// frame 模拟的帧间隔
const frame = time.Second / 60

// Script 指针回放脚本
//
//	carousel:
//	  size: 300
//	  itemsPerView: 3
//	slides: 6
//	viewport: 900
//	steps:
//	  - down: 600
//	  - wait: 40ms
//	    move: 450
//	  - wait: 40ms
//	    up: 300
//	  - wait: 500ms
type Script struct {
	Carousel carousel.Config `yaml:"carousel"`
	Slides   int             `yaml:"slides"`
	Viewport float64         `yaml:"viewport"`
	Steps    []Step          `yaml:"steps"`
}

// Step 一个回放步骤：先推进 Wait，再执行其余动作
type Step struct {
	Wait time.Duration `yaml:"wait"`

	Down   *float64 `yaml:"down"`
	Move   *float64 `yaml:"move"`
	Up     *float64 `yaml:"up"`
	Enter  bool     `yaml:"enter"`
	Leave  bool     `yaml:"leave"`
	Next   bool     `yaml:"next"`
	Prev   bool     `yaml:"prev"`
	GoTo   *int     `yaml:"goto"`
	Click  *int     `yaml:"click"`
	Resize *float64 `yaml:"resize"`
}

// ParseScript 解析脚本，缺省的轮播参数使用 carousel.DefaultConfig
func ParseScript(data []byte) (*Script, error) {
	s := &Script{Carousel: carousel.DefaultConfig(), Slides: 6}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Slides <= 0 {
		return nil, fmt.Errorf("invalid script: %w", carousel.ErrEmptyCollection)
	}
	if s.Viewport <= 0 {
		s.Viewport = s.Carousel.MaxWidth()
	}
	return s, nil
}

// manualClock 由回放推进的时钟
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

// Simulator 无窗口的轮播回放器
// 使用与场景相同的 TrackSystem 和 ViewportSource
type Simulator struct {
	carousel *carousel.Carousel
	track    *systems.TrackSystem
	viewport *systems.ViewportSource
	clock    *manualClock
	out      io.Writer

	elapsed   time.Duration
	activated []carousel.Item
}

// NewSimulator 按脚本创建回放器
func NewSimulator(s *Script, out io.Writer) (*Simulator, error) {
	items := make([]carousel.Item, s.Slides)
	for i := range items {
		id := strconv.Itoa(i + 1)
		items[i] = carousel.Item{ID: id, Title: "Slide " + id, Link: "https://landingpage" + id}
	}

	sim := &Simulator{
		track:    systems.NewTrackSystem(),
		viewport: systems.NewViewportSource(),
		clock:    &manualClock{now: time.Unix(0, 0)},
		out:      out,
	}
	c, err := carousel.New(items, s.Carousel, sim.track,
		carousel.WithClock(sim.clock),
		carousel.WithViewport(sim.viewport),
		carousel.WithActivator(carousel.ActivatorFunc(func(item carousel.Item) error {
			sim.activated = append(sim.activated, item)
			return nil
		})),
	)
	if err != nil {
		return nil, err
	}
	sim.carousel = c
	sim.track.SetOnTransitionEnd(c.TransitionEnd)

	sim.viewport.Set(s.Viewport)
	sim.track.SetReady(true)
	return sim, nil
}

// Close 释放轮播
func (sim *Simulator) Close() {
	sim.carousel.Close()
}

// Activated 返回回放中被激活的条目
func (sim *Simulator) Activated() []carousel.Item {
	return sim.activated
}

// Carousel 返回轮播控制器
func (sim *Simulator) Carousel() *carousel.Carousel {
	return sim.carousel
}

// advance 逐帧推进时钟、轨道动画和自动播放
func (sim *Simulator) advance(d time.Duration) {
	for d > 0 {
		step := min(d, frame)
		d -= step
		sim.elapsed += step
		sim.clock.now = sim.clock.now.Add(step)
		sim.track.Update(step)
		if sim.carousel.Update(step) {
			sim.printf("autoplay")
		}
	}
}

// Run 执行全部步骤
func (sim *Simulator) Run(steps []Step) {
	sim.printf("start")
	for _, st := range steps {
		sim.advance(st.Wait)
		sim.apply(st)
	}
}

func (sim *Simulator) apply(st Step) {
	c := sim.carousel
	if st.Resize != nil {
		sim.viewport.Set(*st.Resize)
		sim.printf("resize %.0f", *st.Resize)
	}
	if st.Enter {
		c.PointerEnter()
		sim.printf("enter")
	}
	if st.Down != nil {
		c.PointerDown(*st.Down)
		sim.printf("down %.0f", *st.Down)
	}
	if st.Move != nil {
		c.PointerMove(*st.Move)
		sim.printf("move %.0f", *st.Move)
	}
	if st.Up != nil {
		if d, ok := c.PointerUp(*st.Up); ok {
			sim.printf("up %.0f: jump %+d v=%.2fpx/ms slides=%.2f duration=%v",
				*st.Up, d.Jump, d.Velocity, d.Slides, d.Duration)
		} else {
			sim.printf("up %.0f: no drag", *st.Up)
		}
	}
	if st.Leave {
		c.PointerLeave()
		sim.printf("leave")
	}
	if st.Next {
		sim.printf("next accepted=%v", c.Next())
	}
	if st.Prev {
		sim.printf("prev accepted=%v", c.Prev())
	}
	if st.GoTo != nil {
		sim.printf("goto %d accepted=%v", *st.GoTo, c.GoTo(*st.GoTo))
	}
	if st.Click != nil {
		item, ok := c.Click(*st.Click)
		sim.printf("click %d: slide %s activated=%v", *st.Click, item.ID, ok)
	}
}

func (sim *Simulator) printf(format string, args ...any) {
	snap := sim.carousel.Snapshot()
	x, _ := sim.track.Translate()
	fmt.Fprintf(sim.out, "%8v  %-9s index=%-3d item=%d x=%8.1f  %s\n",
		sim.elapsed, snap.State, snap.CurrentIndex, snap.ItemIndex, x, fmt.Sprintf(format, args...))
}
