package viz

import (
	"image"
	"math"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/scene"
)

func TestCanvasSetAndText(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2800|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	c.Text(1, 1, "T_1 and more")
	if string(c.Grid[1][1:]) != "T_1" {
		t.Errorf("text not clipped to width: %q", string(c.Grid[1]))
	}
	c.Set(2, 4)
	if c.Dot(2, 4) {
		t.Error("dots under text should be dropped")
	}
	if r, ok := c.TextAt(1, 1); !ok || r != 'T' {
		t.Errorf("TextAt(1, 1) = %q, %v", r, ok)
	}
	if !c.Dot(1, 3) || c.Dot(0, 1) {
		t.Error("Dot does not match Set")
	}
	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("canvas not cleared")
	}
}

func TestCanvasStroke(t *testing.T) {
	c := NewCanvas(10, 5)
	v := NewViewport(0)
	v.Fit(scene.Point{X: 0, Y: 0}, scene.Point{X: 1, Y: 1})
	c.Stroke(v, scene.Segment{A: scene.Point{X: 0, Y: 0}, B: scene.Point{X: 1, Y: 1}})

	x0, y0 := c.Project(v, scene.Point{X: 0, Y: 0})
	x1, y1 := c.Project(v, scene.Point{X: 1, Y: 1})
	if !c.Dot(int(x0), int(y0)) || !c.Dot(int(x1), int(y1)) {
		t.Error("stroke should cover both endpoints")
	}
	lit := 0
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.Dot(x, y) {
				lit++
			}
		}
	}
	if lit != 20 {
		t.Errorf("diagonal lit %d dots, want 20", lit)
	}

	c.Clear()
	c.Stroke(v, scene.Segment{A: scene.Point{X: math.NaN()}, B: scene.Point{X: 1}})
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("non-finite segment should draw nothing")
	}
}

func TestViewportProject(t *testing.T) {
	v := NewViewport(0)
	v.Fit(scene.Point{X: -1, Y: -1}, scene.Point{X: 1, Y: 1})
	c := NewCanvas(10, 5)

	x, y := c.Project(v, scene.Point{X: 0, Y: 0})
	if x < 9 || x > 10 || y < 9 || y > 10 {
		t.Errorf("origin projected to (%g, %g), want center", x, y)
	}

	_, top := c.Project(v, scene.Point{X: 0, Y: 1})
	_, bottom := c.Project(v, scene.Point{X: 0, Y: -1})
	if top >= bottom {
		t.Error("world y should grow upward on the canvas")
	}
}

func TestViewportNeverShrinks(t *testing.T) {
	v := NewViewport(0)
	v.Fit(scene.Point{X: -2, Y: -2}, scene.Point{X: 2, Y: 2})
	v.Fit(scene.Point{X: 0, Y: 0}, scene.Point{X: 1, Y: 1})
	if v.Lo.X != -2 || v.Hi.Y != 2 {
		t.Errorf("viewport shrank to %+v..%+v", v.Lo, v.Hi)
	}
}

func TestSnapshotDrawsScene(t *testing.T) {
	s, err := scene.Build("pendulums", config.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Snapshot(s, 30, 1.0/60, 60, 20)
	if err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 30 {
		t.Errorf("frames = %d, want 30", s.Frames())
	}
	out := c.String()
	if !strings.Contains(out, "T_1 = 2 s") || !strings.Contains(out, "T_2 = 3 s") {
		t.Errorf("period labels missing from snapshot:\n%s", out)
	}
	if strings.Trim(out, "⠀\n") == "" {
		t.Error("snapshot is blank")
	}
}

func TestModelTicksScene(t *testing.T) {
	s, err := scene.Build("spring", config.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = NewModel(s, Options{FPS: 60, Duration: 1})
	for i := 0; i < 10; i++ {
		m, _ = m.Update(TickMsg{})
	}
	if s.Frames() != 10 {
		t.Errorf("expected 10 frames, got %d", s.Frames())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(TickMsg{})
	if s.Frames() != 10 {
		t.Error("paused model should not advance")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'.'}})
	if s.Frames() != 11 {
		t.Error("single step should advance one frame")
	}

	if !strings.Contains(m.View(), "SPRING") {
		t.Error("view should contain the scene name")
	}
}

func TestModelStopsAtDuration(t *testing.T) {
	s, _ := scene.Build("pendulum", config.DefaultConfig(), nil, nil)
	var m tea.Model = NewModel(s, Options{FPS: 10, Duration: 0.45})
	for i := 0; i < 20; i++ {
		m, _ = m.Update(TickMsg{})
	}
	if s.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", s.Frames())
	}
}

func TestSaveGIF(t *testing.T) {
	c := NewCanvas(8, 4)
	v := NewViewport(0)
	v.Fit(scene.Point{}, scene.Point{X: 1, Y: 1})
	c.Stroke(v, scene.Segment{A: scene.Point{}, B: scene.Point{X: 1, Y: 1}})
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := SaveGIF(path, nil, 60); err == nil {
		t.Error("expected error with no frames")
	}
	if err := SaveGIF(path, []*image.Paletted{CaptureFrame(c)}, 60); err != nil {
		t.Fatal(err)
	}
}

func TestThemes(t *testing.T) {
	th, ok := GetTheme("ocean")
	if !ok || th.Name != "ocean" {
		t.Fatal("ocean theme missing")
	}
	if _, ok := GetTheme("nope"); ok {
		t.Error("unknown theme should report false")
	}
	seen := map[string]bool{}
	cur := Themes[0]
	for range Themes {
		seen[cur.Name] = true
		cur = NextTheme(cur)
	}
	if len(seen) != len(Themes) {
		t.Error("NextTheme does not visit every theme")
	}
}
