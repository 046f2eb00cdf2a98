package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/scene"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	historyCapacity = 600
)

type TickMsg time.Time

type Options struct {
	FPS      int
	Dt       float64
	Duration float64
	Width    int
	Height   int
	Theme    string
	GIFPath  string
	Log      *logging.Logger
}

// Model drives a scene from the Bubble Tea tick and renders it.
type Model struct {
	scene    *scene.Scene
	opts     Options
	canvas   *Canvas
	view     *Viewport
	theme    Theme
	st       styles
	running  bool
	frame    int
	traces   map[string][]float64
	err      error
	done     bool
	showHelp bool

	recording bool
	frames    []*image.Paletted

	log *logging.Logger
}

func NewModel(s *scene.Scene, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Dt <= 0 {
		opts.Dt = 1 / float64(opts.FPS)
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.GIFPath == "" {
		opts.GIFPath = s.Name + ".gif"
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	theme, _ := GetTheme(opts.Theme)

	return Model{
		scene:   s,
		opts:    opts,
		canvas:  NewCanvas(opts.Width, opts.Height),
		view:    NewViewport(0.5),
		theme:   theme,
		st:      newStyles(theme),
		running: true,
		traces:  make(map[string][]float64),
		log:     log.Named("viz"),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the scene one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = m.frames[:0]
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme)
			m.st = newStyles(m.theme)
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		if m.err != nil {
			m.stopRecording()
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the scene by one frame and records actor values.
func (m *Model) step() {
	if m.opts.Duration > 0 && m.scene.Elapsed() >= m.opts.Duration {
		m.done = true
		m.running = false
		return
	}
	if err := m.scene.Tick(m.opts.Dt); err != nil {
		m.err = err
		m.log.Error("scene tick failed", logging.Err(err))
		return
	}
	m.frame++
	for _, a := range m.scene.Actors() {
		tr := append(m.traces[a.Name()], a.Value())
		if len(tr) > historyCapacity {
			tr = tr[1:]
		}
		m.traces[a.Name()] = tr
	}
	m.canvas.Render(m.scene, m.view)
	if m.recording {
		m.frames = append(m.frames, CaptureFrame(m.canvas))
	}
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if err := SaveGIF(m.opts.GIFPath, m.frames, m.opts.FPS); err != nil {
		m.log.Warn("gif not saved", logging.String("path", m.opts.GIFPath), logging.Err(err))
	} else {
		m.log.Info("gif saved", logging.String("path", m.opts.GIFPath), logging.Int("frames", len(m.frames)))
	}
	m.frames = nil
}

// Err reports the error that stopped the scene, if any.
func (m Model) Err() error { return m.err }

func (m Model) status() string {
	switch {
	case m.err != nil:
		return m.st.errText.Render("ERROR " + m.err.Error())
	case m.done:
		return m.st.paused.Render("DONE")
	case m.recording:
		return m.st.recording.Render("● REC")
	case !m.running:
		return m.st.paused.Render("PAUSED")
	default:
		return m.st.running.Render(AnimatedSpinner(m.frame) + " RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.frame == 0 {
		m.canvas.Render(m.scene, m.view)
	}
	canvasView := m.st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.st.header.Render(GradientText(strings.ToUpper(m.scene.Name), m.theme.Primary, m.theme.Secondary)) + "\n")
	s.WriteString(m.status() + "\n\n")

	s.WriteString(m.st.label.Render("Time") + m.st.value.Render(fmt.Sprintf("%.2fs", m.scene.Elapsed())) + "\n")
	s.WriteString(m.st.label.Render("Frames") + m.st.value.Render(fmt.Sprintf("%d", m.scene.Frames())) + "\n")
	if m.opts.Duration > 0 {
		s.WriteString(m.st.label.Render("Progress") + m.st.ProgressBar(m.scene.Elapsed()/m.opts.Duration, 20) + "\n")
	}

	actors := m.scene.Actors()
	if len(actors) > 0 {
		first := m.traces[actors[0].Name()]
		if len(first) > 1 {
			chart := asciigraph.Plot(first, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption(actors[0].Name()))
			s.WriteString(m.st.graph.Render(chart) + "\n")
		}
	}

	s.WriteString("\nACTORS\n")
	for _, a := range actors {
		s.WriteString(m.st.label.Render(a.Name()) + m.st.value.Render(fmt.Sprintf("%+.4f", a.Value())) + "\n")
		s.WriteString("  " + m.st.Sparkline(m.traces[a.Name()], 30) + "\n")
	}
	for _, l := range m.scene.Labels() {
		s.WriteString(m.st.label.Render("label") + m.st.value.Render(l.Text) + "\n")
	}

	s.WriteString(m.st.hint.Render("SP:Pause .:Step Q:Quit\nT:Theme G:Record ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single frame (paused)    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view and blocks until the user quits.
func Run(s *scene.Scene, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// Snapshot advances s by frames frames of dt and returns the final canvas.
func Snapshot(s *scene.Scene, frames int, dt float64, width, height int) (*Canvas, error) {
	for i := 0; i < frames; i++ {
		if err := s.Tick(dt); err != nil {
			return nil, err
		}
	}
	c := NewCanvas(width, height)
	c.Render(s, NewViewport(0.5))
	return c, nil
}
