package globetour

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// referenceRows approximates the full "page" height the globe section
// occupies. The auto-start trigger compares the actual terminal height
// against this to decide when enough of the globe is on screen.
const referenceRows = 34

// hudRows is the vertical space reserved below the globe canvas for the
// stop text and controls.
const hudRows = 7

// frameMsg is one tick of the display frame clock. All animation steps
// run as handlers of this message; frame boundaries are the only
// suspension points in the system.
type frameMsg time.Time

// Model is the bubbletea program driving the globe tour. It owns the
// engine and translates terminal events into engine commands:
//
//	p          play
//	s          pause
//	r          replay
//	q / ctrl+c quit
//
// Mouse motion feeds the ambient pointer tilt, and the first window
// size report that shows enough of the globe fires the one-shot
// automatic tour start.
type Model struct {
	engine *Engine
	cfg    Config
	log    zerolog.Logger

	film   *FilmStage
	report *TourReport

	width  int
	height int
}

// NewModel wires a fresh engine into a runnable TUI model.
func NewModel(cfg Config, log zerolog.Logger) Model {
	m := Model{
		engine: NewEngine(cfg, log),
		cfg:    cfg,
		log:    log,
	}

	if cfg.CaptureDir != "" {
		m.film = NewFilmStage(DefaultFilmConfig(cfg.CaptureDir))
	}
	if cfg.ReportPath != "" {
		m.report = NewTourReport("Globe tour", m.engine.Catalog())
		m.engine.OnStop = m.report.RecordActivation
	}

	return m
}

// Engine exposes the underlying engine, mainly for tests and embedding.
func (m Model) Engine() *Engine {
	return m.engine
}

// Init implements tea.Model: it arms the first frame tick.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.engine.Step(time.Time(msg))
		if m.film != nil {
			m.film.Capture(m.View(), m.engine.Faults())
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion && m.width > 1 && m.height > 1 {
			nx := 2*float64(msg.X)/float64(m.width-1) - 1
			ny := 2*float64(msg.Y)/float64(m.height-1) - 1
			m.engine.PointerMoved(nx, ny)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetViewport(m.canvasViewport())
		// The globe section auto-starts the tour the first time enough
		// of it is visible; the engine latches so this can only fire
		// once even if the terminal keeps resizing.
		if float64(msg.Height) >= m.cfg.VisibleFraction*referenceRows {
			m.engine.OnFirstSight(time.Now())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch msg.String() {
	case "p":
		m.engine.Play(now)
	case "s", " ":
		m.engine.Pause(now)
	case "r":
		m.engine.Replay(now)
	case "q", "ctrl+c":
		if m.report != nil {
			m.report.Finish(m.engine.Phase() == PhaseFinished)
			if err := m.report.WriteHTML(m.cfg.ReportPath); err != nil {
				m.log.Error().Err(err).Msg("failed to write tour report")
			}
		}
		return m, tea.Quit
	}
	return m, nil
}

// canvasViewport is the cell region the globe (and therefore the
// overlay coordinate space) occupies inside the terminal.
func (m Model) canvasViewport() Viewport {
	w := m.width
	h := m.height - hudRows - 1
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return Viewport{Width: w, Height: h}
}
