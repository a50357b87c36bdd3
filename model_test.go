package globetour

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, cfg Config) Model {
	t.Helper()
	return NewModel(cfg, zerolog.Nop())
}

// update runs one Update and narrows the returned tea.Model back down.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_InitArmsFrameClock(t *testing.T) {
	m := newTestModel(t, DefaultConfig())
	assert.NotNil(t, m.Init())
	assert.Nil(t, m.film, "no capture dir, no film stage")
	assert.Nil(t, m.report, "no report path, no report")
}

func TestModel_FrameMsgStepsEngine(t *testing.T) {
	m := newTestModel(t, DefaultConfig())
	t0 := time.Unix(0, 0)

	m, cmd := update(t, m, frameMsg(t0.Add(testFrame)))

	assert.Equal(t, int64(1), m.Engine().Frame())
	assert.NotNil(t, cmd, "every frame re-arms the next tick")
}

// A tall enough window report fires the one-shot auto start; a short one
// leaves the tour idle.
func TestModel_WindowSizeAutoStart(t *testing.T) {
	m := newTestModel(t, DefaultConfig())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 5})
	assert.Equal(t, PhaseIdle, m.Engine().Phase())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, PhaseRunning, m.Engine().Phase())
	assert.Equal(t, Viewport{Width: 80, Height: 30 - hudRows - 1}, m.Engine().Viewport())

	// Resizing again must not restart anything.
	m.Engine().Pause(time.Now())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Equal(t, PhasePaused, m.Engine().Phase())
}

func TestModel_KeyControls(t *testing.T) {
	m := newTestModel(t, DefaultConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Equal(t, PhaseRunning, m.Engine().Phase())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, PhasePaused, m.Engine().Phase())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, PhaseRunning, m.Engine().Phase())
	assert.Equal(t, 0, m.Engine().CurrentIndex())
}

func TestModel_QuitWritesReport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReportPath = filepath.Join(t.TempDir(), "tour.html")
	m := newTestModel(t, cfg)
	require.NotNil(t, m.report)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), DefaultCatalog()[0].Name)
}

// Mouse motion maps terminal cells to the normalized pointer range and
// the resulting tilt stays inside the clamp.
func TestModel_MouseTilt(t *testing.T) {
	m := newTestModel(t, DefaultConfig())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 5})

	m, _ = update(t, m, tea.MouseMsg{X: 79, Y: 4, Action: tea.MouseActionMotion})
	scene := m.Engine().Scene()
	assert.NotZero(t, scene.TiltX)
	assert.NotZero(t, scene.TiltZ)
	assert.LessOrEqual(t, scene.TiltX, MaxTilt)
	assert.GreaterOrEqual(t, scene.TiltX, -MaxTilt)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.LessOrEqual(t, m.Engine().Scene().TiltZ, MaxTilt)
}

func TestModel_ViewLayout(t *testing.T) {
	m := newTestModel(t, DefaultConfig())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m, _ = update(t, m, frameMsg(time.Unix(0, 0).Add(testFrame)))

	view := m.View()
	assert.Contains(t, view, "GLOBETOUR")
	assert.Contains(t, view, "p play")
	// The globe disc shows up as ocean dot glyphs.
	assert.Contains(t, view, "·")

	lines := strings.Split(view, "\n")
	assert.GreaterOrEqual(t, len(lines), 30-hudRows-1)
}

func TestModel_ViewShowsActiveStop(t *testing.T) {
	m := newTestModel(t, DefaultConfig())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	require.Equal(t, PhaseRunning, m.Engine().Phase())

	view := m.View()
	stop := m.Engine().Catalog()[0]
	assert.Contains(t, view, stop.Name)
	assert.Contains(t, view, stop.Description)
	assert.Contains(t, view, "01 / 05")
}

// A degenerate terminal must never panic the renderer.
func TestModel_ViewTinyViewport(t *testing.T) {
	m := newTestModel(t, DefaultConfig())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 1, Height: 1})

	assert.NotPanics(t, func() { m.View() })
}

func TestRenderGlobe_DiscShape(t *testing.T) {
	scene := NewScene(0)
	vp := Viewport{Width: 40, Height: 20}

	rows := renderGlobe(&scene, vp)
	require.Len(t, rows, vp.Height)

	// Corners are outside the disc, the center is inside it.
	assert.Equal(t, ' ', rows[0][0])
	assert.Equal(t, ' ', rows[vp.Height-1][vp.Width-1])
	center := rows[vp.Height/2][vp.Width/2]
	assert.Contains(t, []rune{'@', '%', '·'}, center)
}

func TestSpliceOverlay(t *testing.T) {
	row := []rune("....................")

	out := spliceOverlay(row, 5, "●", "Tokyo")
	plain := stripANSI(out)
	assert.Contains(t, plain, "● Tokyo")

	// Near the right edge the label truncates instead of overflowing.
	edge := stripANSI(spliceOverlay(row, 17, "●", "Reykjavík"))
	assert.Len(t, []rune(edge), len(row))

	// Positions past the row leave it untouched.
	assert.Equal(t, string(row), stripANSI(spliceOverlay(row, 25, "●", "x")))
}

func TestLandAt(t *testing.T) {
	assert.False(t, landAt(0, -140), "mid-Pacific is water")
	assert.True(t, landAt(55, 40), "continental Russia is land")
	assert.False(t, landAt(-80, 100), "mask has no antarctic row")
	// Out-of-range inputs clamp instead of panicking.
	assert.NotPanics(t, func() { landAt(200, 400) })
}
