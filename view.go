package globetour

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// landMask is a coarse equirectangular land/water map, 48 columns by 16
// rows: column 0 is longitude -180°, row 0 is latitude +90°. '#' marks
// land. Accuracy is whatever survives 7.5° per cell; it only has to read
// as Earth from across the room.
var landMask = []string{
	"                                                ",
	"        ###  ################     ##############",
	"   ################   ## ###################### ",
	"    ##############      ######################  ",
	"      ###########        #####################  ",
	"       ########          ##############  ###    ",
	"        #####            ######## #####   #     ",
	"         ###   #          ###########           ",
	"          ## #####         ########   #  #      ",
	"            ########        ######    ## ##     ",
	"            #########        ####     ######    ",
	"             ########         ##      ######    ",
	"             ######                     ##      ",
	"              ###                               ",
	"               #                                ",
	"                                                ",
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	phaseStyle  = lipgloss.NewStyle().Faint(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("222"))
	metaStyle   = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("110"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	pulseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// landAt samples the land mask at geographic coordinates in degrees.
func landAt(lat, lon float64) bool {
	rows := len(landMask)
	if rows == 0 {
		return false
	}
	cols := len(landMask[0])

	row := int((90 - lat) / 180 * float64(rows))
	col := int((lon + 180) / 360 * float64(cols))
	if row < 0 {
		row = 0
	}
	if row >= rows {
		row = rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= cols {
		col = cols - 1
	}
	return landMask[row][col] == '#'
}

// renderGlobe rasterizes the visible hemisphere of the globe into rows
// of runes, honoring the scene's rotation, tilt and bob.
//
// The disc is drawn orthographically: for each cell inside the disc the
// matching surface point is lifted back through the group transforms
// into texture space and the land mask sampled there. Limb cells get
// dimmer glyphs so the sphere reads as a sphere.
func renderGlobe(s *Scene, vp Viewport) [][]rune {
	rows := make([][]rune, vp.Height)
	for y := range rows {
		rows[y] = make([]rune, vp.Width)
		for x := range rows[y] {
			rows[y][x] = ' '
		}
	}
	if vp.Width < 4 || vp.Height < 4 {
		return rows
	}

	cx := float64(vp.Width) / 2
	cy := float64(vp.Height)/2 - s.BobOffset*float64(vp.Height)/2
	r := float64(vp.Height)/2 - 1
	if r < 1 {
		return rows
	}

	// Camera basis; the disc is rendered as seen from the camera side.
	forward := s.Camera.Scale(-1).Normalize()
	right := forward.Cross(Vec3{Y: 1}).Normalize()
	if right.Norm() == 0 {
		right = Vec3{X: 1}
	}
	up := right.Cross(forward)

	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			dx := (float64(x) - cx) * cellAspect / r
			dy := (cy - float64(y)) / r
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			z := math.Sqrt(1 - d2)

			surface := right.Scale(dx).Add(up.Scale(dy)).Sub(forward.Scale(z)).Scale(GlobeRadius)
			lat, lon := Vec3ToLatLon(s.SurfaceToTexture(surface))

			var glyph rune
			if landAt(lat, lon) {
				if z > 0.45 {
					glyph = '@'
				} else {
					glyph = '%'
				}
			} else {
				if z > 0.45 {
					glyph = '·'
				} else {
					glyph = ' '
				}
			}
			rows[y][x] = glyph
		}
	}
	return rows
}

// View implements tea.Model: header, globe canvas with the marker
// overlay composited on top, and the stop HUD.
func (m Model) View() string {
	vp := m.canvasViewport()
	scene := m.engine.Scene()

	var b strings.Builder

	b.WriteString(headerStyle.Render("GLOBETOUR"))
	b.WriteString("  ")
	b.WriteString(phaseStyle.Render("[" + m.engine.Phase().String() + "]"))
	b.WriteString("\n")

	canvas := renderGlobe(scene, vp)
	overlay := m.engine.Overlay()

	pulse, label := overlayStrings(overlay, m.engine, vp)
	for y, row := range canvas {
		line := string(row)
		if overlay.Visible && y == clampCell(overlay.Y, vp.Height) {
			line = spliceOverlay(row, clampCell(overlay.X, vp.Width), pulse, label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.renderHUD(vp.Width))
	return b.String()
}

// overlayStrings produces the pulse glyph and label text to composite
// at the marker's projected position. Both are hidden while the
// projection is out of the visible depth range.
func overlayStrings(p Projection, e *Engine, vp Viewport) (string, string) {
	if !p.Visible {
		return "", ""
	}
	pulse := "◎"
	if e.Frame()%20 < 10 {
		pulse = "●"
	}
	label := ""
	if i := e.CurrentIndex(); i >= 0 && i < len(e.Catalog()) {
		label = e.Catalog()[i].City
	}
	return pulse, label
}

// spliceOverlay overwrites one canvas row with the pulse and label at
// cell x, keeping everything inside the row bounds.
func spliceOverlay(row []rune, x int, pulse, label string) string {
	out := make([]rune, len(row))
	copy(out, row)

	if x >= 0 && x < len(out) && pulse != "" {
		out[x] = []rune(pulse)[0]
	}

	text := []rune(" " + label)
	for i, r := range text {
		pos := x + 1 + i
		if pos < 0 || pos >= len(out) {
			break
		}
		out[pos] = r
	}

	// Style the pulse and label segment; the rest of the row stays raw.
	if x < 0 || x >= len(out) {
		return string(out)
	}
	end := x + 1 + len(text)
	if end > len(out) {
		end = len(out)
	}
	return string(out[:x]) +
		pulseStyle.Render(string(out[x:x+1])) +
		labelStyle.Render(string(out[x+1:end])) +
		string(out[end:])
}

func clampCell(v float64, max int) int {
	c := int(math.Round(v))
	if c < 0 {
		return 0
	}
	if c >= max {
		return max - 1
	}
	return c
}

// renderHUD draws the active stop's text and the control hints.
func (m Model) renderHUD(width int) string {
	var b strings.Builder

	catalog := m.engine.Catalog()
	idx := m.engine.CurrentIndex()

	if idx >= 0 && idx < len(catalog) {
		text := catalog[idx].Text()
		b.WriteString(titleStyle.Render(text.Title))
		b.WriteString("  ")
		b.WriteString(metaStyle.Render(fmt.Sprintf("%s   %02d / %02d", text.Meta, idx+1, len(catalog))))
		b.WriteString("\n")
		b.WriteString(descStyle.Width(max(width, 20)).Render(text.Description))
		b.WriteString("\n")
	} else {
		b.WriteString(phaseStyle.Render("A guided tour of five places worth the trip."))
		b.WriteString("\n\n")
	}

	b.WriteString(hintStyle.Render("p play · s pause · r replay · q quit"))
	b.WriteString("\n")
	return b.String()
}
