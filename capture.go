package globetour

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/teranos/globetour/glitch"
)

// FilmConfig defines the visual parameters for tour footage capture.
type FilmConfig struct {
	Width      int        // Canvas width in characters
	Height     int        // Canvas height in characters
	Background color.RGBA // Background color
	Foreground color.RGBA // Text color
	OutputDir  string     // Directory to save frames into
}

// DefaultFilmConfig returns an 80x30 dark frame writing into dir.
func DefaultFilmConfig(dir string) FilmConfig {
	return FilmConfig{
		Width:      80,
		Height:     30,
		Background: color.RGBA{8, 10, 18, 255},
		Foreground: color.RGBA{220, 226, 235, 255},
		OutputDir:  dir,
	}
}

// FilmStage turns rendered view text into numbered PNG frames, so a tour
// run leaves behind footage that can be scrubbed or diffed afterwards.
type FilmStage struct {
	config     FilmConfig
	charWidth  int
	charHeight int
	face       font.Face
	frame      int
}

// NewFilmStage creates a film stage writing into the configured
// directory, creating it if needed.
func NewFilmStage(config FilmConfig) *FilmStage {
	if config.OutputDir != "" {
		os.MkdirAll(config.OutputDir, 0755)
	}

	return &FilmStage{
		config:     config,
		charWidth:  8,
		charHeight: 16,
		face:       basicfont.Face7x13,
	}
}

// FrameCount returns how many frames have been captured so far.
func (fs *FilmStage) FrameCount() int {
	return fs.frame
}

// Capture renders one view frame to the next numbered PNG. Capture
// failures are recorded as harmless faults rather than returned: a
// dropped frame must never stall the animation it is filming.
func (fs *FilmStage) Capture(view string, faults *glitch.Handler) {
	name := filepath.Join(fs.config.OutputDir, fmt.Sprintf("frame_%05d.png", fs.frame))
	fs.frame++

	if err := fs.CaptureTo(view, name); err != nil && faults != nil {
		faults.Record(glitch.NewHiccup("capture",
			fmt.Sprintf("frame capture failed: %v", err),
			glitch.Context{"file": name}))
	}
}

// CaptureTo renders view text into a PNG at the given path.
func (fs *FilmStage) CaptureTo(view, filename string) error {
	width := fs.config.Width * fs.charWidth
	height := fs.config.Height * fs.charHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fs.config.Background)
		}
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fs.config.Foreground),
		Face: fs.face,
	}

	for lineIdx, line := range strings.Split(stripANSI(view), "\n") {
		if lineIdx >= fs.config.Height {
			break
		}
		for charIdx, char := range []rune(line) {
			if charIdx >= fs.config.Width {
				break
			}
			if char == ' ' {
				continue
			}
			drawer.Dot = fixed.Point26_6{
				X: fixed.Int26_6((charIdx * fs.charWidth) << 6),
				Y: fixed.Int26_6(((lineIdx + 1) * fs.charHeight) << 6),
			}
			drawer.DrawString(string(char))
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences before rasterizing; colors are
// the terminal's job, the footage keeps the glyphs.
func stripANSI(text string) string {
	return ansiRegex.ReplaceAllString(text, "")
}

// FrameDifference returns the fraction of pixels that differ between two
// frames of equal size. Frames of different sizes count as fully
// different.
func FrameDifference(a, b image.Image) float64 {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return 1
	}

	total := ba.Dx() * ba.Dy()
	if total == 0 {
		return 0
	}

	diff := 0
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			r1, g1, b1, _ := a.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			r2, g2, b2, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				diff++
			}
		}
	}
	return float64(diff) / float64(total)
}

// DetectFreeze reports whether two consecutive frames are so similar
// that the animation has effectively stopped advancing. The tour is in
// constant motion (tween, idle spin, bob, pulse), so consecutive frames
// below tolerance indicate a frozen render loop.
func DetectFreeze(a, b image.Image, tolerance float64) bool {
	return FrameDifference(a, b) <= tolerance
}

// LoadFrame reads a previously captured PNG frame back for comparison.
func LoadFrame(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	return img, nil
}
