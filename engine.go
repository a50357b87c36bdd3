package globetour

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/teranos/globetour/glitch"
)

// Engine owns all tour and scene state and advances it one frame at a
// time. Every mutation happens on the single frame timeline: commands
// and frame steps are expected to arrive from one goroutine (the UI
// event loop), so the engine carries no locks.
//
// Typical wiring:
//
//	eng := globetour.NewEngine(globetour.DefaultConfig(), logger)
//	eng.OnStop = func(i int, text globetour.ActivationText) { ... }
//	eng.OnOverlay = func(p globetour.Projection) { ... }
//
//	// once per display frame:
//	eng.Step(now)
//
//	// from user controls:
//	eng.Play(now); eng.Pause(now); eng.Replay(now)
type Engine struct {
	cfg     Config
	catalog Catalog
	scene   Scene
	tour    TourState
	log     zerolog.Logger
	faults  *glitch.Handler

	// Active camera motion and the monotonically increasing generation
	// counter that suppresses stale motion samples.
	motion    *cameraMotion
	motionGen uint64

	viewport Viewport
	overlay  Projection
	frame    int64

	// OnStop is invoked on each stop activation, synchronously before
	// that stop's camera tween begins.
	OnStop func(index int, text ActivationText)

	// OnOverlay receives the recomputed screen-space marker projection
	// every frame.
	OnOverlay func(Projection)
}

// NewEngine builds an engine over the configured catalog. Out-of-range
// stop coordinates are clamped and recorded as faults rather than
// rejected.
func NewEngine(cfg Config, log zerolog.Logger) *Engine {
	faults := glitch.NewHandler("tour", glitch.DefaultPolicy())
	return &Engine{
		cfg:     cfg,
		catalog: cfg.Catalog().Sanitize(faults),
		scene:   NewScene(cfg.SpinRate),
		tour:    NewTourState(),
		log:     log,
		faults:  faults,
	}
}

// Step advances the whole visualization by one frame.
//
// Per tick: sample the active camera motion if one is in flight,
// otherwise advance the idle rotation and bob; then advance the tour
// sequencing; then recompute and publish the overlay projection from the
// marker's current world position.
func (e *Engine) Step(now time.Time) {
	e.frame++

	if m := e.motion; m != nil {
		e.applyMotionSample(m, now)
	} else {
		e.scene.advanceIdle()
	}

	e.advanceTour(now)
	e.publishOverlay()
}

// SetViewport tells the engine the overlay coordinate space, in cells.
func (e *Engine) SetViewport(vp Viewport) {
	e.viewport = vp
}

// Viewport returns the current overlay coordinate space.
func (e *Engine) Viewport() Viewport {
	return e.viewport
}

// PointerMoved feeds a pointer position normalized to [-1, 1] per axis
// into the ambient scene tilt.
func (e *Engine) PointerMoved(nx, ny float64) {
	e.scene.SetPointer(nx, ny)
}

// Scene returns the engine's scene state for rendering. The caller must
// treat it as read-only outside the frame timeline.
func (e *Engine) Scene() *Scene {
	return &e.scene
}

// Overlay returns the most recently published marker projection.
func (e *Engine) Overlay() Projection {
	return e.overlay
}

// Catalog returns the (sanitized) stop catalog the tour plays.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// Faults exposes the engine's fault handler for diagnostics.
func (e *Engine) Faults() *glitch.Handler {
	return e.faults
}

// Frame returns the number of frames stepped so far.
func (e *Engine) Frame() int64 {
	return e.frame
}

// publishOverlay recomputes the 2D screen-space position of the marker
// and hands it to the overlay consumer.
func (e *Engine) publishOverlay() {
	e.overlay = ProjectToScreen(e.scene.MarkerWorld(), e.scene.Camera, e.viewport)
	if e.OnOverlay != nil {
		e.OnOverlay(e.overlay)
	}
}
