package globetour

import (
	"time"

	"github.com/teranos/globetour/glitch"
)

// cameraMotion is one in-flight camera tween: a time-bounded eased
// interpolation of the camera position from start to end.
//
// A motion is a transient value object. It is superseded, never merged:
// starting a new motion bumps the engine's generation counter, and a
// motion whose generation no longer matches must not write camera state.
// The generation check is what lets a superseded motion's remaining
// frame callbacks die silently without explicit cancellation.
type cameraMotion struct {
	start      Vec3
	end        Vec3
	startedAt  time.Time
	duration   time.Duration
	generation uint64
}

// progress returns the normalized elapsed fraction, clamped to [0, 1].
func (m *cameraMotion) progress(now time.Time) float64 {
	if m.duration <= 0 {
		return 1
	}
	return Clamp(float64(now.Sub(m.startedAt))/float64(m.duration), 0, 1)
}

// FocusLatLon starts a camera tween toward the given geographic target
// over duration d, superseding any motion already in flight.
//
// The target is converted to a unit direction on the globe, compensated
// for the group's accumulated idle rotation so the camera frames the
// marker where it actually sits, then scaled to the orbit distance. The
// current camera position is captured as the tween start. Sampling
// happens once per frame in Step.
func (e *Engine) FocusLatLon(lat, lon float64, d time.Duration, now time.Time) {
	e.motionGen++
	dir := RotateY(LatLonToVec3(lat, lon, 1), e.scene.RotationY).Normalize()
	e.motion = &cameraMotion{
		start:      e.scene.Camera,
		end:        dir.Scale(OrbitDistance),
		startedAt:  now,
		duration:   d,
		generation: e.motionGen,
	}
	e.scene.Moving = true
	e.log.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Dur("duration", d).
		Uint64("generation", e.motionGen).
		Msg("camera tween started")
}

// applyMotionSample advances one camera motion by a single frame.
//
// A sample from a superseded motion is discarded without touching shared
// camera state; that is the stale-callback policy, recorded as a hiccup
// rather than surfaced as an error. A current motion interpolates the
// camera with the eased progress and self-terminates at t >= 1.
func (e *Engine) applyMotionSample(m *cameraMotion, now time.Time) {
	if m == nil {
		return
	}
	if m.generation != e.motionGen {
		e.faults.Record(glitch.NewHiccup("stale-frame",
			"sample from superseded camera motion discarded",
			glitch.Context{"generation": m.generation, "current": e.motionGen}).
			AtFrame(e.frame))
		return
	}

	t := m.progress(now)
	e.scene.Camera = LerpVec3(m.start, m.end, EaseInOut(t))
	if t >= 1 {
		e.motion = nil
		e.scene.Moving = false
	}
}

// supersedeMotion invalidates any in-flight camera motion without
// starting a new one. Remaining samples from the old motion fail the
// generation check and no-op.
func (e *Engine) supersedeMotion() {
	if e.motion == nil {
		return
	}
	e.motionGen++
	e.motion = nil
	e.scene.Moving = false
}
