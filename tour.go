package globetour

import (
	"time"

	"github.com/teranos/globetour/glitch"
)

// Phase is the tour orchestrator's lifecycle state.
type Phase int

const (
	// PhaseIdle is the initial state: the globe spins gently, no tour
	// has started.
	PhaseIdle Phase = iota
	// PhaseRunning means a tour sequence is in flight.
	PhaseRunning
	// PhasePaused means a sequence was interrupted and may be resumed
	// from the current stop.
	PhasePaused
	// PhaseFinished means a full pass through the catalog completed.
	// Terminal for the automatic trigger; Play and Replay may still
	// re-enter Running.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// holdTimer is the cancellable dwell period after reaching a stop.
//
// It is the awaitable-with-cancel of the sequencer: the frame check
// treats "cancelled or deadline passed" as resolution, so cancelling
// unblocks the in-flight sequencing step on the very next frame instead
// of waiting out the timer. Cancelling a hold never aborts the camera
// tween that overlaps it; tweens end by elapsed time or supersession.
type holdTimer struct {
	deadline  time.Time
	cancelled bool
}

// Cancel resolves the hold early, discarding the remaining wait.
func (h *holdTimer) Cancel() {
	h.cancelled = true
}

// Cancelled reports whether the hold was resolved by cancellation.
func (h *holdTimer) Cancelled() bool {
	return h.cancelled
}

// Resolved reports whether the hold has ended, by cancellation or by
// its deadline passing.
func (h *holdTimer) Resolved(now time.Time) bool {
	return h.cancelled || !now.Before(h.deadline)
}

// TourState is the orchestrator's mutable state: the phase machine, the
// current stop pointer, and the pending hold. There is exactly one
// TourState per engine and exactly one hold slot, which is what makes
// "at most one tour sequence in flight" a structural property rather
// than a timing assumption.
type TourState struct {
	phase Phase

	// index is the current stop, in [0, N-1], or -1 before the first
	// activation.
	index int

	// hold is non-nil only during the hold window of a Running phase.
	hold *holdTimer

	// finalePending and finaleAt track the end-of-tour pull-back: once
	// finaleAt passes while Running, the tour is Finished.
	finalePending bool
	finaleAt      time.Time

	// autoFired latches the one-shot automatic trigger.
	autoFired bool

	// completedOnce blocks the automatic trigger forever after a full
	// pass has finished.
	completedOnce bool
}

// NewTourState returns the initial orchestrator state.
func NewTourState() TourState {
	return TourState{phase: PhaseIdle, index: -1}
}

// CancelHold invokes and clears the pending hold, if any. After the
// call the sequencing step is unblocked and the hold slot is empty.
func (ts *TourState) CancelHold() {
	if ts.hold != nil {
		ts.hold.Cancel()
		ts.hold = nil
	}
}

// Phase returns the orchestrator's current phase.
func (e *Engine) Phase() Phase {
	return e.tour.phase
}

// CurrentIndex returns the current stop index, or -1 before the first
// activation.
func (e *Engine) CurrentIndex() int {
	return e.tour.index
}

// Play starts or resumes the tour. Invoking Play while already Running
// is an idempotent no-op. Sequencing begins from the current stop, or
// from stop 0 when none has been activated yet.
func (e *Engine) Play(now time.Time) {
	if e.tour.phase == PhaseRunning {
		e.faults.Record(glitch.NewHiccup("command", "play while already running",
			nil).AtFrame(e.frame))
		return
	}

	e.tour.phase = PhaseRunning
	e.scene.SpinRate = 0
	e.log.Info().Int("index", e.tour.index).Msg("tour play")

	if e.tour.finalePending {
		// Resuming into the pull-back: re-issue the neutral tween.
		e.beginFinale(now)
		return
	}
	if e.tour.index < 0 {
		e.tour.index = 0
	}
	e.activateStop(e.tour.index, now)
}

// Pause interrupts a running tour: the phase leaves Running, a light
// idle auto-rotation is restored, and the pending hold is cancelled so
// the in-flight sequencing step unblocks immediately instead of waiting
// out its timer. Pausing while not Running is a no-op.
func (e *Engine) Pause(now time.Time) {
	if e.tour.phase != PhaseRunning {
		e.faults.Record(glitch.NewHiccup("command", "pause while not running",
			nil).AtFrame(e.frame))
		return
	}

	e.tour.phase = PhasePaused
	e.scene.SpinRate = e.cfg.PausedSpinRate
	e.tour.CancelHold()
	e.log.Info().Int("index", e.tour.index).Msg("tour paused")
}

// Replay unconditionally stops any in-flight sequence and starts a
// fresh one from stop 0.
//
// Cancellation is fully synchronous: the pending hold is invoked and
// cleared, the in-flight tween is superseded via the generation counter,
// and the new sequence starts on the same frame timeline. All of the
// prior sequence's future side effects are already dead when the new
// activation runs, so no settling delay is needed and rapid Replay calls
// can never leave two sequences racing.
func (e *Engine) Replay(now time.Time) {
	e.tour.CancelHold()
	e.supersedeMotion()
	e.tour.finalePending = false
	e.scene.SpinRate = 0
	e.tour.phase = PhaseRunning
	e.tour.index = 0
	e.log.Info().Msg("tour replay")
	e.activateStop(0, now)
}

// OnFirstSight is the automatic trigger: it fires the tour at most once
// per engine lifetime, when the globe first scrolls into view, and only
// if the tour has never completed and is not currently running.
func (e *Engine) OnFirstSight(now time.Time) {
	if e.tour.autoFired || e.tour.completedOnce || e.tour.phase == PhaseRunning {
		return
	}
	e.tour.autoFired = true
	e.tour.index = -1
	e.tour.finalePending = false
	e.log.Info().Msg("tour auto-started on first sight")
	e.Play(now)
}

// advanceTour runs the per-frame sequencing check: resolve an expired or
// cancelled hold, move to the next stop while Running, and finish the
// tour once the finale tween has played out.
func (e *Engine) advanceTour(now time.Time) {
	st := &e.tour

	if st.hold != nil && st.hold.Resolved(now) {
		cancelled := st.hold.Cancelled()
		st.hold = nil
		// A cancelled hold means the tour was externally stopped during
		// the wait; abort without advancing. A natural expiry advances,
		// but only after the overlapping tween has settled, so the stop
		// dwells for max(tween, hold).
		if !cancelled && st.phase == PhaseRunning {
			if e.scene.Moving {
				st.hold = &holdTimer{deadline: now}
				return
			}
			e.nextStop(now)
		}
	}

	if st.finalePending && st.phase == PhaseRunning && !now.Before(st.finaleAt) {
		st.finalePending = false
		st.phase = PhaseFinished
		st.completedOnce = true
		e.scene.SpinRate = 0
		e.log.Info().Msg("tour finished")
	}
}

// nextStop advances the stop pointer, activating the next stop or, past
// the end of the catalog, beginning the finale pull-back.
func (e *Engine) nextStop(now time.Time) {
	if e.tour.index+1 < len(e.catalog) {
		e.tour.index++
		e.activateStop(e.tour.index, now)
		return
	}
	e.beginFinale(now)
}

// activateStop makes stop i current: the overlay text is published and
// the marker moved synchronously, before the camera tween toward the
// stop begins; the hold window is armed only after the tween is
// initiated.
func (e *Engine) activateStop(i int, now time.Time) {
	if i < 0 || i >= len(e.catalog) {
		e.faults.Record(glitch.NewFault("command", "activation index out of range",
			glitch.Context{"index": i}).AtFrame(e.frame))
		return
	}

	stop := e.catalog[i]
	e.tour.index = i

	if e.OnStop != nil {
		e.OnStop(i, stop.Text())
	}
	e.scene.MovePin(stop.Lat, stop.Lon)
	e.FocusLatLon(stop.Lat, stop.Lon, e.cfg.TweenDuration, now)
	e.tour.hold = &holdTimer{deadline: now.Add(e.cfg.HoldDuration)}

	e.log.Info().
		Int("index", i).
		Str("stop", stop.Name).
		Msg("stop activated")
}

// beginFinale issues the end-of-tour camera tween toward the neutral
// viewing direction. The tour is marked Finished once its duration
// elapses.
func (e *Engine) beginFinale(now time.Time) {
	e.tour.finalePending = true
	e.tour.finaleAt = now.Add(e.cfg.FinaleDuration)
	e.FocusLatLon(e.cfg.NeutralLat, e.cfg.NeutralLon, e.cfg.FinaleDuration, now)
	e.log.Info().Msg("tour finale started")
}
