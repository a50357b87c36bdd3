// Package glitch provides fault handling for animation and rendering pipelines.
//
// The package uses playback metaphors for animation faults - when an animation
// step goes wrong the picture "hiccups" or "stutters", and in the worst case it
// "freezes". Faults are collected rather than raised: a best-effort visual
// system degrades to "the animation does not advance", it never crashes.
package glitch

import (
	"fmt"
	"strings"
	"time"
)

// Fault represents a problem during animation playback with rich context.
//
// Faults categorize the failure modes of a frame-driven animation engine,
// providing structured context for debugging without interrupting playback.
//
// Fault kinds:
//   - "stale-frame": a frame callback belonging to a superseded motion
//   - "coordinate": out-of-range geographic input that was clamped
//   - "command": a control command that arrived in the wrong state
//   - "capture": frame capture or encoding failures
//
// Example usage:
//
//	f := NewHiccup("stale-frame", "superseded motion sampled",
//	    Context{"generation": 3, "current": 5})
//
//	if f.Harmless() {
//	    // Playback continues; the stale sample was discarded.
//	}
type Fault struct {
	Kind      string    // Fault category for systematic handling
	Message   string    // Human-readable description
	Context   Context   // Additional debugging information
	Timestamp time.Time // When the fault occurred
	Frame     int64     // Frame number at which the fault occurred, if known
	Severity  Severity  // How serious this fault is
}

// Context provides structured debugging information for faults.
type Context map[string]interface{}

// Severity indicates how serious a fault is and how it should be handled.
type Severity int

const (
	// Hiccup indicates a harmless blip that playback absorbs unnoticed.
	// Examples: a stale frame callback discarded, a dropped capture frame.
	Hiccup Severity = iota

	// Stutter indicates a visible issue that may degrade the animation.
	// Examples: clamped coordinates, a command rejected mid-transition.
	Stutter

	// Freeze indicates the animation stopped advancing entirely.
	Freeze
)

func (s Severity) String() string {
	switch s {
	case Hiccup:
		return "hiccup"
	case Stutter:
		return "stutter"
	case Freeze:
		return "freeze"
	default:
		return "unknown"
	}
}

// NewFault creates a fault with Stutter severity and the current timestamp.
func NewFault(kind, message string, context Context) *Fault {
	return &Fault{
		Kind:      kind,
		Message:   message,
		Context:   context,
		Timestamp: time.Now(),
		Severity:  Stutter,
	}
}

// NewHiccup creates a fault with Hiccup severity.
func NewHiccup(kind, message string, context Context) *Fault {
	f := NewFault(kind, message, context)
	f.Severity = Hiccup
	return f
}

// NewFreeze creates a fault with Freeze severity.
func NewFreeze(kind, message string, context Context) *Fault {
	f := NewFault(kind, message, context)
	f.Severity = Freeze
	return f
}

// AtFrame tags the fault with the frame number it occurred on.
func (f *Fault) AtFrame(frame int64) *Fault {
	f.Frame = frame
	return f
}

// WithSeverity sets the severity level for this fault.
func (f *Fault) WithSeverity(severity Severity) *Fault {
	f.Severity = severity
	return f
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("[%s:%s] %s", f.Kind, f.Severity, f.Message)
}

// Harmless returns true if playback continues unaffected by this fault.
func (f *Fault) Harmless() bool {
	return f.Severity == Hiccup
}

// IsFreeze returns true if this fault means the animation stopped advancing.
func (f *Fault) IsFreeze() bool {
	return f.Severity == Freeze
}

// GetContext returns a specific context value if it exists.
func (f *Fault) GetContext(key string) (interface{}, bool) {
	if f.Context == nil {
		return nil, false
	}
	val, exists := f.Context[key]
	return val, exists
}

// DetailedString returns a comprehensive fault description with context.
func (f *Fault) DetailedString() string {
	var details strings.Builder

	details.WriteString(fmt.Sprintf("[%s:%s] %s", f.Kind, f.Severity, f.Message))
	details.WriteString(fmt.Sprintf("\n  Time: %s", f.Timestamp.Format("15:04:05.000")))

	if f.Frame > 0 {
		details.WriteString(fmt.Sprintf("\n  Frame: %d", f.Frame))
	}

	if len(f.Context) > 0 {
		details.WriteString("\n  Context:")
		for key, value := range f.Context {
			details.WriteString(fmt.Sprintf("\n    %s: %v", key, value))
		}
	}

	return details.String()
}

// Handler collects faults for one component of the animation pipeline.
//
// Different components tolerate different failure modes: the overlay can drop
// a frame without anyone noticing, while a frozen tour sequencer is a real
// defect. The policy decides when accumulated faults mean playback should
// stop being trusted.
type Handler struct {
	component string   // Component name (e.g., "tour", "tween", "capture")
	faults    []*Fault // Collected faults in chronological order
	hiccups   []*Fault // Collected harmless blips in chronological order
	policy    *Policy  // How to handle different fault severities
}

// Policy defines how accumulated faults should be interpreted.
type Policy struct {
	// HaltOnFreeze determines whether a freeze fault marks the component
	// as no longer healthy.
	HaltOnFreeze bool

	// MaxHiccups caps accumulated hiccups before the component is treated
	// as unhealthy. Zero means unlimited.
	MaxHiccups int

	// RecoverableKinds lists fault kinds that are expected in normal
	// operation and never escalate.
	RecoverableKinds []string
}

// DefaultPolicy returns a sensible default fault handling policy.
//
// Stale-frame and capture faults are part of normal supersession behavior
// and never escalate; anything that freezes the picture does.
func DefaultPolicy() *Policy {
	return &Policy{
		HaltOnFreeze:     true,
		MaxHiccups:       0,
		RecoverableKinds: []string{"stale-frame", "capture", "command"},
	}
}

// NewHandler creates a fault handler for a specific component.
func NewHandler(component string, policy *Policy) *Handler {
	if policy == nil {
		policy = DefaultPolicy()
	}

	return &Handler{
		component: component,
		faults:    make([]*Fault, 0),
		hiccups:   make([]*Fault, 0),
		policy:    policy,
	}
}

// Record adds a fault to the handler's collection.
func (h *Handler) Record(fault *Fault) {
	if fault.Severity == Hiccup {
		h.hiccups = append(h.hiccups, fault)
	} else {
		h.faults = append(h.faults, fault)
	}
}

// Healthy reports whether the component is still trustworthy given the
// faults recorded so far.
func (h *Handler) Healthy() bool {
	if h.policy.HaltOnFreeze {
		for _, f := range h.faults {
			if f.IsFreeze() {
				return false
			}
		}
	}

	if h.policy.MaxHiccups > 0 && len(h.hiccups) > h.policy.MaxHiccups {
		return false
	}

	return true
}

// HasFaults returns true if any non-hiccup faults have been recorded.
func (h *Handler) HasFaults() bool {
	return len(h.faults) > 0
}

// HasHiccups returns true if any hiccups have been recorded.
func (h *Handler) HasHiccups() bool {
	return len(h.hiccups) > 0
}

// Faults returns all recorded non-hiccup faults.
func (h *Handler) Faults() []*Fault {
	return h.faults
}

// Hiccups returns all recorded hiccups.
func (h *Handler) Hiccups() []*Fault {
	return h.hiccups
}

// Recoverable returns true if the given fault kind is expected in normal
// operation.
func (h *Handler) Recoverable(kind string) bool {
	for _, k := range h.policy.RecoverableKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Summary provides a concise overview of all recorded faults.
func (h *Handler) Summary() string {
	if len(h.faults) == 0 && len(h.hiccups) == 0 {
		return fmt.Sprintf("[%s] clean playback", h.component)
	}

	return fmt.Sprintf("[%s] %d faults, %d hiccups",
		h.component, len(h.faults), len(h.hiccups))
}

// DetailedReport provides a comprehensive report of all recorded issues.
func (h *Handler) DetailedReport() string {
	var report strings.Builder

	report.WriteString(fmt.Sprintf("=== %s playback report ===\n", h.component))
	report.WriteString(h.Summary() + "\n")

	if len(h.faults) > 0 {
		report.WriteString("\nFaults:\n")
		for i, f := range h.faults {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.DetailedString()))
		}
	}

	if len(h.hiccups) > 0 {
		report.WriteString("\nHiccups:\n")
		for i, f := range h.hiccups {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.DetailedString()))
		}
	}

	return report.String()
}
