package globetour

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"
)

//go:embed html_templates/tour_report.html
var tourReportTemplate string

// TourReport collects what actually happened during a tour run - which
// stops were activated and when - and renders it as a single HTML
// itinerary page.
type TourReport struct {
	Title       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Completed   bool
	Stops       []Stop
	Activations []ActivationEntry
}

// ActivationEntry records one stop activation with its overlay text.
type ActivationEntry struct {
	Index       int
	Text        ActivationText
	ActivatedAt time.Time
}

// NewTourReport creates an empty report over the given catalog.
func NewTourReport(title string, catalog Catalog) *TourReport {
	return &TourReport{
		Title:     title,
		StartedAt: time.Now(),
		Stops:     catalog,
	}
}

// RecordActivation appends one stop activation. Shaped to slot directly
// into Engine.OnStop.
func (r *TourReport) RecordActivation(index int, text ActivationText) {
	r.Activations = append(r.Activations, ActivationEntry{
		Index:       index,
		Text:        text,
		ActivatedAt: time.Now(),
	})
}

// Finish stamps the end of the run and whether the tour completed a
// full pass.
func (r *TourReport) Finish(completed bool) {
	r.FinishedAt = time.Now()
	r.Completed = completed
}

// Duration returns how long the run lasted.
func (r *TourReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// WriteHTML renders the itinerary report to path.
func (r *TourReport) WriteHTML(path string) error {
	tmpl, err := template.New("tour_report").Parse(tourReportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, r); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
