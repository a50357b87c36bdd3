// Command globetour runs the globe tour in the terminal.
//
//	globetour [-config tour.yaml] [-capture frames/] [-report tour.html]
//
// Controls: p play, s pause, r replay, q quit. Mouse motion tilts the
// globe. The tour also starts on its own the first time the globe pane
// is sufficiently visible.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/teranos/globetour"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML tour configuration")
	captureDir := flag.String("capture", "", "directory to write PNG frame captures into")
	reportPath := flag.String("report", "", "path to write the HTML itinerary report on exit")
	logFile := flag.String("log", "", "override the log file path")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := globetour.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "globetour: %v\n", err)
		os.Exit(1)
	}
	if *captureDir != "" {
		cfg.CaptureDir = *captureDir
	}
	if *reportPath != "" {
		cfg.ReportPath = *reportPath
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	logger, closeLog, err := newLogger(cfg.LogFile, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "globetour: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Info().
		Int("stops", len(cfg.Catalog())).
		Int("fps", cfg.FPS).
		Msg("starting globe tour")

	prog := tea.NewProgram(
		globetour.NewModel(cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := prog.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited with error")
		fmt.Fprintf(os.Stderr, "globetour: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file; the terminal itself
// belongs to the UI. An empty path discards logs.
func newLogger(path string, debug bool) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logger := zerolog.New(file).Level(level).With().Timestamp().Logger()
	return logger, func() { file.Close() }, nil
}
