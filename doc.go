// Package globetour drives an interactive terminal globe that auto-tours a
// fixed sequence of geographic stops, synchronizing camera motion, a 3D
// marker, and the 2D overlay that labels it.
//
// The heart of the package is the tour orchestrator: a cancellable,
// resumable animation sequencer that coordinates camera tweens, idle
// auto-rotation, and per-stop dwell timers against a single frame-driven
// render loop. All state advances one frame at a time on one timeline, so
// user commands and in-flight animation steps can never race; superseded
// camera motions are suppressed by a generation counter instead of
// explicit cancellation.
//
// Run the bundled TUI:
//
//	prog := tea.NewProgram(globetour.NewModel(globetour.DefaultConfig(), logger),
//		tea.WithAltScreen(), tea.WithMouseCellMotion())
//	_, err := prog.Run()
//
// Or drive the engine directly, one frame at a time:
//
//	eng := globetour.NewEngine(globetour.DefaultConfig(), logger)
//	eng.OnStop = func(i int, text globetour.ActivationText) { ... }
//	eng.Play(time.Now())
//	for range ticker.C {
//		eng.Step(time.Now())
//	}
package globetour
