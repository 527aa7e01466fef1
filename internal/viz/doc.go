// Package viz provides the terminal viewer for heat simulations.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps one or more solvers on a timer; a bar is drawn as an
//     asciigraph profile, a plate as a colour-shaded grid
//   - [NewInteractiveApp]: material and geometry picker in front of [Model]
//   - Heat ramps selectable from 4 built-in themes
//
// Four solvers are shown in a 2x2 grid, which is how the all-materials
// comparison is laid out.
//
// # Key Bindings
//
//	Space  - Pause/Resume simulation
//	R      - Reset every solver to its initial state
//	Up/K   - Five more steps per frame (capped at 50 for bars, 20 for plates)
//	Down/J - Five fewer steps per frame (at least 1)
//	T      - Cycle heat themes
//	Q      - Quit
package viz
