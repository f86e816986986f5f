// Package viz provides terminal visualization for Ising simulations.
//
//   - [PlotObservables]: asciigraph line plots of the four observables
//   - [RenderSummary]: lipgloss-styled results table
//   - [Model]: Bubble Tea program showing the lattice evolve live
//   - [Canvas]: Braille-based pixel canvas for large lattices
//
// # Key Bindings
//
//	Space - Pause/Resume sampling
//	↑/↓   - Raise/lower temperature
//	←/→   - Lower/raise external field
//	R     - Randomize the lattice
//	Q     - Quit
package viz
