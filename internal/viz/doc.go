// Package viz renders drawdown results in the terminal.
//
// The package implements an interactive explorer using the Bubble Tea framework:
//
//   - [Explorer]: live drawdown curve and isobar map for one scenario
//   - [Canvas]: Braille-based pixel canvas used for isobar maps
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	M     - Toggle line source / finite radius
//	+/-   - Move the observation point away from / toward the first well
//	[/]   - Lower / raise the Stehfest degree
//	P     - Toggle float64 / exact summation
//	C     - Toggle capping of unstable degrees
//	F     - Switch between curve and isobar map
//	T     - Cycle color themes
//	Q     - Quit
package viz
