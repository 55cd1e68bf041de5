// Package viz holds the terminal side of lbmviz.
//
//   - [Canvas]: Braille dot canvas used for mask previews
//   - [HeatMap]: half-block colour rendering of a field grid
//   - [Preview]: Bubble Tea frame browser for a loaded field dataset
//   - console styles shared by the commands
//
// # Preview Key Bindings
//
//	←/h, →/l - Previous / next frame
//	Space    - Play/Pause
//	C        - Cycle colormap
//	Q        - Quit
package viz
