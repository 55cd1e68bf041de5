// Package render turns a field dataset into animation frames and encodes
// them as a GIF.
//
// Each frame is drawn with gg: a nearest-cell heat map of velocity
// magnitude, an optional colorbar, an optional quiver overlay sampled on a
// coarse subgrid, and a "Step <label>" title. Frame geometry depends only on
// the dataset shape and options, so consecutive frames line up exactly.
package render
