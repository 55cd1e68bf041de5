// Package field loads 2D velocity field snapshots written by the
// lattice-Boltzmann simulator and derives per-cell scalar fields from them.
//
// A field file starts with a "width height" header followed by repeating
// three-line blocks: a step label, the flattened x-velocities and the
// flattened y-velocities, each row-major with width*height values.
//
//   - [Reshape]: bounds-checked flat slice to row-major [Grid]
//   - [Snapshot]: one step's velocity grids, with Magnitude and Curl
//   - [Dataset]: all snapshots of a file as parallel stacks
//   - [Load]: the header/step-block reader
package field
