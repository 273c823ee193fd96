// Package grid holds the fixed-width cell helpers used when a composed
// component tree is turned into rows for presentation.
//
// A grid is a row-major run of cells, one rune per cell. Fit lays an
// arbitrary character stream into exactly width*height cells, Rows cuts
// the cells back into strings, and the Escape functions neutralize
// characters that mean something to the presentation medium.
package grid
