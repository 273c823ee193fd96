package slot

import (
	"errors"
	"fmt"

	"github.com/ShayCichocki/cellgrid/internal/grid"
)

// ErrIrregularShape is returned when a placeholder's runs do not all have
// the same length, so the child's region is not a rectangle.
var ErrIrregularShape = errors.New("irregular placeholder shape")

// ShapeError names the placeholder whose runs are irregular.
type ShapeError struct {
	Symbol  Symbol
	Lengths []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %v has run lengths %v", ErrIrregularShape, e.Symbol, e.Lengths)
}

func (e *ShapeError) Unwrap() error {
	return ErrIrregularShape
}

// runLengths returns the length of every maximal run of sym, top to bottom.
func runLengths(sym Symbol, text Text) []int {
	var lengths []int
	inRun := false
	for _, r := range text.runs {
		if r.ph && r.sym == sym {
			if inRun {
				lengths[len(lengths)-1] += r.n
			} else {
				lengths = append(lengths, r.n)
				inRun = true
			}
			continue
		}
		if r.Len() > 0 {
			inRun = false
		}
	}
	return lengths
}

// Measure derives the size of the child behind sym from its runs in text.
//
// Each run is one row, so the height is the number of runs and every run
// must have the same length. A single run longer than parentWidth is a
// flattened block instead: it is parentWidth wide and
// length/parentWidth rows tall. A symbol with no runs measures 0x0.
func Measure(sym Symbol, text Text, parentWidth int) (width, height int, err error) {
	lengths := runLengths(sym, text)
	if len(lengths) == 0 {
		return 0, 0, nil
	}

	if len(lengths) == 1 && parentWidth > 0 && lengths[0] > parentWidth {
		return parentWidth, lengths[0] / parentWidth, nil
	}

	for _, l := range lengths[1:] {
		if l != lengths[0] {
			return 0, 0, &ShapeError{Symbol: sym, Lengths: lengths}
		}
	}
	return lengths[0], len(lengths), nil
}

// Substitute replaces the runs of sym in text with child's cells. Runs are
// filled top to bottom, each taking the next run-length cells from child.
// A short child is padded with blanks; cells left over are ignored.
func Substitute(sym Symbol, text Text, child []rune) Text {
	var b Builder
	cursor := 0
	for _, r := range text.runs {
		if !r.ph {
			b.Lit(string(r.lit))
			continue
		}
		if r.sym != sym {
			b.Slot(r.sym, r.n)
			continue
		}

		piece := make([]rune, r.n)
		for i := range piece {
			if cursor < len(child) {
				piece[i] = child[cursor]
				cursor++
			} else {
				piece[i] = grid.Blank
			}
		}
		b.Lit(string(piece))
	}
	return b.Text()
}
