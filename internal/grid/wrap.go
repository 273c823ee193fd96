package grid

// Blank fills cells that no content reached.
const Blank = ' '

// Fit lays stream into exactly width*height cells, row-major.
//
// A '\n' ends the current row early. A '\n' that arrives right after a
// row was filled to the last column only consumes the automatic wrap, so
// text written as full-width rows followed by newlines lines up. Cells past
// the last row are dropped and unreached cells are Blank.
func Fit(stream []rune, width, height int) []rune {
	if width <= 0 || height <= 0 {
		return nil
	}

	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = Blank
	}

	row, col := 0, 0
	wrapped := false
	for _, r := range stream {
		if row >= height {
			break
		}
		if r == '\n' {
			if wrapped {
				wrapped = false
				continue
			}
			row++
			col = 0
			continue
		}

		wrapped = false
		cells[row*width+col] = r
		col++
		if col == width {
			row++
			col = 0
			wrapped = true
		}
	}

	return cells
}

// Rows cuts row-major cells into strings of width runes each. A trailing
// partial row is padded with Blank.
func Rows(cells []rune, width int) []string {
	if width <= 0 || len(cells) == 0 {
		return nil
	}

	n := (len(cells) + width - 1) / width
	rows := make([]string, 0, n)
	for start := 0; start < len(cells); start += width {
		end := start + width
		if end > len(cells) {
			row := make([]rune, width)
			copy(row, cells[start:])
			for i := len(cells) - start; i < width; i++ {
				row[i] = Blank
			}
			rows = append(rows, string(row))
			break
		}
		rows = append(rows, string(cells[start:end]))
	}
	return rows
}

// Wrap is Fit followed by Rows.
func Wrap(s string, width, height int) []string {
	return Rows(Fit([]rune(s), width, height), width)
}
