package slot

import "strings"

// Run is one segment of a Text: either literal cells or n cells reserved
// for a placeholder.
type Run struct {
	lit []rune
	sym Symbol
	n   int
	ph  bool
}

// IsPlaceholder reports whether the run reserves cells for a child.
func (r Run) IsPlaceholder() bool { return r.ph }

// Symbol returns the placeholder of a placeholder run.
func (r Run) Symbol() Symbol { return r.sym }

// Len returns the number of cells the run covers.
func (r Run) Len() int {
	if r.ph {
		return r.n
	}
	return len(r.lit)
}

// Literal returns the characters of a literal run.
func (r Run) Literal() string { return string(r.lit) }

// Text is a component's raw output. The zero value is empty.
type Text struct {
	runs []Run
}

// Literal returns a Text holding s and no placeholders.
func Literal(s string) Text {
	var b Builder
	b.Lit(s)
	return b.Text()
}

// Runs returns the runs in order. The slice must not be modified.
func (t Text) Runs() []Run { return t.runs }

// IsEmpty reports whether t has no cells.
func (t Text) IsEmpty() bool { return len(t.runs) == 0 }

// Len returns the number of cells in t, counting placeholder cells.
func (t Text) Len() int {
	n := 0
	for _, r := range t.runs {
		n += r.Len()
	}
	return n
}

// Symbols returns each placeholder appearing in t once, in order of first
// appearance.
func (t Text) Symbols() []Symbol {
	var out []Symbol
	seen := make(map[Symbol]bool)
	for _, r := range t.runs {
		if r.ph && !seen[r.sym] {
			seen[r.sym] = true
			out = append(out, r.sym)
		}
	}
	return out
}

// IsResolved reports whether every placeholder has been substituted.
func (t Text) IsResolved() bool {
	for _, r := range t.runs {
		if r.ph {
			return false
		}
	}
	return true
}

// Runes flattens t into cells. Placeholder cells appear as their
// symbol's private-use rune.
func (t Text) Runes() []rune {
	out := make([]rune, 0, t.Len())
	for _, r := range t.runs {
		if !r.ph {
			out = append(out, r.lit...)
			continue
		}
		for i := 0; i < r.n; i++ {
			out = append(out, r.sym.Rune())
		}
	}
	return out
}

func (t Text) String() string {
	var sb strings.Builder
	for _, r := range t.Runes() {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Builder assembles a Text. Adjacent literal runs are joined and adjacent
// runs of the same placeholder are merged into one, so the resulting runs
// are maximal. The zero value is ready to use.
type Builder struct {
	runs []Run
}

// Lit appends literal characters.
func (b *Builder) Lit(s string) *Builder {
	if s == "" {
		return b
	}
	if n := len(b.runs); n > 0 && !b.runs[n-1].ph {
		b.runs[n-1].lit = append(b.runs[n-1].lit, []rune(s)...)
		return b
	}
	b.runs = append(b.runs, Run{lit: []rune(s)})
	return b
}

// Newline appends a line break.
func (b *Builder) Newline() *Builder {
	return b.Lit("\n")
}

// Slot reserves n cells for sym.
func (b *Builder) Slot(sym Symbol, n int) *Builder {
	if n <= 0 {
		return b
	}
	if last := len(b.runs) - 1; last >= 0 && b.runs[last].ph && b.runs[last].sym == sym {
		b.runs[last].n += n
		return b
	}
	b.runs = append(b.runs, Run{sym: sym, n: n, ph: true})
	return b
}

// Append copies the runs of t onto the builder.
func (b *Builder) Append(t Text) *Builder {
	for _, r := range t.runs {
		if r.ph {
			b.Slot(r.sym, r.n)
		} else {
			b.Lit(string(r.lit))
		}
	}
	return b
}

// Text returns the assembled Text. The builder must not be used afterwards.
func (b *Builder) Text() Text {
	return Text{runs: b.runs}
}
