package slot

import (
	"errors"
	"fmt"
)

// Symbol identifies one placeholder within a single node's evaluation.
// Symbols are only meaningful as keys into that node's children.
type Symbol uint16

const (
	// puaBase is the first rune of the Unicode Private Use Area, used only
	// when a placeholder has to be shown as a character.
	puaBase = 0xE000

	// MaxSymbols is the size of the reserved range.
	MaxSymbols = 0xF8FF - puaBase + 1
)

// Rune returns the private-use rune that stands for s in debug output.
func (s Symbol) Rune() rune {
	return rune(puaBase + int(s))
}

func (s Symbol) String() string {
	return fmt.Sprintf("slot#%d", uint16(s))
}

var (
	// ErrLateRegistration is returned when a placeholder is requested after
	// the owning node's text has been produced.
	ErrLateRegistration = errors.New("child registered after render returned")

	// ErrSymbolSpaceExhausted is returned when a single evaluation asks for
	// more than MaxSymbols placeholders.
	ErrSymbolSpaceExhausted = errors.New("placeholder symbol space exhausted")
)

// Allocator hands out Symbols for one evaluation of one node. The zero
// value is ready to use.
type Allocator struct {
	next   int
	sealed bool
}

// Allocate returns the next unused Symbol.
func (a *Allocator) Allocate() (Symbol, error) {
	if a.sealed {
		return 0, ErrLateRegistration
	}
	if a.next >= MaxSymbols {
		return 0, ErrSymbolSpaceExhausted
	}
	s := Symbol(a.next)
	a.next++
	return s, nil
}

// Seal marks the evaluation finished; later Allocate calls fail.
func (a *Allocator) Seal() {
	a.sealed = true
}

// Sealed reports whether Seal has been called.
func (a *Allocator) Sealed() bool {
	return a.sealed
}

// Count returns how many symbols have been allocated.
func (a *Allocator) Count() int {
	return a.next
}

// Owns reports whether s was handed out by this allocator.
func (a *Allocator) Owns(s Symbol) bool {
	return int(s) < a.next
}
