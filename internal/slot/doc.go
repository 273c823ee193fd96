// Package slot implements the placeholder codec that lets a component's
// output reserve rectangular regions for its children.
//
// A component's output is a Text: a sequence of tagged runs, each either
// literal characters or n cells reserved for one placeholder Symbol.
// Because placeholders are tags rather than characters they can never be
// confused with content.
//
// Measure derives a child's size from the shape of its runs in the parent's
// Text, and Substitute replaces those runs with the child's finished cells,
// consuming them top to bottom.
package slot
