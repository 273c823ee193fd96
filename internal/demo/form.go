package demo

import (
	"strings"

	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/focus"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// Focus keys of the form demo's fields.
const (
	FieldName  = "form.name"
	FieldEmail = "form.email"
	FieldNotes = "form.notes"
)

const formMinHeight = 5

// Form lays out name and email inputs, a multiline notes area and a status
// line:
//
//	> Name: ada_
//	  Email:
//	────────────
//	  Notes:
//	...
//	focus: name
func Form() engine.RenderFunc {
	name := Input("Name", FieldName, false)
	email := Input("Email", FieldEmail, false)
	notes := Input("Notes", FieldNotes, true)

	return func(ctx *engine.Context) slot.Text {
		w, h := ctx.Width(), ctx.Height()
		if h < formMinHeight {
			return slot.Literal("window too small")
		}

		nameSym := ctx.MustChild(name)
		emailSym := ctx.MustChild(email)
		notesSym := ctx.MustChild(notes)
		statusSym := ctx.MustChild(FocusStatus)

		var b slot.Builder
		b.Slot(nameSym, w).
			Slot(emailSym, w).
			Lit(strings.Repeat("─", w)).
			Slot(notesSym, w*(h-4)).
			Slot(statusSym, w)
		return b.Text()
	}
}

// FocusStatus shows which field has focus.
func FocusStatus(ctx *engine.Context) slot.Text {
	ctx.OnFocusChange(func(focus.Key) { ctx.Invalidate() })

	active := ctx.FocusName(ctx.ActiveFocus())
	if active == "" {
		active = "none"
	}
	active = strings.TrimPrefix(active, "form.")
	return slot.Literal(pad("focus: "+active+"  (tab/shift+tab)", ctx.Width()))
}
