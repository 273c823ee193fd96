package demo

import (
	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

const bannerRows = 2

// Split puts a two-row banner over a counter pane and a key log pane:
//
//	    cellgrid split demo
//	
//	count: 3    │+
//	            │+
func Split() engine.RenderFunc {
	left := Counter("count")
	right := KeyLog()

	return func(ctx *engine.Context) slot.Text {
		w, h := ctx.Width(), ctx.Height()
		if w < 3 || h < bannerRows+1 {
			return slot.Literal("window too small")
		}

		bannerSym := ctx.MustChild(Banner("cellgrid split demo"))
		leftSym := ctx.MustChild(left)
		rightSym := ctx.MustChild(right)

		lw := (w - 1) / 2
		rw := w - lw - 1

		var b slot.Builder
		// One run wider than the screen: the banner is laid out as a
		// w x bannerRows block.
		b.Slot(bannerSym, w*bannerRows)
		for row := 0; row < h-bannerRows; row++ {
			b.Slot(leftSym, lw).Lit("│").Slot(rightSym, rw)
		}
		return b.Text()
	}
}

// Banner centers title on the first row of its block.
func Banner(title string) engine.RenderFunc {
	return func(ctx *engine.Context) slot.Text {
		return slot.Literal(center(title, ctx.Width()))
	}
}
