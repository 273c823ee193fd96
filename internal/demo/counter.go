package demo

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// Counter shows a number that '+' and '-' change. The count lives outside
// the render function so it survives rebuilds.
func Counter(label string) engine.RenderFunc {
	count := 0
	return func(ctx *engine.Context) slot.Text {
		ctx.OnKeyDown(func(ev engine.KeyEvent) {
			switch ev.Key {
			case "+", "=":
				count++
			case "-", "_":
				count--
			default:
				return
			}
			ctx.Invalidate()
		})
		return slot.Literal(fmt.Sprintf("%s: %d", label, count))
	}
}

// CounterScreen is a counter with a help line under it.
func CounterScreen() engine.RenderFunc {
	counter := Counter("count")
	return func(ctx *engine.Context) slot.Text {
		w := ctx.Width()
		sym := ctx.MustChild(counter)

		var b slot.Builder
		b.Slot(sym, w)
		if ctx.Height() > 1 {
			b.Lit(pad("+/- to change, ctrl+c to quit", w))
		}
		return b.Text()
	}
}

// KeyLog lists the most recent keys, newest at the bottom.
func KeyLog() engine.RenderFunc {
	var keys []string
	return func(ctx *engine.Context) slot.Text {
		h := ctx.Height()
		ctx.OnKeyDown(func(ev engine.KeyEvent) {
			keys = append(keys, ev.String())
			if len(keys) > h {
				keys = keys[len(keys)-h:]
			}
			ctx.Invalidate()
		})

		lines := make([]string, 0, h)
		lines = append(lines, keys...)
		if len(lines) == 0 {
			lines = append(lines, "(press keys)")
		}
		return slot.Literal(strings.Join(lines, "\n"))
	}
}
