package host

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/cellgrid/internal/engine"
)

// KeyMap holds the keys the host handles itself instead of broadcasting.
type KeyMap struct {
	Quit      key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
}

// DefaultKeyMap quits on ctrl+c and cycles focus with tab and shift+tab.
func DefaultKeyMap() KeyMap {
	return NewKeyMap([]string{"ctrl+c"}, []string{engine.KeyTab}, []string{engine.KeyShiftTab})
}

// NewKeyMap builds a KeyMap from key names.
func NewKeyMap(quit, next, prev []string) KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys(quit...), key.WithHelp(strings.Join(quit, "/"), "quit")),
		FocusNext: key.NewBinding(key.WithKeys(next...), key.WithHelp(strings.Join(next, "/"), "next field")),
		FocusPrev: key.NewBinding(key.WithKeys(prev...), key.WithHelp(strings.Join(prev, "/"), "previous field")),
	}
}

// Dispatch routes one key event: focus bindings move focus, everything else
// is broadcast to the tree. Reports whether the key asks to quit.
func Dispatch(e *engine.Engine, km KeyMap, ev engine.KeyEvent) bool {
	switch {
	case key.Matches(ev, km.Quit):
		return true
	case key.Matches(ev, km.FocusNext):
		e.AdvanceFocus()
	case key.Matches(ev, km.FocusPrev):
		e.RetreatFocus()
	default:
		e.HandleKey(ev)
	}
	return false
}

// KeyEvents converts a bubbletea key message. Pastes and fast typing
// arrive as one message with many runes and become one event per rune.
func KeyEvents(msg tea.KeyMsg) []engine.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		events := make([]engine.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, engine.KeyEvent{Key: string(r), Alt: msg.Alt})
		}
		return events
	case tea.KeySpace:
		return []engine.KeyEvent{{Key: " ", Alt: msg.Alt}}
	}
	return []engine.KeyEvent{{Key: strings.TrimPrefix(msg.String(), "alt+"), Alt: msg.Alt}}
}

// ParseKeys parses a comma-separated key script such as "h,i,backspace".
// "space" and "comma" stand for their characters.
func ParseKeys(script string) ([]engine.KeyEvent, error) {
	if strings.TrimSpace(script) == "" {
		return nil, nil
	}

	var events []engine.KeyEvent
	for _, raw := range strings.Split(script, ",") {
		name := strings.TrimSpace(raw)
		switch name {
		case "":
			return nil, fmt.Errorf("empty key in script %q", script)
		case "space":
			name = " "
		case "comma":
			name = ","
		}
		alt := false
		if strings.HasPrefix(name, "alt+") && len(name) > len("alt+") {
			alt = true
			name = strings.TrimPrefix(name, "alt+")
		}
		events = append(events, engine.KeyEvent{Key: name, Alt: alt})
	}
	return events, nil
}
