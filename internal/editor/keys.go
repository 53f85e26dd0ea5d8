package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vied-dev/vied/internal/vi"
)

// translateKey maps a tcell key event to the engine's key type. Control
// characters that tcell reports as dedicated key codes (Ctrl+A..Ctrl+Z)
// come back as a lowercase rune with the ctrl modifier set, so the engine
// sees the same shape for Ctrl+C regardless of terminal quirks.
func translateKey(ev *tcell.EventKey) vi.Key {
	var k vi.Key
	mods := ev.Modifiers()
	if mods&tcell.ModCtrl != 0 {
		k.Mods |= vi.ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		k.Mods |= vi.ModAlt
	}
	if mods&tcell.ModMeta != 0 {
		k.Mods |= vi.ModMeta
	}
	switch ev.Key() {
	case tcell.KeyRune:
		k.Rune = ev.Rune()
	case tcell.KeyEscape:
		k.Special = vi.KeyEscape
	case tcell.KeyEnter:
		k.Special = vi.KeyEnter
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		k.Special = vi.KeyBackspace
	default:
		if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
			k.Rune = rune('a' + ev.Key() - tcell.KeyCtrlA)
			k.Mods |= vi.ModCtrl
		}
	}
	return k
}
