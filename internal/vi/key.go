package vi

// Special identifies non-printable keys the engine cares about.
// Everything else reaches the engine as a plain rune.
type Special int

const (
	KeyNone Special = iota
	KeyEscape
	KeyEnter
	KeyBackspace
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModMeta
)

// Key is a single keystroke as seen by the engine. The host translates
// its native key events (tcell, test input, ...) into this form.
type Key struct {
	Rune    rune
	Special Special
	Mods    Modifiers
}

// RuneKey builds a plain printable keystroke.
func RuneKey(r rune) Key {
	return Key{Rune: r}
}
