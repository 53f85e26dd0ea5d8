// Package vi implements a modal vi-style command interpreter over an
// externally owned text buffer. The engine holds no buffer of its own: it
// reads and writes text and cursor through the Surface interface, which
// keeps it testable without any terminal attached.
package vi

import "math"

// Surface is the text surface the engine edits. The cursor is a 0-based
// rune offset into the text, 0 <= cursor <= len(text).
type Surface interface {
	Text() string
	SetText(string)
	Cursor() int
	SetCursor(int)
}

// Hooks are the collaborator callbacks the engine invokes. Any of them may
// be nil. OnContentChange fires after every mutation that changes the text;
// the lifecycle callbacks fire only from the ex-command interpreter.
type Hooks struct {
	OnContentChange func(text string)
	OnSave          func()
	OnExit          func()
	OnQuitUnsaved   func()
}

// DefaultUndoLimit caps the undo stack when no option overrides it.
const DefaultUndoLimit = 100

// pendingCommand accumulates a count prefix and a pending operator across
// normal-mode keystrokes.
type pendingCommand struct {
	count    int  // accumulated count, 0 = none
	operator rune // 'd' or 'y', 0 = none
}

func (p *pendingCommand) addDigit(r rune) {
	d := int(r - '0')
	if p.count > (math.MaxInt-d)/10 {
		// saturate instead of overflowing
		return
	}
	p.count = p.count*10 + d
}

// takeCount returns the effective count (1 when none) and clears it.
func (p *pendingCommand) takeCount() int {
	n := p.count
	p.count = 0
	if n <= 0 {
		return 1
	}
	return n
}

// Engine is the mode state machine. All state is plain fields advanced by
// HandleKey; there is no internal concurrency and no hidden closures.
type Engine struct {
	surface Surface
	hooks   Hooks

	enabled bool
	mode    Mode
	pending pendingCommand
	reg     register
	undo    undoStack
	cmdline []rune
	status  string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithUndoLimit overrides the undo stack cap.
func WithUndoLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.undo.limit = n
		}
	}
}

// WithDisabled constructs the engine switched off.
func WithDisabled() Option {
	return func(e *Engine) {
		e.enabled = false
	}
}

func New(surface Surface, hooks Hooks, opts ...Option) *Engine {
	e := &Engine{
		surface: surface,
		hooks:   hooks,
		enabled: true,
		mode:    ModeNormal,
		undo:    undoStack{limit: DefaultUndoLimit},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleKey routes one keystroke. It returns true when the engine consumed
// the key; false means the host should process it (insert-mode passthrough,
// modifier shortcuts, or a disabled engine).
func (e *Engine) HandleKey(k Key) bool {
	if !e.enabled {
		return false
	}
	if e.mode != ModeCommandLine && e.status != "" {
		e.status = ""
	}
	switch e.mode {
	case ModeInsert:
		return e.handleInsert(k)
	case ModeCommandLine:
		return e.handleCommandLine(k)
	default:
		return e.handleNormal(k)
	}
}

func (e *Engine) handleNormal(k Key) bool {
	if k.Special == KeyEscape {
		e.pending = pendingCommand{}
		return true
	}
	if k.Mods != 0 {
		// Modifier combos pass through so terminal shortcuts keep working.
		return false
	}
	if k.Special != KeyNone || k.Rune == 0 {
		// Unmapped special keys are swallowed, not inserted.
		return true
	}
	r := k.Rune

	// Count digits extend the pending count and never cancel a pending
	// operator: d3d deletes three lines, same as 3dd.
	if (r >= '1' && r <= '9') || (r == '0' && e.pending.count > 0) {
		e.pending.addDigit(r)
		return true
	}

	if op := e.pending.operator; op != 0 {
		e.pending.operator = 0
		if r == op {
			count := e.pending.takeCount()
			if op == 'd' {
				e.deleteLines(count)
			} else {
				e.yankLines(count)
			}
			return true
		}
		// Any other key cancels the operator and then runs as usual.
	}

	switch r {
	case 'd', 'y':
		e.pending.operator = r
	case 'h', 'j', 'k', 'l', '0', '$':
		e.applyMotion(r, e.pending.takeCount())
	case 'x':
		e.deleteChars(e.pending.takeCount())
	case 'p':
		e.pending.takeCount() // count not honored for put
		e.putAfter()
	case 'P':
		e.pending.takeCount()
		e.putBefore()
	case 'u':
		e.pending.takeCount()
		e.popUndo()
	case 'i', 'a', 'A', 'o', 'O':
		e.pending.takeCount()
		e.enterInsert(r)
	case ':':
		e.pending.takeCount()
		e.cmdline = e.cmdline[:0]
		e.mode = ModeCommandLine
	default:
		e.pending.takeCount()
	}
	return true
}

func (e *Engine) handleInsert(k Key) bool {
	if k.Special == KeyEscape {
		// No snapshot here: the one taken on insert entry covers the
		// whole insert run as a single undo step.
		e.mode = ModeNormal
		return true
	}
	return false
}

func (e *Engine) handleCommandLine(k Key) bool {
	switch {
	case k.Special == KeyEscape, k.Mods&ModCtrl != 0 && k.Rune == 'c':
		e.cmdline = e.cmdline[:0]
		e.mode = ModeNormal
	case k.Special == KeyEnter:
		cmd := string(e.cmdline)
		e.cmdline = e.cmdline[:0]
		e.mode = ModeNormal
		e.execCommand(cmd)
	case k.Special == KeyBackspace:
		if len(e.cmdline) > 0 {
			e.cmdline = e.cmdline[:len(e.cmdline)-1]
		}
	case k.Special == KeyNone && k.Rune != 0 && k.Mods == 0:
		e.cmdline = append(e.cmdline, k.Rune)
	}
	return true
}

// enterInsert takes the single undo snapshot for the insert run, positions
// the cursor per the entry key, and switches to insert mode.
func (e *Engine) enterInsert(r rune) {
	text := []rune(e.surface.Text())
	cur := clamp(e.surface.Cursor(), 0, len(text))
	li := lineInfoAt(text, cur)
	e.pushSnapshot()
	switch r {
	case 'i':
		e.surface.SetCursor(cur)
	case 'a':
		if cur < li.End {
			cur++
		}
		e.surface.SetCursor(cur)
	case 'A':
		e.surface.SetCursor(li.End)
	case 'o':
		e.apply(insertRunes(text, li.End, []rune{'\n'}), li.End+1)
	case 'O':
		e.apply(insertRunes(text, li.Start, []rune{'\n'}), li.Start)
	}
	e.mode = ModeInsert
}

// apply writes text and a clamped cursor back to the surface and notifies
// the content-change collaborator. Callers push their snapshot first.
func (e *Engine) apply(text []rune, cursor int) {
	s := string(text)
	e.surface.SetText(s)
	e.surface.SetCursor(clamp(cursor, 0, len(text)))
	e.notifyChange(s)
}

func (e *Engine) pushSnapshot() {
	e.undo.push(undoEntry{content: e.surface.Text(), cursor: e.surface.Cursor()})
}

func (e *Engine) popUndo() {
	entry, ok := e.undo.pop()
	if !ok {
		return
	}
	e.surface.SetText(entry.content)
	e.surface.SetCursor(clamp(entry.cursor, 0, len([]rune(entry.content))))
	e.notifyChange(entry.content)
}

func (e *Engine) notifyChange(text string) {
	if e.hooks.OnContentChange != nil {
		e.hooks.OnContentChange(text)
	}
}

// Mode reports the current mode. Disabling the engine does not change it.
func (e *Engine) Mode() Mode {
	return e.mode
}

// CommandLine returns the ex-command buffer accumulated so far.
func (e *Engine) CommandLine() string {
	return string(e.cmdline)
}

// Status returns the transient status message (unknown ex command); it is
// cleared on the next handled key.
func (e *Engine) Status() string {
	return e.status
}

// Enabled reports whether the engine intercepts keys.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// SetEnabled toggles the engine. While disabled the engine intercepts no
// keys; mode and the rest of the state are preserved, so a re-enabled
// engine resumes where it stopped.
func (e *Engine) SetEnabled(enabled bool) {
	e.enabled = enabled
}

// Reset discards all per-session state: pending command, register, undo
// history, command line, and returns to normal mode. Used when the editing
// session deactivates.
func (e *Engine) Reset() {
	e.mode = ModeNormal
	e.pending = pendingCommand{}
	e.reg.clear()
	e.undo.clear()
	e.cmdline = e.cmdline[:0]
	e.status = ""
}
