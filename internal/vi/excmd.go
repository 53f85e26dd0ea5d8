package vi

import "strings"

// exAction is the decoded effect of an ex command.
type exAction int

const (
	exNone exAction = iota
	exSave
	exSaveExit
	exQuit
	exForceExit
	exUnknown
)

// parseExCommand maps a trimmed command-line string onto an action.
func parseExCommand(cmd string) exAction {
	switch cmd {
	case "":
		return exNone
	case "w":
		return exSave
	case "wq", "x":
		return exSaveExit
	case "q":
		return exQuit
	case "q!":
		return exForceExit
	default:
		return exUnknown
	}
}

// execCommand interprets the confirmed command line. Unknown commands are
// swallowed with a recoverable status message; nothing here can fail.
func (e *Engine) execCommand(raw string) {
	cmd := strings.TrimSpace(raw)
	switch parseExCommand(cmd) {
	case exSave:
		e.callSave()
	case exSaveExit:
		e.callSave()
		e.callExit()
	case exQuit:
		if e.hooks.OnQuitUnsaved != nil {
			e.hooks.OnQuitUnsaved()
		}
	case exForceExit:
		e.callExit()
	case exUnknown:
		e.status = "unknown command: " + cmd
	}
}

func (e *Engine) callSave() {
	if e.hooks.OnSave != nil {
		e.hooks.OnSave()
	}
}

func (e *Engine) callExit() {
	if e.hooks.OnExit != nil {
		e.hooks.OnExit()
	}
}
