package vi

// Mode is the current editing mode.
type Mode int

const (
	// ModeNormal interprets keys as commands.
	ModeNormal Mode = iota
	// ModeInsert passes keys through to the host buffer.
	ModeInsert
	// ModeCommandLine accumulates an ex command after ':'.
	ModeCommandLine
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandLine:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}
