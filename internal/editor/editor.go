package editor

import (
	"errors"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vied-dev/vied/internal/config"
	"github.com/vied-dev/vied/internal/vi"
)

type LineNumberMode int

const (
	LineNumberOff LineNumberMode = iota
	LineNumberAbsolute
	LineNumberRelative
)

// HighlightSpan colors a half-open column range [StartCol, EndCol) on a line.
type HighlightSpan struct {
	StartCol int
	EndCol   int
	Kind     string
}

// Editor owns the buffer, the viewport and the terminal rendering. The
// modal behavior lives in the vi engine, which drives the buffer through
// the vi.Surface methods below.
type Editor struct {
	content    []rune
	lines      [][]rune
	starts     []int // rune offset of each line start
	cursor     int
	scroll     int
	viewHeight int

	filename      string
	savedText     string
	dirty         bool
	statusMessage string
	changeTick    uint64

	engine *vi.Engine

	tabWidth        int
	lineNumberMode  LineNumberMode
	gitBranch       string
	gitBranchSymbol string
	freeScroll      bool
	quitRequested   bool

	styleMain           tcell.Style
	styleStatus         tcell.Style
	styleCommand        tcell.Style
	styleLineNumber     tcell.Style
	styleLineNumberCur  tcell.Style
	styleSyntaxKeyword  tcell.Style
	styleSyntaxString   tcell.Style
	styleSyntaxComment  tcell.Style
	styleSyntaxType     tcell.Style
	styleSyntaxFunction tcell.Style
	styleSyntaxNumber   tcell.Style

	highlights     map[int][]HighlightSpan
	highlightStart int
	highlightEnd   int
}

func New(cfg config.Config) *Editor {
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	commandFg := parseColor(cfg.Theme.CommandlineForeground, statusFg)
	commandBg := parseColor(cfg.Theme.CommandlineBackground, statusBg)
	lineNumberFg := parseColor(cfg.Theme.LineNumberForeground, tcell.ColorGray)
	syntaxKeyword := parseColor(cfg.Theme.SyntaxKeyword, mainFg)
	syntaxString := parseColor(cfg.Theme.SyntaxString, mainFg)
	syntaxComment := parseColor(cfg.Theme.SyntaxComment, mainFg)
	syntaxType := parseColor(cfg.Theme.SyntaxType, mainFg)
	syntaxFunction := parseColor(cfg.Theme.SyntaxFunction, mainFg)
	syntaxNumber := parseColor(cfg.Theme.SyntaxNumber, mainFg)
	e := &Editor{
		tabWidth:            tabWidth,
		lineNumberMode:      parseLineNumberMode(cfg.Editor.LineNumbers),
		gitBranchSymbol:     strings.TrimSpace(cfg.Editor.GitBranchSymbol),
		styleMain:           tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:         tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleCommand:        tcell.StyleDefault.Foreground(commandFg).Background(commandBg),
		styleLineNumber:     tcell.StyleDefault.Foreground(lineNumberFg).Background(mainBg),
		styleLineNumberCur:  tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleSyntaxKeyword:  tcell.StyleDefault.Foreground(syntaxKeyword).Background(mainBg),
		styleSyntaxString:   tcell.StyleDefault.Foreground(syntaxString).Background(mainBg),
		styleSyntaxComment:  tcell.StyleDefault.Foreground(syntaxComment).Background(mainBg),
		styleSyntaxType:     tcell.StyleDefault.Foreground(syntaxType).Background(mainBg),
		styleSyntaxFunction: tcell.StyleDefault.Foreground(syntaxFunction).Background(mainBg),
		styleSyntaxNumber:   tcell.StyleDefault.Foreground(syntaxNumber).Background(mainBg),
		highlightStart:      -1,
		highlightEnd:        -1,
	}
	e.rebuildLines()
	return e
}

// AttachEngine wires the modal engine that drives this editor's buffer.
func (e *Editor) AttachEngine(engine *vi.Engine) {
	e.engine = engine
}

func (e *Editor) Engine() *vi.Engine {
	return e.engine
}

// Text implements vi.Surface.
func (e *Editor) Text() string {
	return string(e.content)
}

// SetText implements vi.Surface.
func (e *Editor) SetText(text string) {
	e.content = []rune(text)
	e.rebuildLines()
	if e.cursor > len(e.content) {
		e.cursor = len(e.content)
	}
	e.changeTick++
	e.updateDirty()
}

// Cursor implements vi.Surface.
func (e *Editor) Cursor() int {
	return e.cursor
}

// SetCursor implements vi.Surface.
func (e *Editor) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.content) {
		pos = len(e.content)
	}
	e.cursor = pos
}

func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	e.content = []rune(text)
	e.rebuildLines()
	e.cursor = 0
	e.scroll = 0
	e.filename = path
	e.savedText = text
	e.dirty = false
	e.statusMessage = ""
	e.changeTick = 0
	e.highlights = nil
	e.highlightStart = -1
	e.highlightEnd = -1
	if e.engine != nil {
		e.engine.Reset()
	}
	return nil
}

func (e *Editor) Save(path string) error {
	if path == "" {
		if e.filename == "" {
			return errors.New("no file name")
		}
		path = e.filename
	}
	text := string(e.content)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return err
	}
	e.filename = path
	e.savedText = text
	e.dirty = false
	return nil
}

func (e *Editor) Filename() string {
	return e.filename
}

func (e *Editor) Dirty() bool {
	return e.dirty
}

func (e *Editor) ChangeTick() uint64 {
	return e.changeTick
}

func (e *Editor) SetGitBranch(name string) {
	e.gitBranch = strings.TrimSpace(name)
}

func (e *Editor) SetStatusMessage(msg string) {
	e.statusMessage = msg
}

func (e *Editor) Scroll() int {
	return e.scroll
}

func (e *Editor) SetScroll(scroll int) {
	if scroll < 0 {
		scroll = 0
	}
	if scroll >= len(e.lines) {
		scroll = len(e.lines) - 1
	}
	e.scroll = scroll
}

func (e *Editor) LineCount() int {
	return len(e.lines)
}

func (e *Editor) VisibleRange() (int, int) {
	start := e.scroll
	if start < 0 {
		start = 0
	}
	end := start + e.viewHeightCached() - 1
	if end < start {
		end = start
	}
	if end >= len(e.lines) {
		end = len(e.lines) - 1
	}
	return start, end
}

func (e *Editor) SetHighlights(startLine, endLine int, spans map[int][]HighlightSpan) {
	if spans == nil || startLine < 0 || endLine < startLine {
		e.highlights = nil
		e.highlightStart = -1
		e.highlightEnd = -1
		return
	}
	e.highlights = spans
	e.highlightStart = startLine
	e.highlightEnd = endLine
}

func (e *Editor) HasHighlights() bool {
	return e.highlights != nil && e.highlightStart >= 0 && e.highlightEnd >= e.highlightStart
}

// HandleKey routes a key through the vi engine first. Keys the engine does
// not consume fall through to host editing: text entry while the engine is
// in insert mode, plain editing when vi is disabled, and viewport keys
// (arrows, paging) in any mode. Ctrl+Q is a host-level quit key in every
// mode; it is the only way out when vi is disabled.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.freeScroll = false
	if ev.Key() == tcell.KeyCtrlQ {
		e.quitRequested = true
		return true
	}
	if e.statusMessage != "" && (e.engine == nil || e.engine.Mode() != vi.ModeCommandLine) {
		e.statusMessage = ""
	}
	if e.engine != nil && e.engine.Enabled() {
		if e.engine.HandleKey(translateKey(ev)) {
			return true
		}
		if e.engine.Mode() == vi.ModeInsert {
			if e.handleTextEntry(ev) {
				return true
			}
		}
		return e.handleViewportKey(ev)
	}
	if e.handleViewportKey(ev) {
		return true
	}
	return e.handleTextEntry(ev)
}

// ConsumeQuitRequest reports whether Ctrl+Q was pressed since the last call
// and clears the request.
func (e *Editor) ConsumeQuitRequest() bool {
	req := e.quitRequested
	e.quitRequested = false
	return req
}

func (e *Editor) HandleMouse(ev *tcell.EventMouse) {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		e.scrollBy(-3)
		e.freeScroll = true
	case ev.Buttons()&tcell.WheelDown != 0:
		e.scrollBy(3)
		e.freeScroll = true
	case ev.Buttons()&tcell.Button1 != 0:
		x, y := ev.Position()
		row := y + e.scroll
		if row < 0 {
			row = 0
		}
		if row >= len(e.lines) {
			row = len(e.lines) - 1
		}
		col := visualToLogicalCol(e.lines[row], x-e.gutterWidth(), e.tabWidth)
		e.cursor = e.starts[row] + col
		e.freeScroll = false
	}
}

func (e *Editor) handleTextEntry(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return false
		}
		e.insertAtCursor([]rune{ev.Rune()})
		return true
	case tcell.KeyEnter:
		e.insertAtCursor([]rune{'\n'})
		return true
	case tcell.KeyTab:
		e.insertAtCursor([]rune{'\t'})
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursor == 0 {
			return true
		}
		e.content = append(e.content[:e.cursor-1], e.content[e.cursor:]...)
		e.cursor--
		e.afterEdit()
		return true
	default:
		return false
	}
}

func (e *Editor) handleViewportKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
		return true
	case tcell.KeyRight:
		if e.cursor < len(e.content) {
			e.cursor++
		}
		return true
	case tcell.KeyUp:
		e.moveCursorRows(-1)
		return true
	case tcell.KeyDown:
		e.moveCursorRows(1)
		return true
	case tcell.KeyHome:
		row, _ := e.cursorPos()
		e.cursor = e.starts[row]
		return true
	case tcell.KeyEnd:
		row, _ := e.cursorPos()
		e.cursor = e.starts[row] + len(e.lines[row])
		return true
	case tcell.KeyPgUp:
		e.moveCursorRows(-e.viewHeightCached())
		return true
	case tcell.KeyPgDn:
		e.moveCursorRows(e.viewHeightCached())
		return true
	default:
		return false
	}
}

func (e *Editor) insertAtCursor(text []rune) {
	out := make([]rune, 0, len(e.content)+len(text))
	out = append(out, e.content[:e.cursor]...)
	out = append(out, text...)
	out = append(out, e.content[e.cursor:]...)
	e.content = out
	e.cursor += len(text)
	e.afterEdit()
}

func (e *Editor) afterEdit() {
	e.rebuildLines()
	e.changeTick++
	e.updateDirty()
}

func (e *Editor) updateDirty() {
	e.dirty = string(e.content) != e.savedText
}

func (e *Editor) moveCursorRows(delta int) {
	row, col := e.cursorPos()
	target := row + delta
	if target < 0 {
		target = 0
	}
	if target >= len(e.lines) {
		target = len(e.lines) - 1
	}
	if col > len(e.lines[target]) {
		col = len(e.lines[target])
	}
	e.cursor = e.starts[target] + col
}

func (e *Editor) scrollBy(delta int) {
	maxScroll := len(e.lines) - e.viewHeightCached()
	if maxScroll < 0 {
		maxScroll = 0
	}
	e.scroll += delta
	if e.scroll > maxScroll {
		e.scroll = maxScroll
	}
	if e.scroll < 0 {
		e.scroll = 0
	}
}

func (e *Editor) rebuildLines() {
	e.lines = e.lines[:0]
	e.starts = e.starts[:0]
	start := 0
	for i, r := range e.content {
		if r == '\n' {
			e.lines = append(e.lines, e.content[start:i])
			e.starts = append(e.starts, start)
			start = i + 1
		}
	}
	e.lines = append(e.lines, e.content[start:])
	e.starts = append(e.starts, start)
}

// cursorPos maps the rune-offset cursor to a row and column. A cursor
// sitting on a newline belongs to the line that newline terminates.
func (e *Editor) cursorPos() (int, int) {
	row := len(e.starts) - 1
	for i := 1; i < len(e.starts); i++ {
		if e.cursor < e.starts[i] {
			row = i - 1
			break
		}
	}
	return row, e.cursor - e.starts[row]
}

func parseLineNumberMode(value string) LineNumberMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "relative", "rel":
		return LineNumberRelative
	case "off", "none", "false":
		return LineNumberOff
	default:
		return LineNumberAbsolute
	}
}
