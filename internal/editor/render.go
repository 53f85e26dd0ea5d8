package editor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vied-dev/vied/internal/vi"
)

func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	statusY := h - 2
	cmdY := h - 1
	viewHeight := h - 2
	if h < 2 {
		statusY = h - 1
		cmdY = h - 1
	}
	if viewHeight < 0 {
		viewHeight = 0
	}
	e.viewHeight = viewHeight
	if !e.freeScroll {
		e.ensureCursorVisible(viewHeight)
	}

	s.SetStyle(e.styleMain)
	s.Clear()

	gutterWidth := e.gutterWidth()
	for y := 0; y < viewHeight; y++ {
		lineIdx := e.scroll + y
		if lineIdx >= len(e.lines) {
			clearLine(s, y, w, e.styleMain)
			continue
		}
		e.drawLineWithGutter(s, y, w, gutterWidth, lineIdx)
	}

	if statusY >= 0 {
		e.renderStatusline(s, w, statusY)
	}
	var cx, cy int
	commandMode := e.engine != nil && e.engine.Mode() == vi.ModeCommandLine
	if cmdY >= 0 {
		cmdCursor := e.renderCommandline(s, w, cmdY)
		if commandMode {
			cx = cmdCursor
			cy = cmdY
		}
	}
	cursorVisible := true
	if !commandMode {
		row, col := e.cursorPos()
		cy = row - e.scroll
		if cy < 0 || cy >= viewHeight {
			cursorVisible = false
		}
		cx = gutterWidth + visualCol(e.lines[row], col, e.tabWidth)
		if cx >= w {
			cx = w - 1
		}
	}
	if !cursorVisible {
		s.HideCursor()
		s.Show()
		return
	}
	cursorStyle := tcell.CursorStyleSteadyBlock
	if commandMode || (e.engine != nil && e.engine.Mode() == vi.ModeInsert) || e.engine == nil || !e.engine.Enabled() {
		cursorStyle = tcell.CursorStyleSteadyBar
	}
	s.SetCursorStyle(cursorStyle)
	s.ShowCursor(cx, cy)
	s.Show()
}

func (e *Editor) modeLabel() string {
	if e.engine == nil || !e.engine.Enabled() {
		return "EDIT"
	}
	return e.engine.Mode().String()
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	name := e.filename
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	dirty := ""
	if e.dirty {
		dirty = "*"
	}
	message := e.statusMessage
	if e.engine != nil && e.engine.Status() != "" {
		message = e.engine.Status()
	}

	status := fmt.Sprintf(" %s | %s%s ", e.modeLabel(), name, dirty)
	if message != "" {
		status = fmt.Sprintf(" %s | %s%s | %s ", e.modeLabel(), name, dirty, message)
	}
	row, col := e.cursorPos()
	right := fmt.Sprintf(" Ln %d, Col %d", row+1, visualCol(e.lines[row], col, e.tabWidth)+1)
	if e.gitBranch != "" {
		right += " | " + formatGitBranch(e.gitBranchSymbol, e.gitBranch)
	}

	line := composeStatusLine(status, right, w)
	for x, r := range line {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, e.styleStatus)
	}
}

func (e *Editor) renderCommandline(s tcell.Screen, w, y int) int {
	var cmdRunes []rune
	if e.engine != nil && e.engine.Mode() == vi.ModeCommandLine {
		cmdRunes = append([]rune{':'}, []rune(e.engine.CommandLine())...)
	}
	for x := 0; x < w; x++ {
		if x < len(cmdRunes) {
			s.SetContent(x, y, cmdRunes[x], nil, e.styleCommand)
		} else {
			s.SetContent(x, y, ' ', nil, e.styleCommand)
		}
	}
	cursorX := len(cmdRunes)
	if cursorX >= w {
		cursorX = w - 1
	}
	return cursorX
}

func (e *Editor) ensureCursorVisible(viewHeight int) {
	if viewHeight <= 0 {
		return
	}
	row, _ := e.cursorPos()
	// Center when the cursor jumped far outside the viewport.
	if row < e.scroll-1 || row >= e.scroll+viewHeight+1 {
		e.scroll = row - viewHeight/2
		if e.scroll < 0 {
			e.scroll = 0
		}
		return
	}
	if row < e.scroll {
		e.scroll = row
		return
	}
	if row >= e.scroll+viewHeight {
		e.scroll = row - viewHeight + 1
	}
}

func (e *Editor) UpdateScroll() {
	if e.freeScroll {
		return
	}
	e.ensureCursorVisible(e.viewHeightCached())
}

func (e *Editor) viewHeightCached() int {
	if e.viewHeight < 1 {
		return 1
	}
	return e.viewHeight
}

func (e *Editor) gutterWidth() int {
	if e.lineNumberMode == LineNumberOff {
		return 0
	}
	maxLine := len(e.lines)
	if maxLine < 1 {
		maxLine = 1
	}
	digits := len(strconv.Itoa(maxLine))
	if digits < 2 {
		digits = 2
	}
	return 1 + digits + 1
}

func (e *Editor) drawLineWithGutter(s tcell.Screen, y, w, gutterWidth, lineIdx int) {
	cursorRow, _ := e.cursorPos()
	if gutterWidth > 0 {
		digits := gutterWidth - 2
		if digits < 1 {
			digits = 1
		}
		num := lineIdx + 1
		if e.lineNumberMode == LineNumberRelative && lineIdx != cursorRow {
			diff := lineIdx - cursorRow
			if diff < 0 {
				diff = -diff
			}
			num = diff
		}
		numStr := fmt.Sprintf("%*d", digits, num)
		style := e.styleLineNumber
		if lineIdx == cursorRow {
			style = e.styleLineNumberCur
		}
		if w > 0 {
			s.SetContent(0, y, ' ', nil, e.styleMain)
		}
		for i, r := range numStr {
			x := 1 + i
			if x >= gutterWidth-1 || x >= w {
				break
			}
			s.SetContent(x, y, r, nil, style)
		}
		if gutterWidth-1 < w {
			s.SetContent(gutterWidth-1, y, ' ', nil, e.styleMain)
		}
	}
	if gutterWidth >= w {
		return
	}
	var spans []HighlightSpan
	if e.highlightStart >= 0 && lineIdx >= e.highlightStart && lineIdx <= e.highlightEnd {
		spans = e.highlights[lineIdx]
	}
	e.drawLine(s, y, w, gutterWidth, e.lines[lineIdx], spans)
}

func (e *Editor) drawLine(s tcell.Screen, y, w, startX int, line []rune, spans []HighlightSpan) {
	x := startX
	col := 0
	for idx, r := range line {
		if x >= w {
			break
		}
		style := e.styleMain
		if kind, ok := highlightKindAt(spans, idx); ok {
			style = e.styleForHighlight(kind)
		}
		if r == '\t' {
			spaces := e.tabWidth - (col % e.tabWidth)
			for i := 0; i < spaces && x < w; i++ {
				s.SetContent(x, y, ' ', nil, style)
				x++
				col++
			}
			continue
		}
		s.SetContent(x, y, r, nil, style)
		x++
		col++
	}
	for x < w {
		s.SetContent(x, y, ' ', nil, e.styleMain)
		x++
	}
}

func (e *Editor) styleForHighlight(kind string) tcell.Style {
	switch kind {
	case "keyword":
		return e.styleSyntaxKeyword
	case "string":
		return e.styleSyntaxString
	case "comment":
		return e.styleSyntaxComment
	case "type":
		return e.styleSyntaxType
	case "function":
		return e.styleSyntaxFunction
	case "number":
		return e.styleSyntaxNumber
	default:
		return e.styleMain
	}
}

func highlightPriority(kind string) int {
	switch kind {
	case "comment":
		return 5
	case "string":
		return 4
	case "keyword":
		return 3
	case "type", "function", "number":
		return 2
	default:
		return 0
	}
}

func highlightKindAt(spans []HighlightSpan, col int) (string, bool) {
	bestKind := ""
	bestPriority := 0
	for _, span := range spans {
		if col < span.StartCol || col >= span.EndCol {
			continue
		}
		if p := highlightPriority(span.Kind); p > bestPriority {
			bestPriority = p
			bestKind = span.Kind
		}
	}
	if bestKind == "" {
		return "", false
	}
	return bestKind, true
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	spaceCount := width - len(leftRunes) - len(rightRunes)
	if spaceCount < 0 {
		spaceCount = 0
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := 0; i < spaceCount; i++ {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}

func formatGitBranch(symbol, branch string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = "git:"
	}
	if strings.HasSuffix(symbol, ":") {
		return symbol + branch
	}
	return symbol + " " + branch
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

func visualCol(line []rune, logicalCol int, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if logicalCol < 0 {
		logicalCol = 0
	}
	if logicalCol > len(line) {
		logicalCol = len(line)
	}
	col := 0
	for i := 0; i < logicalCol; i++ {
		if line[i] == '\t' {
			col += tabWidth - (col % tabWidth)
			continue
		}
		col++
	}
	return col
}

func visualToLogicalCol(line []rune, visualX int, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if visualX <= 0 {
		return 0
	}
	col := 0
	for i, r := range line {
		advance := 1
		if r == '\t' {
			advance = tabWidth - (col % tabWidth)
		}
		if col+advance > visualX {
			return i
		}
		col += advance
		if col >= visualX {
			return i + 1
		}
	}
	return len(line)
}
