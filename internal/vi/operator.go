package vi

// deleteLines implements dd: remove up to count whole lines starting at the
// cursor's line, including the structural newline so the line count shrinks
// by exactly the deleted amount. One snapshot covers the whole operation.
func (e *Engine) deleteLines(count int) {
	text := []rune(e.surface.Text())
	if len(text) == 0 {
		return
	}
	li := lineInfoAt(text, e.surface.Cursor())
	remaining := countLines(text) - li.Number
	n := count
	if n > remaining {
		n = remaining
	}
	delEnd := li.End
	for i := 1; i < n; i++ {
		delEnd = lineEndFrom(text, delEnd+1)
	}

	e.pushSnapshot()
	e.reg.write(string(text[li.Start:delEnd]))

	var out []rune
	var cur int
	switch {
	case li.Start == 0 && delEnd == len(text):
		// every remaining line deleted
		out = nil
		cur = 0
	case delEnd == len(text):
		// deletion reaches end of buffer: drop the preceding newline and
		// land on the start of the new last line
		out = text[:li.Start-1]
		cur = lineStartBefore(out, len(out))
	default:
		// internal deletion: remove the span plus its trailing newline
		out = append(append([]rune{}, text[:li.Start]...), text[delEnd+1:]...)
		cur = li.Start
	}
	e.apply(out, cur)
}

// yankLines implements yy: copy up to count whole lines, joined by \n
// without a trailing newline, into the register. Buffer and cursor are
// untouched and no change notification fires.
func (e *Engine) yankLines(count int) {
	text := []rune(e.surface.Text())
	li := lineInfoAt(text, e.surface.Cursor())
	remaining := countLines(text) - li.Number
	n := count
	if n > remaining {
		n = remaining
	}
	end := li.End
	for i := 1; i < n; i++ {
		end = lineEndFrom(text, end+1)
	}
	e.reg.write(string(text[li.Start:end]))
}

// putAfter inserts a newline plus the register content immediately after
// the current line's end, cursor at the start of the inserted text.
func (e *Engine) putAfter() {
	reg, ok := e.reg.read()
	if !ok {
		return
	}
	text := []rune(e.surface.Text())
	li := lineInfoAt(text, e.surface.Cursor())
	e.pushSnapshot()
	out := insertRunes(text, li.End, []rune("\n"+reg))
	e.apply(out, li.End+1)
}

// putBefore inserts the register content plus a newline immediately before
// the current line's start, cursor at the start of the inserted text.
func (e *Engine) putBefore() {
	reg, ok := e.reg.read()
	if !ok {
		return
	}
	text := []rune(e.surface.Text())
	li := lineInfoAt(text, e.surface.Cursor())
	e.pushSnapshot()
	out := insertRunes(text, li.Start, []rune(reg+"\n"))
	e.apply(out, li.Start)
}

// deleteChars implements x: delete up to count runes starting at the
// cursor. No-op at end of buffer or on an empty buffer.
func (e *Engine) deleteChars(count int) {
	text := []rune(e.surface.Text())
	cur := clamp(e.surface.Cursor(), 0, len(text))
	if cur >= len(text) {
		return
	}
	n := count
	if n > len(text)-cur {
		n = len(text) - cur
	}
	e.pushSnapshot()
	e.reg.write(string(text[cur : cur+n]))
	out := append(append([]rune{}, text[:cur]...), text[cur+n:]...)
	e.apply(out, cur)
}
