package vi

// applyMotion repositions the cursor for one of the normal-mode motions.
// Motions only touch the cursor; text, register and undo stay untouched.
func (e *Engine) applyMotion(r rune, count int) {
	text := []rune(e.surface.Text())
	cur := clamp(e.surface.Cursor(), 0, len(text))
	switch r {
	case 'h':
		cur -= count
		if cur < 0 {
			cur = 0
		}
	case 'l':
		cur += count
		if cur > len(text) {
			cur = len(text)
		}
	case 'j':
		for i := 0; i < count; i++ {
			li := lineInfoAt(text, cur)
			if li.End >= len(text) {
				break // already on the last line
			}
			nextStart := li.End + 1
			nextEnd := lineEndFrom(text, nextStart)
			col := li.Column
			if n := nextEnd - nextStart; col > n {
				col = n
			}
			cur = nextStart + col
		}
	case 'k':
		for i := 0; i < count; i++ {
			li := lineInfoAt(text, cur)
			if li.Start == 0 {
				break // already on the first line
			}
			prevEnd := li.Start - 1
			prevStart := lineStartBefore(text, prevEnd)
			col := li.Column
			if n := prevEnd - prevStart; col > n {
				col = n
			}
			cur = prevStart + col
		}
	case '0':
		cur = lineInfoAt(text, cur).Start
	case '$':
		cur = lineInfoAt(text, cur).End
	}
	e.surface.SetCursor(cur)
}
