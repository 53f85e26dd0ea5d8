package vi

// LineInfo describes the line containing a cursor offset. It is derived on
// demand from the buffer and never cached.
type LineInfo struct {
	Number int // 0-based line number
	Start  int // offset of the first rune of the line
	End    int // offset one past the last rune, excluding the trailing newline
	Column int // cursor offset relative to Start
}

// lineInfoAt computes the line boundaries around cursor. A cursor sitting on
// a newline belongs to the line that newline terminates.
func lineInfoAt(text []rune, cursor int) LineInfo {
	cursor = clamp(cursor, 0, len(text))
	start := 0
	for i := cursor - 1; i >= 0; i-- {
		if text[i] == '\n' {
			start = i + 1
			break
		}
	}
	number := 0
	for i := 0; i < start; i++ {
		if text[i] == '\n' {
			number++
		}
	}
	end := len(text)
	for i := cursor; i < len(text); i++ {
		if text[i] == '\n' {
			end = i
			break
		}
	}
	return LineInfo{Number: number, Start: start, End: end, Column: cursor - start}
}

// countLines returns the number of lines in the buffer. An empty buffer is
// one empty line; a trailing newline opens a final empty line.
func countLines(text []rune) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// lineEndFrom returns the offset of the newline (or end of buffer) that
// terminates the line starting at start.
func lineEndFrom(text []rune, start int) int {
	for i := start; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}

// lineStartBefore returns the start offset of the line containing offset,
// scanning backwards.
func lineStartBefore(text []rune, offset int) int {
	for i := offset; i > 0; i-- {
		if text[i-1] == '\n' {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func insertRunes(text []rune, at int, ins []rune) []rune {
	out := make([]rune, 0, len(text)+len(ins))
	out = append(out, text[:at]...)
	out = append(out, ins...)
	out = append(out, text[at:]...)
	return out
}
