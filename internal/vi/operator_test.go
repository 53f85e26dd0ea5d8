package vi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteLine(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		cursor   int
		keys     string
		wantText string
		wantCur  int
		wantReg  string
	}{
		{"middle line", "a\nb\nc", 2, "dd", "a\nc", 2, "b"},
		{"first line", "a\nb\nc", 0, "dd", "b\nc", 0, "a"},
		{"last line drops preceding newline", "a\nb\nc", 4, "dd", "a\nb", 2, "c"},
		{"whole buffer", "a\nb\nc", 0, "3dd", "", 0, "a\nb\nc"},
		{"count beyond remaining", "a\nb\nc", 2, "9dd", "a", 0, "b\nc"},
		{"count internal", "a\nb\nc\nd", 0, "2dd", "c\nd", 0, "a\nb"},
		{"single line buffer", "only", 2, "dd", "", 0, "only"},
		{"cursor mid-line", "alpha\nbeta", 2, "dd", "beta", 0, "alpha"},
		{"trailing empty line", "a\n", 2, "dd", "a", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s, _ := newTestEngine(tt.content, tt.cursor)
			feed(e, tt.keys)
			assert.Equal(t, tt.wantText, s.Text())
			assert.Equal(t, tt.wantCur, s.cursor)
			reg, set := e.reg.read()
			require.True(t, set)
			assert.Equal(t, tt.wantReg, reg)
		})
	}
}

func TestDeleteLineEmptyBufferNoop(t *testing.T) {
	e, s, h := newTestEngine("", 0)
	feed(e, "dd")
	assert.Equal(t, "", s.Text())
	assert.Equal(t, 0, s.cursor)
	assert.Empty(t, h.changes)
	assert.Equal(t, 0, e.undo.size())
}

func TestDeleteLineUndoRoundTrip(t *testing.T) {
	e, s, _ := newTestEngine("one\ntwo\nthree", 6)
	feed(e, "2dd")
	require.Equal(t, "one", s.Text())
	feed(e, "u")
	assert.Equal(t, "one\ntwo\nthree", s.Text())
	assert.Equal(t, 6, s.cursor)
}

func TestYankLines(t *testing.T) {
	e, s, h := newTestEngine("one\ntwo\nthree", 5)
	feed(e, "2yy")
	assert.Equal(t, "one\ntwo\nthree", s.Text())
	assert.Equal(t, 5, s.cursor)
	assert.Empty(t, h.changes)
	reg, set := e.reg.read()
	require.True(t, set)
	assert.Equal(t, "two\nthree", reg, "joined by newline, no trailing newline")
}

func TestYankCountBeyondRemaining(t *testing.T) {
	e, _, _ := newTestEngine("a\nb", 2)
	feed(e, "5yy")
	reg, _ := e.reg.read()
	assert.Equal(t, "b", reg)
}

func TestPutAfter(t *testing.T) {
	e, s, _ := newTestEngine("one\ntwo", 1)
	feed(e, "yyjp")
	assert.Equal(t, "one\ntwo\none", s.Text())
	assert.Equal(t, 8, s.cursor, "cursor at start of inserted text")

	// the register survives the put
	feed(e, "p")
	assert.Equal(t, "one\ntwo\none\none", s.Text())
}

func TestPutBefore(t *testing.T) {
	e, s, _ := newTestEngine("one\ntwo", 5)
	feed(e, "yy")
	feed(e, "P")
	assert.Equal(t, "one\ntwo\ntwo", s.Text())
	assert.Equal(t, 4, s.cursor)
}

func TestPutMultiLine(t *testing.T) {
	e, s, _ := newTestEngine("a\nb\nc", 0)
	feed(e, "2yy")
	feed(e, "p")
	assert.Equal(t, "a\na\nb\nb\nc", s.Text())
	assert.Equal(t, 2, s.cursor)
}

func TestPutEmptyRegisterNoop(t *testing.T) {
	e, s, h := newTestEngine("one", 0)
	feed(e, "pP")
	assert.Equal(t, "one", s.Text())
	assert.Empty(t, h.changes)
	assert.Equal(t, 0, e.undo.size())
}

func TestDeleteChar(t *testing.T) {
	e, s, _ := newTestEngine("hello", 1)
	feed(e, "x")
	assert.Equal(t, "hllo", s.Text())
	assert.Equal(t, 1, s.cursor)
	reg, _ := e.reg.read()
	assert.Equal(t, "e", reg)
}

func TestDeleteCharCount(t *testing.T) {
	e, s, _ := newTestEngine("hello", 1)
	feed(e, "3x")
	assert.Equal(t, "ho", s.Text())
	assert.Equal(t, 1, s.cursor)
	reg, _ := e.reg.read()
	assert.Equal(t, "ell", reg)
}

func TestDeleteCharClampsAtEnd(t *testing.T) {
	e, s, _ := newTestEngine("ab", 1)
	feed(e, "9x")
	assert.Equal(t, "a", s.Text())
	assert.Equal(t, 1, s.cursor, "cursor may sit at end of buffer")
}

func TestDeleteCharAtEndNoop(t *testing.T) {
	e, s, h := newTestEngine("ab", 2)
	feed(e, "x")
	assert.Equal(t, "ab", s.Text())
	assert.Empty(t, h.changes)

	empty, es, _ := newTestEngine("", 0)
	feed(empty, "x")
	assert.Equal(t, "", es.Text())
}

func TestDeleteCharUndo(t *testing.T) {
	e, s, _ := newTestEngine("hello", 4)
	feed(e, "x")
	feed(e, "u")
	assert.Equal(t, "hello", s.Text())
	assert.Equal(t, 4, s.cursor)
}

func TestDeleteOverwritesRegister(t *testing.T) {
	e, _, _ := newTestEngine("one\ntwo", 0)
	feed(e, "yy") // register = "one"
	feed(e, "x")  // register = "o"
	reg, _ := e.reg.read()
	assert.Equal(t, "o", reg)
}
