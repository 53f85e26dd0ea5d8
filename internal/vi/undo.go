package vi

// undoEntry is one (content, cursor) snapshot taken before a mutation.
type undoEntry struct {
	content string
	cursor  int
}

// undoStack is a bounded stack of snapshots, oldest first. It only ever
// replays states it has observed; it never invents content.
type undoStack struct {
	entries []undoEntry
	limit   int
}

func (u *undoStack) push(entry undoEntry) {
	u.entries = append(u.entries, entry)
	if u.limit > 0 && len(u.entries) > u.limit {
		excess := len(u.entries) - u.limit
		u.entries = u.entries[excess:]
	}
}

func (u *undoStack) pop() (undoEntry, bool) {
	if len(u.entries) == 0 {
		return undoEntry{}, false
	}
	entry := u.entries[len(u.entries)-1]
	u.entries = u.entries[:len(u.entries)-1]
	return entry, true
}

func (u *undoStack) size() int {
	return len(u.entries)
}

func (u *undoStack) clear() {
	u.entries = nil
}
