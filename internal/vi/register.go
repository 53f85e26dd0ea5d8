package vi

// register is the single unnamed yank/delete slot. It is overwritten by
// every yank and every delete that removes text, and read (not cleared)
// by put.
type register struct {
	text string
	set  bool
}

func (r *register) write(s string) {
	r.text = s
	r.set = true
}

func (r *register) read() (string, bool) {
	return r.text, r.set
}

func (r *register) clear() {
	r.text = ""
	r.set = false
}
