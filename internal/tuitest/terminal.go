package tuitest

import (
	"bytes"
	"io"
)

// terminalReplies answers the capability queries bubbletea and lipgloss send
// on startup so the program under test never blocks waiting for a terminal.
var terminalReplies = []struct {
	query, reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:f5f5/f1f1/eeee\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:f5f5/f1f1/eeee\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:1010/1010/1414\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:1010/1010/1414\x1b\\")},
}

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	// keep a tail for queries split across reads
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerOne replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerOne() bool {
	first, match := -1, -1
	for i, r := range terminalReplies {
		idx := bytes.Index(tr.buf, r.query)
		if idx >= 0 && (first < 0 || idx < first) {
			first, match = idx, i
		}
	}
	if match < 0 {
		return false
	}
	r := terminalReplies[match]
	tr.buf = tr.buf[first+len(r.query):]
	_, _ = tr.w.Write(r.reply)
	return true
}
