package tuitest

import (
	"bytes"
	"io"
)

// capabilityReply pairs a terminal query with the canned answer a real
// terminal would send back.
type capabilityReply struct {
	query []byte
	reply []byte
}

// capabilityReplies covers exactly the queries this program's stack emits on
// startup: bubbletea asks for the cursor position (DSR), termenv asks for the
// default foreground and background colors (OSC 10/11, terminated by either
// BEL or ST depending on the terminal it thinks it is talking to). Anything
// else the program prints is ordinary output and flows through untouched.
var capabilityReplies = []capabilityReply{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

// queryResponder watches the program's output stream for capability queries
// and answers them on the PTY. Without the answers the program stalls before
// its first render, waiting for reports a real terminal would send.
type queryResponder struct {
	w       io.Writer
	pending []byte
}

func newQueryResponder(w io.Writer) *queryResponder {
	return &queryResponder{w: w}
}

// Process scans a chunk of program output. Matched queries are consumed from
// the pending buffer; a short tail is retained so a query split across two
// reads still matches on the next call.
func (qr *queryResponder) Process(chunk []byte) {
	qr.pending = append(qr.pending, chunk...)
	for {
		idx, match := qr.earliestMatch()
		if match == nil {
			break
		}
		qr.pending = qr.pending[idx+len(match.query):]
		_, _ = qr.w.Write(match.reply)
	}
	if len(qr.pending) > 256 {
		qr.pending = qr.pending[len(qr.pending)-64:]
	}
}

// earliestMatch finds the first recognized query in the pending buffer, so
// replies go out in the order the program asked.
func (qr *queryResponder) earliestMatch() (int, *capabilityReply) {
	best := -1
	var found *capabilityReply
	for i := range capabilityReplies {
		idx := bytes.Index(qr.pending, capabilityReplies[i].query)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			found = &capabilityReplies[i]
		}
	}
	return best, found
}
