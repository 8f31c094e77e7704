package directive

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type level int

const (
	levelPlain level = iota
	levelBanner
	levelWarning
	levelSkip
)

type message struct {
	level level
	text  string
}

// report buffers the messages of one output tree so trees resolved
// concurrently are still printed in configuration order.
type report struct {
	messages []message
}

func (r *report) add(l level, format string, args ...any) {
	r.messages = append(r.messages, message{level: l, text: fmt.Sprintf(format, args...)})
}

var (
	bannerColor  = color.New(color.Bold, color.FgBlue)
	warningColor = color.New(color.FgYellow)
	skipColor    = color.New(color.Bold, color.FgYellow)
)

// writeTo prints the buffered messages. A nil writer discards them.
func (r *report) writeTo(w io.Writer) {
	if w == nil {
		return
	}
	for _, m := range r.messages {
		switch m.level {
		case levelBanner:
			bannerColor.Fprintln(w, m.text)
		case levelWarning:
			warningColor.Fprintln(w, m.text)
		case levelSkip:
			skipColor.Fprintln(w, m.text)
		default:
			fmt.Fprintln(w, m.text)
		}
	}
}
