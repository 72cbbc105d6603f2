package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Prompter asks line-oriented questions on an input/output pair. The CLI
// wires it to stdin/stdout; tests feed it a strings.Reader.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the next input line without its line ending.
// A final line without a newline is still returned; io.EOF is only reported
// when nothing at all was read.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(err, "read answer")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WaitEnter prints label and blocks until the user presses return. EOF on
// the input counts as confirmation so piped runs do not hang.
func (p *Prompter) WaitEnter(label string) error {
	_, err := p.Ask(label)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return nil
	}
	return err
}
