package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/photoreducer/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ___ _        _       ___        _
| _ \ |_  ___| |_ ___| _ \___ __| |_  _ __ ___ _ _
|  _/ ' \/ _ \  _/ _ \   / -_) _`+"`"+` | || / _/ -_) '_|
|_| |_||_\___/\__\___/_|_\___\__,_|\_,_\__\___|_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}

// PrintIntro prints the boxed explanation shown before the folder prompt.
func PrintIntro() {
	fmt.Fprintln(os.Stdout, Rule('=', 80))
	fmt.Fprint(os.Stdout, `
This program optimizes any photos in the JPEG file format within the given
folder. Files are overwritten in place. Please be sure that you are providing
the correct path.
`+"\n")
	fmt.Fprintln(os.Stdout, Rule('=', 80))
}

// Section prints a heading framed by rules, e.g. "=====\nDetecting files...\n=====".
func Section(title string, under rune) {
	fmt.Fprintln(os.Stdout, Rule('=', 60))
	fmt.Fprintln(os.Stdout, title)
	fmt.Fprintln(os.Stdout, Rule(under, 40))
}

// Rule returns a horizontal separator of n copies of ch.
func Rule(ch rune, n int) string {
	return strings.Repeat(string(ch), n)
}
