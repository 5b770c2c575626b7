package core

import (
	"strings"
	"unicode"
)

// Tokenize splits a raw command line into whitespace-delimited words and
// reports whether the command should run in the background.
//
// The grammar is deliberately flat: no quoting, no escaping, no variable
// expansion. A token is a maximal run of non-whitespace characters. A
// trailing "&" requests background execution whether it stands alone as the
// last token or is glued to it ("sleep 5 &" and "sleep 5&" are equivalent).
func Tokenize(line string) (argv []string, background bool) {
	argv = strings.Fields(line)
	if len(argv) == 0 {
		return nil, false
	}

	last := argv[len(argv)-1]
	switch {
	case last == "&":
		background = true
		argv = argv[:len(argv)-1]
	case strings.HasSuffix(last, "&"):
		background = true
		argv[len(argv)-1] = strings.TrimSuffix(last, "&")
	}

	return argv, background
}

// Blank reports whether the line is empty or contains only whitespace.
// History and the dispatcher share this predicate so they agree on what
// counts as "a command".
func Blank(line string) bool {
	return strings.IndexFunc(line, func(r rune) bool {
		return !unicode.IsSpace(r)
	}) == -1
}
