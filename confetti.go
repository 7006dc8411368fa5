// Package confetti implements a lexer and parser for the Confetti
// configuration language: a small, whitespace-insignificant directive
// format with bare/quoted/triple-quoted arguments, optional nested
// blocks, and a handful of opt-in lexical extensions.
package confetti

// Parse parses src as a complete Confetti document and returns its
// directive tree. It never returns a partial Document: on error, the
// returned Document is nil.
func Parse(src []byte, opts Options) (*Document, error) {
	return ParseString(string(src), opts)
}

// ParseString is Parse for an already-decoded string, avoiding a copy
// when the caller already holds one.
func ParseString(src string, opts Options) (*Document, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	return p.parseDocument()
}
