package confetti

import "unicode/utf8"

// Options selects the lexical extensions and limits applied to a single
// Parse call. The zero value is the base Confetti grammar: no comment
// capture, "#" as the only comment leader, no expression arguments, no
// extension punctuators, unlimited block nesting.
type Options struct {
	// CaptureComments preserves comments alongside the tree instead of
	// discarding their text as soon as the lexer scans past them.
	CaptureComments bool

	// CStyleComments additionally recognizes "//" as a line comment
	// leader, alongside the always-on "#".
	CStyleComments bool

	// ExpressionArguments allows a balanced "(...)" span to form a
	// single bare argument whose text is the verbatim inner content.
	ExpressionArguments bool

	// Punctuators is a set of strings treated as standalone,
	// single-argument tokens wherever an argument boundary is legal.
	// Matching is longest-match-first.
	Punctuators []string

	// MaxDepth caps block nesting; 0 means unlimited.
	MaxDepth int
}

// hasPunctuatorStarting reports whether r could begin one of the
// configured extension punctuators.
func (o Options) hasPunctuatorStarting(r rune) bool {
	for _, p := range o.Punctuators {
		if p == "" {
			continue
		}
		if first, _ := utf8.DecodeRuneInString(p); first == r {
			return true
		}
	}
	return false
}
