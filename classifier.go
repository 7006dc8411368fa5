package confetti

import "unicode"

// class is the lexical classification of a single code point.
// It is a pure function of the rune (and, for PunctuatorStart, of the
// active extension set): no host locale, no mutable state.
type class int

const (
	classWhitespace class = iota
	classLineBreak
	classForbidden
	classPunctuatorStart
	classArgChar
	classCtrlZ
)

// ctrlZ is the Ctrl-Z sentinel (U+001A). It is neither an ArgChar nor
// Forbidden: at the very end of input it terminates the document
// cleanly, anywhere else it is an illegal character. Only the lexer,
// which knows whether anything follows it in the buffer, can tell the
// two apart, so classify merely reports it as its own class rather
// than resolving that question here.
const ctrlZ rune = 0x1A

// classify maps r to its lexical class given the active options. The
// built-in punctuator starters ("{", "}", ";", "#", "\"", "'", "\\") are
// always PunctuatorStart; user-supplied extension punctuators add more.
func classify(r rune, opts Options) class {
	if r == ctrlZ {
		return classCtrlZ
	}
	if isLineBreakRune(r) {
		return classLineBreak
	}
	if unicode.Is(unicode.White_Space, r) {
		return classWhitespace
	}
	if isBuiltinPunctuatorStart(r) || opts.hasPunctuatorStarting(r) {
		return classPunctuatorStart
	}
	if isForbidden(r) {
		return classForbidden
	}
	return classArgChar
}

func isBuiltinPunctuatorStart(r rune) bool {
	switch r {
	case '{', '}', ';', '#', '"', '\'', '\\':
		return true
	}
	return false
}

// isForbidden reports whether r is a C0/C1 control character (other than
// tab, the line-break controls, and Ctrl-Z), a lone surrogate, a
// noncharacter code point, or an otherwise-unassigned code point. Ctrl-Z
// is excluded here because classify intercepts it before ever calling
// isForbidden; the exclusion only matters to isForbidden's other direct
// callers (quoted/triple-quoted/comment/expression scanning), where
// U+001A is accepted as ordinary content, never a terminator. Surrogates
// never reach here in practice: the cursor already rejects them as
// MalformedUtf8 before classification runs.
func isForbidden(r rune) bool {
	if r == '\t' || r == ctrlZ {
		return false
	}
	if isLineBreakRune(r) {
		return false
	}
	if unicode.Is(unicode.Cc, r) {
		return true
	}
	if unicode.Is(unicode.Cs, r) {
		return true
	}
	if isNoncharacter(r) {
		return true
	}
	if isAssigned(r) {
		return false
	}
	return true
}

// isNoncharacter reports whether r is one of the 66 Unicode
// noncharacter code points: U+FDD0..U+FDEF, and U+nFFFE/U+nFFFF for
// n = 0..16.
func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	low := r & 0xFFFF
	return low == 0xFFFE || low == 0xFFFF
}

// isAssigned reports whether r belongs to any defined Unicode general
// category. Private-use (Co) and format (Cf) characters count as
// assigned; both may appear in arguments.
func isAssigned(r rune) bool {
	for _, table := range unicode.Categories {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}
