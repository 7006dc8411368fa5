package confetti

import "fmt"

// ErrorKind identifies the category of a parse failure. Every kind maps
// to exactly one canonical message (see Error.Error), matched byte-for-
// byte by the conformance suite.
type ErrorKind int

const (
	MalformedUtf8 ErrorKind = iota
	IllegalCharacter
	IllegalEscapeCharacter
	UnexpectedLineContinuation
	IncompleteEscapeSequence
	UnclosedQuoted
	UnexpectedSemicolon
	UnexpectedOpenBrace
	UnmatchedCloseBrace
	ExpectedCloseBrace

	// MaxDepthExceeded and UnbalancedExpression cover the two
	// extension-only failure modes: an enforced MaxDepth option, and
	// an unterminated expression-argument span.
	MaxDepthExceeded
	UnbalancedExpression
)

// Error is a structured, position-stamped parse failure. The parser and
// lexer return the first one encountered and stop; there is no partial
// result and no recovery.
type Error struct {
	Kind    ErrorKind
	Span    Span
	Rune    rune
	HasRune bool
}

// illegalCharacter builds an IllegalCharacter error, attaching the
// offending code point so the message can name it in U+XXXX form.
func illegalCharacter(span Span, r rune) *Error {
	return &Error{Kind: IllegalCharacter, Span: span, Rune: r, HasRune: true}
}

// illegalCharacterGeneric builds the generic (no code point) form used
// inside quoted and comment contexts.
func illegalCharacterGeneric(span Span) *Error {
	return &Error{Kind: IllegalCharacter, Span: span}
}

// Error implements the error interface, returning the canonical message
// with no trailing newline. Use FormatError for the "error: ...\n" form
// the snapshot suite compares against.
func (e *Error) Error() string {
	switch e.Kind {
	case MalformedUtf8:
		return "malformed UTF-8"
	case IllegalCharacter:
		if e.HasRune {
			return fmt.Sprintf("illegal character U+%04X", e.Rune)
		}
		return "illegal character"
	case IllegalEscapeCharacter:
		return "illegal escape character"
	case UnexpectedLineContinuation:
		return "unexpected line continuation"
	case IncompleteEscapeSequence:
		return "incomplete escape sequence"
	case UnclosedQuoted:
		return "unclosed quoted"
	case UnexpectedSemicolon:
		return "unexpected ';'"
	case UnexpectedOpenBrace:
		return "unexpected '{'"
	case UnmatchedCloseBrace:
		return "found '}' without matching '{'"
	case ExpectedCloseBrace:
		return "expected '}'"
	case MaxDepthExceeded:
		return "maximum nesting depth exceeded"
	case UnbalancedExpression:
		return "unbalanced expression"
	default:
		return "unknown error"
	}
}

// FormatError renders err the way the conformance snapshot suite
// expects: "error: <message>\n". Passing nil returns the empty string.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("error: %s\n", err.Error())
}
