package confetti

import "strings"

// Escape processing table, implemented by the bare, single-quoted and
// triple-quoted argument scanners below:
//
//	\<punctuator-starter>          literal character
//	\<LineBreak>                   line continuation, erased; inside a
//	                               triple-quoted argument it is
//	                               IncompleteEscapeSequence instead
//	\<any other ArgChar>           literal of the following character
//	\<Whitespace, not LineBreak>   IllegalEscapeCharacter
//	\<Forbidden>                   IllegalEscapeCharacter
//	\<EOF>                         IllegalEscapeCharacter in a bare
//	                               argument, IncompleteEscapeSequence
//	                               inside quotes
//
// lexer turns a source buffer into a token stream, one token at a time.
// It shares its cursor with nothing else and never buffers more than
// the token currently under construction.
type lexer struct {
	c           *cursor
	opts        Options
	sawArgument bool
}

func newLexer(src string, opts Options) *lexer {
	return &lexer{c: newCursor(src), opts: opts}
}

// next returns the next token in the stream, or an error on the first
// lexical failure (malformed UTF-8, forbidden characters, unterminated
// strings, illegal escapes). Once EndOfInput is returned, every
// subsequent call returns EndOfInput again.
func (l *lexer) next() (token, error) {
	for {
		if err := l.skipWhitespace(); err != nil {
			return token{}, err
		}

		r, size, err := l.c.peek()
		if err != nil {
			return token{}, err
		}

		switch {
		case r == eof:
			return l.makeToken(tokEOF, ""), nil

		case r == ctrlZ:
			// Ctrl-Z cleanly terminates input only when nothing
			// follows it; anywhere else it's illegal character U+001A.
			if l.c.pos+size == len(l.c.src) {
				return l.makeToken(tokEOF, ""), nil
			}
			return token{}, illegalCharacter(l.c.span(size), r)

		case isLineBreakRune(r):
			return l.scanTerminator()

		case l.atCommentStart(r):
			return l.scanComment()

		case r == ';':
			span := l.c.span(1)
			l.c.advance()
			return token{Kind: tokSemicolon, Span: span}, nil

		case r == '{':
			span := l.c.span(1)
			l.c.advance()
			return token{Kind: tokBlockOpen, Span: span}, nil

		case r == '}':
			span := l.c.span(1)
			l.c.advance()
			return token{Kind: tokBlockClose, Span: span}, nil

		case r == '"':
			return l.scanQuoted()

		case l.opts.ExpressionArguments && r == '(':
			return l.scanExpression()
		}

		if match, ok := l.matchPunctuator(); ok {
			span := l.c.span(len(match))
			start := l.c.pos
			for l.c.pos-start < len(match) {
				if _, err := l.c.advance(); err != nil {
					return token{}, err
				}
			}
			l.sawArgument = true
			return token{Kind: tokArgument, Text: match, ArgKind: ArgBare, Span: span}, nil
		}

		// An extension-punctuator starter that doesn't complete a full
		// match (checked above) is an ordinary argument character.
		cl := classify(r, l.opts)
		if cl == classArgChar || r == '\\' || (cl == classPunctuatorStart && !isBuiltinPunctuatorStart(r)) {
			tok, empty, err := l.scanBareArgument()
			if err != nil {
				return token{}, err
			}
			if empty {
				continue
			}
			l.sawArgument = true
			return tok, nil
		}

		return token{}, illegalCharacter(l.c.span(1), r)
	}
}

func (l *lexer) makeToken(kind tokenKind, text string) token {
	return token{Kind: kind, Text: text, Span: l.c.span(0)}
}

// skipWhitespace consumes Whitespace runes (never LineBreak).
func (l *lexer) skipWhitespace() error {
	for {
		r, _, err := l.c.peek()
		if err != nil {
			return err
		}
		if r == eof || classify(r, l.opts) != classWhitespace {
			return nil
		}
		if _, err := l.c.advance(); err != nil {
			return err
		}
	}
}

// atCommentStart reports whether the lexer is positioned at a comment
// leader: "#" always, "//" when CStyleComments is enabled.
func (l *lexer) atCommentStart(r rune) bool {
	if r == '#' {
		return true
	}
	if l.opts.CStyleComments && r == '/' {
		next, _ := l.c.runeAt(l.c.pos + 1)
		return next == '/'
	}
	return false
}

// scanTerminator consumes a single line break, folding CRLF into one.
func (l *lexer) scanTerminator() (token, error) {
	span := l.c.span(1)
	r, err := l.c.advance()
	if err != nil {
		return token{}, err
	}
	if r == runeCR {
		if next, _ := l.c.runeAt(l.c.pos); next == runeLF {
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
		}
	}
	return token{Kind: tokNewline, Span: span}, nil
}

// matchPunctuator performs longest-match over the configured extension
// punctuators at the current position.
func (l *lexer) matchPunctuator() (string, bool) {
	best := ""
	for _, p := range l.opts.Punctuators {
		if len(p) > len(best) && strings.HasPrefix(l.c.src[l.c.pos:], p) {
			best = p
		}
	}
	return best, best != ""
}

// scanComment consumes a "#" or "//" line comment. The body runs to the
// next line break or EOF, except that a line-continuation escape at the
// very end elides the break and continues the comment onto the next
// line. Forbidden characters are still rejected inside comments.
func (l *lexer) scanComment() (token, error) {
	span := l.c.span(1)

	if r, err := l.c.advance(); err != nil {
		return token{}, err
	} else if r == '/' {
		if _, err := l.c.advance(); err != nil { // second '/'
			return token{}, err
		}
	}

	var buf strings.Builder
	capture := l.opts.CaptureComments

	for {
		r, _, err := l.c.peek()
		if err != nil {
			return token{}, err
		}
		if r == eof || isLineBreakRune(r) {
			break
		}
		if r == '\\' {
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
			next, _, err := l.c.peek()
			if err != nil {
				return token{}, err
			}
			if isLineBreakRune(next) {
				if _, err := l.scanTerminator(); err != nil {
					return token{}, err
				}
				continue
			}
			if capture {
				buf.WriteByte('\\')
			}
			continue
		}
		if isForbidden(r) {
			return token{}, illegalCharacterGeneric(l.c.span(1))
		}
		if capture {
			buf.WriteRune(r)
		}
		if _, err := l.c.advance(); err != nil {
			return token{}, err
		}
	}

	text := ""
	if capture {
		text = buf.String()
	}
	span.Length = l.c.pos - span.Offset
	return token{Kind: tokComment, Text: text, Span: span}, nil
}

// scanBareArgument scans a bare argument, which may begin either on an
// ArgChar or on an escape. It also absorbs standalone line
// continuations between tokens: when the scan produces no content at
// all (the continuation swallowed everything up to a structural
// boundary or EOF), it reports empty=true and the caller must retry.
func (l *lexer) scanBareArgument() (tok token, empty bool, err error) {
	span := l.c.span(1)
	var buf strings.Builder
	reachedEOF := false

loop:
	for {
		r, _, perr := l.c.peek()
		if perr != nil {
			return token{}, false, perr
		}
		switch {
		case r == eof:
			reachedEOF = true
			break loop
		case r == '\\':
			if _, err := l.c.advance(); err != nil {
				return token{}, false, err
			}
			next, _, perr := l.c.peek()
			if perr != nil {
				return token{}, false, perr
			}
			switch {
			case next == eof:
				return token{}, false, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(0)}
			case isLineBreakRune(next):
				// Only a standalone backslash (nothing accumulated yet
				// in this argument) may elide a line break. One glued
				// onto the end of an already-started argument is an
				// error, not a merge into the next line's text.
				if buf.Len() > 0 {
					return token{}, false, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
				}
				if _, err := l.scanTerminator(); err != nil {
					return token{}, false, err
				}
				if err := l.skipWhitespace(); err != nil {
					return token{}, false, err
				}
				continue loop
			case isBuiltinPunctuatorStart(next) || l.opts.hasPunctuatorStarting(next):
				buf.WriteRune(next)
				if _, err := l.c.advance(); err != nil {
					return token{}, false, err
				}
			case isWhitespaceRune(next, l.opts):
				return token{}, false, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
			case isForbidden(next):
				return token{}, false, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
			default:
				buf.WriteRune(next)
				if _, err := l.c.advance(); err != nil {
					return token{}, false, err
				}
			}
		case l.atCommentStart(r):
			break loop
		default:
			switch cl := classify(r, l.opts); {
			case cl == classArgChar:
			case cl == classPunctuatorStart && !isBuiltinPunctuatorStart(r):
				// Extension-punctuator starters end the argument only
				// when a full punctuator actually matches here.
				if _, ok := l.matchPunctuator(); ok {
					break loop
				}
			default:
				break loop
			}
			buf.WriteRune(r)
			if _, err := l.c.advance(); err != nil {
				return token{}, false, err
			}
		}
	}

	if buf.Len() == 0 {
		if reachedEOF && !l.sawArgument {
			return token{}, false, &Error{Kind: UnexpectedLineContinuation, Span: span}
		}
		return token{}, true, nil
	}

	span.Length = l.c.pos - span.Offset
	return token{Kind: tokArgument, Text: buf.String(), ArgKind: ArgBare, Span: span}, false, nil
}

func isWhitespaceRune(r rune, opts Options) bool {
	return classify(r, opts) == classWhitespace
}

// scanQuoted dispatches to single- or triple-quoted scanning based on
// how many consecutive quote characters follow the opening quote.
func (l *lexer) scanQuoted() (token, error) {
	span := l.c.span(1)
	if _, err := l.c.advance(); err != nil { // opening '"'
		return token{}, err
	}

	r, _, err := l.c.peek()
	if err != nil {
		return token{}, err
	}
	if r != '"' {
		return l.scanSingleQuoted(span)
	}
	if _, err := l.c.advance(); err != nil { // second '"'
		return token{}, err
	}
	r2, _, err := l.c.peek()
	if err != nil {
		return token{}, err
	}
	if r2 != '"' {
		span.Length = l.c.pos - span.Offset
		return token{Kind: tokArgument, Text: "", ArgKind: ArgQuoted, Span: span}, nil
	}
	if _, err := l.c.advance(); err != nil { // third '"'
		return token{}, err
	}
	return l.scanTripleQuoted(span)
}

func (l *lexer) scanSingleQuoted(span Span) (token, error) {
	var buf strings.Builder

	for {
		r, _, err := l.c.peek()
		if err != nil {
			return token{}, err
		}
		switch {
		case r == eof:
			return token{}, &Error{Kind: UnclosedQuoted, Span: span}
		case r == '"':
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
			span.Length = l.c.pos - span.Offset
			return token{Kind: tokArgument, Text: buf.String(), ArgKind: ArgQuoted, Span: span}, nil
		case r == '\\':
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
			next, _, err := l.c.peek()
			if err != nil {
				return token{}, err
			}
			switch {
			case next == eof:
				// An escape cut off by end of input never had a chance
				// to name its character.
				return token{}, &Error{Kind: IncompleteEscapeSequence, Span: l.c.span(0)}
			case isLineBreakRune(next):
				if _, err := l.scanTerminator(); err != nil {
					return token{}, err
				}
			case isBuiltinPunctuatorStart(next) || l.opts.hasPunctuatorStarting(next):
				buf.WriteRune(next)
				if _, err := l.c.advance(); err != nil {
					return token{}, err
				}
			case isWhitespaceRune(next, l.opts):
				return token{}, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
			case isForbidden(next):
				return token{}, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
			default:
				buf.WriteRune(next)
				if _, err := l.c.advance(); err != nil {
					return token{}, err
				}
			}
		case isLineBreakRune(r):
			return token{}, &Error{Kind: UnclosedQuoted, Span: span}
		case isForbidden(r):
			// Quoted context: the generic form, without the code point.
			return token{}, illegalCharacterGeneric(l.c.span(1))
		default:
			buf.WriteRune(r)
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
		}
	}
}

// scanTripleQuoted scans the body of a """..."""-delimited argument.
// Raw line breaks are preserved literally; a line-continuation escape
// is a hard error.
func (l *lexer) scanTripleQuoted(span Span) (token, error) {
	var buf strings.Builder

	for {
		if l.atTripleClose() {
			for i := 0; i < 3; i++ {
				if _, err := l.c.advance(); err != nil {
					return token{}, err
				}
			}
			span.Length = l.c.pos - span.Offset
			return token{Kind: tokArgument, Text: buf.String(), ArgKind: ArgTriple, Span: span}, nil
		}

		r, _, err := l.c.peek()
		if err != nil {
			return token{}, err
		}
		switch {
		case r == eof:
			return token{}, &Error{Kind: UnclosedQuoted, Span: span}
		case r == '\\':
			escSpan := l.c.span(1)
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
			next, _, err := l.c.peek()
			if err != nil {
				return token{}, err
			}
			switch {
			case next == eof:
				return token{}, &Error{Kind: IncompleteEscapeSequence, Span: l.c.span(0)}
			case isLineBreakRune(next):
				return token{}, &Error{Kind: IncompleteEscapeSequence, Span: escSpan}
			case isBuiltinPunctuatorStart(next) || l.opts.hasPunctuatorStarting(next):
				buf.WriteRune(next)
				if _, err := l.c.advance(); err != nil {
					return token{}, err
				}
			case isWhitespaceRune(next, l.opts):
				return token{}, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
			case isForbidden(next):
				return token{}, &Error{Kind: IllegalEscapeCharacter, Span: l.c.span(1)}
			default:
				buf.WriteRune(next)
				if _, err := l.c.advance(); err != nil {
					return token{}, err
				}
			}
		case isForbidden(r):
			return token{}, illegalCharacterGeneric(l.c.span(1))
		default:
			buf.WriteRune(r)
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
		}
	}
}

// atTripleClose reports whether the cursor sits on an unescaped closing
// """. Escaped quotes never reach here: they're consumed as literal
// content by the escape branch above before this check runs again.
func (l *lexer) atTripleClose() bool {
	pos := l.c.pos
	return pos+3 <= len(l.c.src) && l.c.src[pos] == '"' && l.c.src[pos+1] == '"' && l.c.src[pos+2] == '"'
}

// scanExpression scans a balanced "(...)" expression argument (the
// expression-arguments extension). Its decoded text is the raw inner
// content verbatim, including nested parentheses, whitespace, and
// quotes; forbidden characters are still rejected. It performs no escape
// processing: a backslash is copied into the text like any other
// character and does not keep a following parenthesis from counting.
func (l *lexer) scanExpression() (token, error) {
	span := l.c.span(1)
	if _, err := l.c.advance(); err != nil { // opening '('
		return token{}, err
	}

	var buf strings.Builder
	depth := 1

	for {
		r, _, err := l.c.peek()
		if err != nil {
			return token{}, err
		}
		switch {
		case r == eof:
			return token{}, &Error{Kind: UnbalancedExpression, Span: span}
		case r == '(':
			depth++
			buf.WriteRune(r)
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
		case r == ')':
			depth--
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
			if depth == 0 {
				span.Length = l.c.pos - span.Offset
				return token{Kind: tokArgument, Text: buf.String(), ArgKind: ArgBare, Span: span}, nil
			}
			buf.WriteRune(r)
		case isForbidden(r):
			return token{}, illegalCharacter(l.c.span(1), r)
		default:
			buf.WriteRune(r)
			if _, err := l.c.advance(); err != nil {
				return token{}, err
			}
		}
	}
}
