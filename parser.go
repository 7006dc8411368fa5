package confetti

// parser consumes the lexer's token stream one token at a time (a
// single slot of lookahead held in cur) and builds the directive tree.
// It never buffers the whole token stream.
type parser struct {
	lx       *lexer
	opts     Options
	cur      token
	comments []Comment
}

func newParser(src string, opts Options) (*parser, error) {
	p := &parser{lx: newLexer(src, opts), opts: opts}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// advance pulls the next non-comment token into p.cur, recording
// comments along the way when capture is enabled.
func (p *parser) advance() error {
	for {
		tok, err := p.lx.next()
		if err != nil {
			return err
		}
		if tok.Kind == tokComment {
			if p.opts.CaptureComments {
				p.comments = append(p.comments, Comment{Text: tok.Text, Span: tok.Span})
			}
			continue
		}
		p.cur = tok
		return nil
	}
}

// parseDocument parses a full top-level directive-list followed by EOF.
func (p *parser) parseDocument() (*Document, error) {
	dirs, err := p.parseDirectives(false, 0)
	if err != nil {
		return nil, err
	}
	return &Document{Directives: dirs, Comments: p.comments}, nil
}

// parseDirectives implements directive-list := (directive (terminator
// directive)*)?. Blank lines (repeated Newline tokens) are absorbed
// freely; a ';' or '{' seen here (i.e. not immediately after a
// directive's own arguments) is always an error, because a legitimate
// terminator is consumed from inside parseDirective, never left
// pending at the top of this loop.
func (p *parser) parseDirectives(insideBlock bool, depth int) ([]Directive, error) {
	var out []Directive

	for {
		switch p.cur.Kind {
		case tokNewline:
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue

		case tokEOF:
			if insideBlock {
				return nil, &Error{Kind: ExpectedCloseBrace, Span: p.cur.Span}
			}
			return out, nil

		case tokBlockClose:
			if insideBlock {
				return out, nil
			}
			return nil, &Error{Kind: UnmatchedCloseBrace, Span: p.cur.Span}

		case tokSemicolon:
			return nil, &Error{Kind: UnexpectedSemicolon, Span: p.cur.Span}

		case tokBlockOpen:
			return nil, &Error{Kind: UnexpectedOpenBrace, Span: p.cur.Span}

		default: // tokArgument
			dir, err := p.parseDirective(depth)
			if err != nil {
				return nil, err
			}
			out = append(out, dir)
		}
	}
}

// parseDirective implements directive := argument+ block?, plus
// terminator consumption: a ';' can never
// follow a block directly (caught as UnexpectedSemicolon back in
// parseDirectives); a non-block directive requires exactly one
// terminator (';' or line break), except when directly followed by '}'
// or EOF, which close the enclosing scope on their own.
func (p *parser) parseDirective(depth int) (Directive, error) {
	args, err := p.parseArguments()
	if err != nil {
		return Directive{}, err
	}

	directive := Directive{Arguments: args, Span: args[0].Span}

	hadNewline := false
	for p.cur.Kind == tokNewline {
		hadNewline = true
		if err := p.advance(); err != nil {
			return Directive{}, err
		}
	}

	if p.cur.Kind == tokBlockOpen {
		children, err := p.parseBlock(depth)
		if err != nil {
			return Directive{}, err
		}
		directive.Children = children
		return directive, nil
	}

	if hadNewline {
		return directive, nil
	}

	if p.cur.Kind == tokSemicolon {
		if err := p.advance(); err != nil {
			return Directive{}, err
		}
		return directive, nil
	}

	return directive, nil
}

// parseArguments greedily consumes consecutive Argument tokens. The
// lexer never emits an Argument token for an elided line continuation
// that produced no content, so this loop sees only real arguments.
func (p *parser) parseArguments() ([]Argument, error) {
	var args []Argument
	for p.cur.Kind == tokArgument {
		args = append(args, Argument{Text: p.cur.Text, Kind: p.cur.ArgKind, Span: p.cur.Span})
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// parseBlock implements block := '{' directive-list '}', consuming both
// braces and enforcing Options.MaxDepth.
func (p *parser) parseBlock(depth int) ([]Directive, error) {
	if p.opts.MaxDepth > 0 && depth+1 > p.opts.MaxDepth {
		return nil, &Error{Kind: MaxDepthExceeded, Span: p.cur.Span}
	}

	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}

	children, err := p.parseDirectives(true, depth+1)
	if err != nil {
		return nil, err
	}

	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}

	return children, nil
}
