package golfscript

// Parser consumes the tokens of one Run and applies them to the interpreter.
// Block bodies are captured as raw source and only evaluated later.
type Parser struct {
	in     *Interp
	src    string
	tokens *Tokenizer

	blockDepth int
	blockStart int
	blockOpen  Token
}

func NewParser(in *Interp, src string) *Parser {
	p := &Parser{in: in, src: src}
	p.tokens = NewTokenizer(src, in.env, p.report)
	return p
}

// report drops errors inside a block body; they surface when the block runs.
func (p *Parser) report(e *LexError) {
	if p.blockDepth > 0 {
		return
	}
	p.in.reportError(p.src, e)
}

func (p *Parser) Parse() error {
	for tok, ok := p.tokens.Next(); ok; tok, ok = p.tokens.Next() {
		if err := p.parseToken(tok); err != nil {
			return err
		}
	}
	if p.blockDepth > 0 {
		p.in.reportError(p.src, &LexError{Line: p.blockOpen.Line, Column: p.blockOpen.Column, Message: "unterminated block"})
	}
	return nil
}

func (p *Parser) parseToken(tok Token) error {
	if p.blockDepth > 0 {
		switch tok.Kind {
		case TokenBlockBeginning:
			p.blockDepth++
		case TokenBlockEnding:
			p.blockDepth--
			if p.blockDepth == 0 {
				p.in.stack.Push(NewBlock(p.src[p.blockStart:tok.Offset]))
			}
		}
		return nil
	}

	stack := p.in.stack
	switch tok.Kind {
	case TokenBlockBeginning:
		p.blockDepth = 1
		p.blockStart = tok.Offset + len(tok.Text)
		p.blockOpen = tok
	case TokenBlockEnding:
		p.report(&LexError{Line: tok.Line, Column: tok.Column, Message: "unexpected `}`"})
	case TokenArrayBeginning:
		stack.PushFrame()
	case TokenArrayEnding:
		stack.CollectFrame()
	case TokenIdentifierDeclaration:
		// Binding happens before the next token is scanned so the name is
		// already visible to it. The value stays on the stack.
		if a, ok := stack.Peek(0); ok {
			p.in.env.SetVar(tok.Value, a)
		}
	case TokenString, TokenRawString:
		stack.Push(NewString(tok.Value))
	case TokenNumber:
		stack.Push(NewInteger(tok.Number))
	case TokenIdentifier:
		a, ok := p.in.env.GetVar(tok.Value)
		if !ok {
			return nil
		}
		if b, ok := a.(*Block); ok {
			return p.in.run(b.Source())
		}
		stack.Push(a)
	case TokenOperator:
		if op, ok := findOp(tok.Text); ok {
			return op.Run(p.in)
		}
	}
	return nil
}
