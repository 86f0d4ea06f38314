// internal/parser/parser.go
package parser

import (
	"brainfuck/internal/errors"
	"brainfuck/internal/ir"
	"brainfuck/internal/lexer"
)

// Parser turns a token stream into the IR tree described by spec.md §3,
// lowering each command byte per the rules in §4.1. It performs no
// folding or peepholing of its own — that's the optimizer's job — so its
// output is a faithful, possibly verbose tree.
type Parser struct {
	tokens  []lexer.Token
	current int
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse scans source and parses it in one step.
func Parse(source []byte) ([]ir.Node, error) {
	tokens := lexer.NewScanner(string(source)).ScanTokens()
	return NewParser(tokens).Parse()
}

// Parse consumes the whole token stream and returns the root sequence, or
// a *errors.ParseError if brackets don't balance.
func (p *Parser) Parse() ([]ir.Node, error) {
	nodes, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		// A `]` with no matching `[` stopped the top-level sequence early.
		return nil, errors.NewUnbalancedBrackets(p.peek().Offset, "unmatched ']'")
	}
	return nodes, nil
}

// sequence parses a run of commands, stopping (without consuming) at a
// `]` or at end of input. The caller distinguishes the two: a `]` at the
// outermost call is an error, a `]` closing a nested loop() call is
// expected.
func (p *Parser) sequence() ([]ir.Node, error) {
	var nodes []ir.Node
	for !p.isAtEnd() && p.peek().Type != lexer.TokenLoopEnd {
		node, err := p.command()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (p *Parser) command() (ir.Node, error) {
	tok := p.advance()
	switch tok.Type {
	case lexer.TokenIncr:
		return ir.NewValAdd(0, 1), nil
	case lexer.TokenDecr:
		return ir.NewValAdd(0, -1), nil
	case lexer.TokenRight:
		return ir.NewPtrAdd(1), nil
	case lexer.TokenLeft:
		return ir.NewPtrAdd(-1), nil
	case lexer.TokenOutput:
		return ir.NewOutput(0), nil
	case lexer.TokenInput:
		return ir.NewInput(0), nil
	case lexer.TokenLoopStart:
		return p.loop(tok)
	default:
		// Unreachable: the lexer never emits any other TokenType.
		return ir.Node{}, errors.NewUnbalancedBrackets(tok.Offset, "unexpected token")
	}
}

func (p *Parser) loop(open lexer.Token) (ir.Node, error) {
	body, err := p.sequence()
	if err != nil {
		return ir.Node{}, err
	}
	if p.isAtEnd() {
		return ir.Node{}, errors.NewUnbalancedBrackets(open.Offset, "unmatched '['")
	}
	p.advance() // consume the matching ']'
	return ir.NewLoop(body), nil
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}
