package template

import "strconv"

// Parser walks the flat token stream produced by Lex and builds the node
// tree described in §3/§4.4, tracking the ambient whitespace mode as it
// goes so every TEXT node's final contents are baked in once, at parse
// time (§4.2, testable property 6).
//
// Grounded on the teacher's Parser (parser.go): a slice of tokens plus an
// index, with Current/Consume/Match-style cursor primitives.
type Parser struct {
	name   string
	tokens []Token
	pos    int

	autostripBase AutostripMode
	stripStack    []AutostripMode
}

// Parse lexes and parses a named template's source into its root
// Document (§4.4 invariant (a): either a valid tree, or a parse error
// carrying a source line).
func Parse(name, src string) (*Document, error) {
	toks, err := Lex(name, src)
	if err != nil {
		return nil, err
	}
	p := &Parser{name: name, tokens: toks}
	nodes, err := p.parseNodeList(nil)
	if err != nil {
		return nil, err
	}
	if p.current().Typ != TokenEOF {
		return nil, p.errorf("unexpected trailing token %v", p.current().Typ)
	}
	return &Document{Nodes: nodes}, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Typ: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...any) *Error {
	return newErrorf(KindParse, p.name, p.current().Line, 1, "parser", format, args...)
}

func (p *Parser) effectiveMode() AutostripMode {
	if len(p.stripStack) > 0 {
		return p.stripStack[len(p.stripStack)-1]
	}
	return p.autostripBase
}

// parseNodeList consumes nodes until EOF or until stopKeywords names the
// closing/intermediate tag it should leave unconsumed (used by segmented
// actions to find their own closer, per §4.4 "opens and closes ... must
// nest").
func (p *Parser) parseNodeList(stopKeywords map[string]bool) (NodeList, error) {
	var out NodeList
	for {
		t := p.current()
		switch t.Typ {
		case TokenEOF:
			if stopKeywords != nil {
				return nil, p.errorf("unexpected end of template, expected one of a closing tag")
			}
			return out, nil
		case TokenText:
			p.advance()
			left, right := p.borderFlags()
			text := ApplyWhitespace(t.Val, left, right, p.effectiveMode())
			if text != "" {
				out = append(out, &TextNode{baseNode{t.Line}, text})
			}
		case TokenCommentOpen:
			p.advance()
			if p.current().Typ != TokenCommentClose {
				return nil, p.errorf("internal: malformed comment tokens")
			}
			p.advance()
		case TokenEmitOpen:
			p.advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.current().Typ != TokenEmitClose {
				return nil, p.errorf("expected '}}'")
			}
			p.advance()
			out = append(out, &EmitNode{baseNode{t.Line}, expr})
		case TokenTagOpen:
			name, _, err := p.peekTagName()
			if err != nil {
				return nil, err
			}
			if stopKeywords[name] {
				return out, nil
			}
			node, err := p.parseAction(name)
			if err != nil {
				return nil, err
			}
			if node != nil {
				out = append(out, node)
			}
		default:
			return nil, p.errorf("unexpected token %v", t.Typ)
		}
	}
}

// borderFlags looks at the tokens immediately surrounding the current
// (just-consumed) TEXT token to find its left/right border flags (§4.1):
// a tag's left-border-flag (carried on its opener) controls the text
// *preceding* it, and its right-border-flag (carried on its closer)
// controls the text *following* it. Both neighbors are single tokens
// directly adjacent to this TEXT token in the flat stream, so no
// scanning is needed.
func (p *Parser) borderFlags() (left, right BorderFlag) {
	if p.pos >= 2 {
		prev := p.tokens[p.pos-2]
		switch prev.Typ {
		case TokenTagClose, TokenEmitClose, TokenCommentClose:
			left = prev.RightFlag
		}
	}
	next := p.current()
	switch next.Typ {
	case TokenTagOpen, TokenEmitOpen, TokenCommentOpen:
		right = next.LeftFlag
	}
	return
}

// peekTagName looks at the identifier immediately following a TokenTagOpen
// without consuming anything, and reports whether the tag's body is empty
// (a "{% %}"/"{%- -%}" tag with no action name at all).
func (p *Parser) peekTagName() (name string, bodyEmpty bool, err error) {
	if p.tokens[p.pos+1].Typ == TokenTagClose {
		return "", true, nil
	}
	nameTok := p.tokens[p.pos+1]
	if nameTok.Typ != TokenIdentifier && nameTok.Typ != TokenKeyword {
		return "", false, p.errorf("expected action name after '{%%'")
	}
	return nameTok.Val, false, nil
}

// parseAction consumes one "{% name ... %}" tag (already known to start
// at p.pos) and dispatches to the node kind's own parser, or treats an
// empty body as a no-op (supports whitespace-only tags like `{%- -%}`).
func (p *Parser) parseAction(name string) (Node, error) {
	openTok := p.advance() // TokenTagOpen
	if p.current().Typ == TokenTagClose {
		p.advance()
		return &NoopNode{baseNode{openTok.Line}}, nil
	}
	p.advance() // action name identifier/keyword

	parseFn, ok := actionParsers[name]
	if !ok {
		return nil, p.errorf("unknown action %q", name)
	}
	return parseFn(p, openTok.Line)
}

// expectTagClose requires and consumes the '%}' ending the current tag.
func (p *Parser) expectTagClose() error {
	if p.current().Typ != TokenTagClose {
		return p.errorf("expected '%%}'")
	}
	p.advance()
	return nil
}

func (p *Parser) atSymbol(s string) bool {
	t := p.current()
	return t.Typ == TokenSymbol && t.Val == s
}

func (p *Parser) atKeyword(s string) bool {
	t := p.current()
	return t.Typ == TokenKeyword && t.Val == s
}

func (p *Parser) expectSymbol(s string) error {
	if !p.atSymbol(s) {
		return p.errorf("expected %q", s)
	}
	p.advance()
	return nil
}

// ---- expression grammar (§4.3): or > and > not > comparison > +- > */% > unary > primary

func (p *Parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("or") {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &logicalExpr{op: "or", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("and") {
		p.advance()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &logicalExpr{op: "and", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.atKeyword("not") {
		line := p.current().Line
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op: "not", operand: operand, line: line}, nil
	}
	return p.parseComparison()
}

var compareOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *Parser) parseComparison() (Expr, error) {
	lhs, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	t := p.current()
	if t.Typ == TokenSymbol && compareOps[t.Val] {
		p.advance()
		rhs, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		return &compareExpr{op: t.Val, lhs: lhs, rhs: rhs, line: t.Line}, nil
	}
	return lhs, nil
}

func (p *Parser) parseAddSub() (Expr, error) {
	lhs, err := p.parseMulDivMod()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("+") || p.atSymbol("-") {
		t := p.advance()
		rhs, err := p.parseMulDivMod()
		if err != nil {
			return nil, err
		}
		lhs = &arithExpr{op: t.Val, lhs: lhs, rhs: rhs, line: t.Line}
	}
	return lhs, nil
}

func (p *Parser) parseMulDivMod() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("*") || p.atSymbol("/") || p.atSymbol("%") {
		t := p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &arithExpr{op: t.Val, lhs: lhs, rhs: rhs, line: t.Line}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.atSymbol("-") {
		line := p.current().Line
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op: "-", operand: operand, line: line}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	t := p.current()
	switch {
	case t.Typ == TokenString:
		p.advance()
		return &litExpr{val: Str(t.Val)}, nil
	case t.Typ == TokenInt:
		p.advance()
		n, _ := strconv.ParseInt(t.Val, 10, 64)
		return &litExpr{val: Int(n)}, nil
	case t.Typ == TokenFloat:
		p.advance()
		f, _ := strconv.ParseFloat(t.Val, 64)
		return &litExpr{val: Float(f)}, nil
	case t.Typ == TokenKeyword && t.Val == "true":
		p.advance()
		return &litExpr{val: Bool(true)}, nil
	case t.Typ == TokenKeyword && t.Val == "false":
		p.advance()
		return &litExpr{val: Bool(false)}, nil
	case t.Typ == TokenSymbol && t.Val == "(":
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return p.parseChainSteps(inner, t.Line)
	case t.Typ == TokenSymbol && t.Val == "[":
		lit, err := p.parseListOrDict()
		if err != nil {
			return nil, err
		}
		return p.parseChainSteps(lit, t.Line)
	case t.Typ == TokenIdentifier:
		p.advance()
		head := Expr(newVarExpr(t.Val, t.Line))
		return p.parseChainSteps(head, t.Line)
	default:
		return nil, p.errorf("unexpected token %v in expression", t.Typ)
	}
}

// parseListOrDict disambiguates `[expr, ...]` from `[k:v, ...]` (and the
// empty dict `[:]`) by looking one expression ahead for a ':' (§4.3).
func (p *Parser) parseListOrDict() (Expr, error) {
	openLine := p.current().Line
	p.advance() // '['
	if p.atSymbol(":") {
		p.advance()
		if err := p.expectSymbol("]"); err != nil {
			return nil, err
		}
		return &dictExpr{}, nil
	}
	if p.atSymbol("]") {
		p.advance()
		return &listExpr{}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.atSymbol(":") {
		p.advance()
		firstVal, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		keys := []Expr{first}
		vals := []Expr{firstVal}
		for p.atSymbol(",") {
			p.advance()
			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(":"); err != nil {
				return nil, err
			}
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
		}
		if err := p.expectSymbol("]"); err != nil {
			return nil, err
		}
		return &dictExpr{keys: keys, vals: vals}, nil
	}
	items := []Expr{first}
	for p.atSymbol(",") {
		p.advance()
		it, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	_ = openLine
	return &listExpr{items: items}, nil
}

// parseChainSteps consumes trailing .name / [expr] / (args) suffixes.
func (p *Parser) parseChainSteps(head Expr, line int) (Expr, error) {
	var steps []chainStep
	for {
		switch {
		case p.atSymbol("."):
			p.advance()
			nameTok := p.current()
			if nameTok.Typ != TokenIdentifier {
				return nil, p.errorf("expected attribute name after '.'")
			}
			p.advance()
			steps = append(steps, attrStep{name: nameTok.Val})
		case p.atSymbol("["):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol("]"); err != nil {
				return nil, err
			}
			steps = append(steps, itemStep{key: idx})
		case p.atSymbol("("):
			p.advance()
			var args []Expr
			if !p.atSymbol(")") {
				for {
					a, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.atSymbol(",") {
						break
					}
					p.advance()
				}
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			steps = append(steps, callStep{args: args})
		default:
			if len(steps) == 0 {
				return head, nil
			}
			return &chainExpr{head: head, steps: steps, line: line}, nil
		}
	}
}

// ---- shared clause helpers used by several action parsers

// parseAssignTargetName reads one bare or compartment-prefixed identifier
// naming an assignment target.
func (p *Parser) parseAssignTargetName() (string, error) {
	t := p.current()
	if t.Typ != TokenIdentifier {
		return "", p.errorf("expected variable name")
	}
	p.advance()
	return t.Val, nil
}

func resolveTarget(raw string, forced Compartment, useForced bool) (name string, comp Compartment) {
	if c, n, ok := splitCompartmentPrefix(raw); ok {
		return n, c
	}
	if useForced {
		return raw, forced
	}
	return raw, DefaultCompartment(raw)
}

// parseAssignClauses parses a comma-separated `name=expr` list.
func (p *Parser) parseAssignClauses(forced Compartment, useForced bool) ([]assignClause, error) {
	var out []assignClause
	for {
		raw, err := p.parseAssignTargetName()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		name, comp := resolveTarget(raw, forced, useForced)
		out = append(out, assignClause{name: name, comp: comp, rhs: rhs})
		if !p.atSymbol(",") {
			break
		}
		p.advance()
	}
	return out, nil
}

// parseAssignClausesForced is parseAssignClauses generalized for the
// TEMPLATE action, whose targets resolve to LOCAL-at-template-root unless
// an explicit compartment prefix overrides them.
func (p *Parser) parseAssignClausesForced(forced Compartment, useForced, isTemplate bool) ([]assignClause, error) {
	var out []assignClause
	for {
		raw, err := p.parseAssignTargetName()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if c, n, ok := splitCompartmentPrefix(raw); ok {
			out = append(out, assignClause{name: n, comp: c, rhs: rhs})
		} else if isTemplate {
			out = append(out, assignClause{name: raw, forceTemplate: true, rhs: rhs})
		} else {
			name, comp := resolveTarget(raw, forced, useForced)
			out = append(out, assignClause{name: name, comp: comp, rhs: rhs})
		}
		if !p.atSymbol(",") {
			break
		}
		p.advance()
	}
	return out, nil
}

// actionParsers is populated by each node_*.go file's init() calling
// registerAction (grounded on the teacher's RegisterTag/tags map in tags.go).
var actionParsers = map[string]func(p *Parser, line int) (Node, error){}

func registerAction(name string, fn func(p *Parser, line int) (Node, error)) {
	actionParsers[name] = fn
}
