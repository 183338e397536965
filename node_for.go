package template

func init() { registerAction("for", parseFor) }

// ForNode is the FOR-COUNTER node: init/test/incr/body/else (§3, §4.6
// "render init assignments; loop while test expression is truthy; render
// body; render incr assignments. Empty first-iteration ... renders the
// else body").
type ForNode struct {
	baseNode
	init     []assignClause
	test     Expr
	incr     []assignClause
	body     NodeList
	elseBody NodeList
}

func (n *ForNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	if err := bindClauses(rc, n.init); err != nil {
		return err
	}
	ran := false
	for {
		v, err := n.test.Eval(rc)
		if err != nil {
			return err
		}
		if !v.IsTrue() {
			break
		}
		ran = true
		if err := n.body.Render(rc); err != nil {
			return err
		}
		if err := bindClauses(rc, n.incr); err != nil {
			return err
		}
	}
	if !ran && n.elseBody != nil {
		return n.elseBody.Render(rc)
	}
	return nil
}

func parseFor(p *Parser, line int) (Node, error) {
	init, err := p.parseAssignClauses(Local, false)
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	incr, err := p.parseAssignClauses(Local, false)
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	body, err := p.parseNodeList(map[string]bool{"else": true, "endfor": true})
	if err != nil {
		return nil, err
	}
	node := &ForNode{baseNode: baseNode{line}, init: init, test: test, incr: incr, body: body}

	name, _, err := p.peekTagName()
	if err != nil {
		return nil, err
	}
	p.advance()
	p.advance()
	switch name {
	case "else":
		if err := p.expectTagClose(); err != nil {
			return nil, err
		}
		elseBody, err := p.parseNodeList(map[string]bool{"endfor": true})
		if err != nil {
			return nil, err
		}
		node.elseBody = elseBody
		if _, _, err := p.peekTagName(); err != nil {
			return nil, err
		}
		p.advance()
		p.advance()
		if err := p.expectTagClose(); err != nil {
			return nil, err
		}
	case "endfor":
		if err := p.expectTagClose(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("unexpected %q inside for", name)
	}
	return node, nil
}
