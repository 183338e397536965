package template

func init() { registerAction("switch", parseSwitch) }

type switchCase struct {
	op   string
	rhs  Expr
	body NodeList
}

// SwitchNode evaluates its subject once, then the first matching case's
// body, or the default body (§3, §4.6 "evaluate subject once; for each
// case, evaluate rhs and compare using the case's relational op; first
// match renders its body; otherwise default if present").
type SwitchNode struct {
	baseNode
	subject     Expr
	cases       []switchCase
	defaultBody NodeList
	hasDefault  bool
}

func (n *SwitchNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	subj, err := n.subject.Eval(rc)
	if err != nil {
		return err
	}
	for _, c := range n.cases {
		rhs, err := c.rhs.Eval(rc)
		if err != nil {
			return err
		}
		match, err := compareValues(rc, n.line, c.op, subj, rhs)
		if err != nil {
			return err
		}
		if match {
			return c.body.Render(rc)
		}
	}
	if n.hasDefault {
		return n.defaultBody.Render(rc)
	}
	return nil
}

func compareValues(rc *RenderContext, line int, op string, l, r *Value) (bool, error) {
	switch op {
	case "==":
		return l.EqualValueTo(r), nil
	case "!=":
		return !l.EqualValueTo(r), nil
	}
	if l.IsNumber() && r.IsNumber() {
		return orderCompare(op, l.Float() < r.Float(), l.Float() == r.Float(), l.Float() > r.Float()), nil
	}
	if l.IsString() && r.IsString() {
		return orderCompare(op, l.s < r.s, l.s == r.s, l.s > r.s), nil
	}
	return false, rc.errorf(KindType, line, "switch", "cannot compare %s %s %s", l.Kind(), op, r.Kind())
}

var switchStops = map[string]bool{"case": true, "default": true, "endswitch": true}

func parseSwitch(p *Parser, line int) (Node, error) {
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	node := &SwitchNode{baseNode: baseNode{line}, subject: subject}

	if _, err := p.parseNodeList(switchStops); err != nil {
		return nil, err
	}

	for {
		name, _, err := p.peekTagName()
		if err != nil {
			return nil, err
		}
		p.advance()
		p.advance()
		switch name {
		case "case":
			t := p.current()
			if t.Typ != TokenSymbol || !compareOps[t.Val] {
				return nil, p.errorf("expected comparison operator after 'case'")
			}
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			body, err := p.parseNodeList(switchStops)
			if err != nil {
				return nil, err
			}
			node.cases = append(node.cases, switchCase{op: t.Val, rhs: rhs, body: body})
		case "default":
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			body, err := p.parseNodeList(map[string]bool{"endswitch": true})
			if err != nil {
				return nil, err
			}
			node.defaultBody = body
			node.hasDefault = true
			if _, _, err := p.peekTagName(); err != nil {
				return nil, err
			}
			p.advance()
			p.advance()
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			return node, nil
		case "endswitch":
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			return node, nil
		default:
			return nil, p.errorf("unexpected %q inside switch", name)
		}
	}
}
