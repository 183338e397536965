package template

func init() { registerAction("if", parseIf) }

// IfNode is a chain of (condition, body) branches and an optional else
// body (§3, §4.6 "IF: evaluate each branch's condition until one is
// truthy, render its body, done").
type IfNode struct {
	baseNode
	conds    []Expr
	bodies   []NodeList
	elseBody NodeList
}

func (n *IfNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	for i, cond := range n.conds {
		v, err := cond.Eval(rc)
		if err != nil {
			return err
		}
		if v.IsTrue() {
			return n.bodies[i].Render(rc)
		}
	}
	if n.elseBody != nil {
		return n.elseBody.Render(rc)
	}
	return nil
}

var ifStops = map[string]bool{"elif": true, "else": true, "endif": true}

func parseIf(p *Parser, line int) (Node, error) {
	node := &IfNode{baseNode: baseNode{line}}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	body, err := p.parseNodeList(ifStops)
	if err != nil {
		return nil, err
	}
	node.conds = append(node.conds, cond)
	node.bodies = append(node.bodies, body)

	for {
		name, _, err := p.peekTagName()
		if err != nil {
			return nil, err
		}
		p.advance() // TokenTagOpen
		p.advance() // keyword

		switch name {
		case "elif":
			cond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			body, err := p.parseNodeList(ifStops)
			if err != nil {
				return nil, err
			}
			node.conds = append(node.conds, cond)
			node.bodies = append(node.bodies, body)
		case "else":
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			elseBody, err := p.parseNodeList(map[string]bool{"endif": true})
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
			return node, nil
		case "endif":
			if err := p.expectTagClose(); err != nil {
				return nil, err
			}
			return node, nil
		default:
			return nil, p.errorf("unexpected %q inside if", name)
		}
	}
}
