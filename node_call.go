package template

func init() { registerAction("call", parseCall) }

// CallNode evaluates a callable expression (ordinarily a variable chain
// ending in a call step) and discards its result (§3, §4.6 "CALL:
// evaluate callable expression and args; invoke; discard return").
type CallNode struct {
	baseNode
	expr Expr
}

func (n *CallNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	_, err := n.expr.Eval(rc)
	return err
}

func parseCall(p *Parser, line int) (Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &CallNode{baseNode: baseNode{line}, expr: expr}, nil
}
