package template

func init() { registerAction("error", parseError) }

// ErrorNode raises a UserError carrying its expression's string value
// (§3, §4.6 "ERROR: evaluate expression; raise UserError carrying its
// string value").
type ErrorNode struct {
	baseNode
	expr Expr
}

func (n *ErrorNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	v, err := n.expr.Eval(rc)
	if err != nil {
		return err
	}
	return rc.errorf(KindUser, n.line, "error", "%s", v.String())
}

func parseError(p *Parser, line int) (Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &ErrorNode{baseNode: baseNode{line}, expr: expr}, nil
}
