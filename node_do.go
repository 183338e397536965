package template

func init() { registerAction("do", parseDo) }

// DoNode evaluates a list of expressions purely for side effect and
// discards the results (§3, §4.6 "DO: evaluate each expression,
// discard").
type DoNode struct {
	baseNode
	exprs []Expr
}

func (n *DoNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	for _, e := range n.exprs {
		if _, err := e.Eval(rc); err != nil {
			return err
		}
	}
	return nil
}

func parseDo(p *Parser, line int) (Node, error) {
	var exprs []Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.atSymbol(",") {
			break
		}
		p.advance()
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &DoNode{baseNode: baseNode{line}, exprs: exprs}, nil
}
