package template

// EmitNode is a "{{ expr }}" output expression (§4.6 "EMIT: evaluate
// expression; coerce to string; emit").
type EmitNode struct {
	baseNode
	expr Expr
}

func (n *EmitNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	v, err := n.expr.Eval(rc)
	if err != nil {
		return err
	}
	return rc.emit(v.String())
}
