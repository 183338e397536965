package template

func init() { registerAction("scope", parseScope) }

// ScopeNode pushes a block frame around its body (§3 "scope pushes a new
// frame whose LOCAL and PRIVATE inherit a shallow copy from the caller").
type ScopeNode struct {
	baseNode
	body NodeList
}

func (n *ScopeNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	rc.scope.PushBlock()
	err := n.body.Render(rc)
	if popErr := rc.scope.PopBlock(); err == nil {
		err = popErr
	}
	return err
}

func parseScope(p *Parser, line int) (Node, error) {
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	body, err := p.parseNodeList(map[string]bool{"endscope": true})
	if err != nil {
		return nil, err
	}
	name, _, err := p.peekTagName()
	if err != nil {
		return nil, err
	}
	if name != "endscope" {
		return nil, p.errorf("expected 'endscope', got %q", name)
	}
	p.advance()
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &ScopeNode{baseNode: baseNode{line}, body: body}, nil
}
