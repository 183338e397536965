package template

import "strings"

func init() { registerAction("var", parseVar) }

// VarNode renders its body into a string and binds that string to a
// variable (§3, §4.6 "VAR: render body into a string, bind that string to
// the named variable").
type VarNode struct {
	baseNode
	target assignTarget
	body   NodeList
}

func (n *VarNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	var buf strings.Builder
	saved := rc.sink
	rc.sink = &buf
	err := n.body.Render(rc)
	rc.sink = saved
	if err != nil {
		return err
	}
	rc.scope.Set(n.target.name, n.target.comp, Str(buf.String()))
	return nil
}

func parseVar(p *Parser, line int) (Node, error) {
	raw, err := p.parseAssignTargetName()
	if err != nil {
		return nil, err
	}
	name, comp := resolveTarget(raw, Local, false)
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	body, err := p.parseNodeList(map[string]bool{"endvar": true})
	if err != nil {
		return nil, err
	}
	if n, _, err := p.peekTagName(); err != nil || n != "endvar" {
		if err != nil {
			return nil, err
		}
		return nil, p.errorf("expected 'endvar', got %q", n)
	}
	p.advance()
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &VarNode{baseNode: baseNode{line}, target: assignTarget{name: name, comp: comp}, body: body}, nil
}
