package template

func init() {
	registerAction("unset", parseUnset)
	registerAction("clear", parseClear)
}

// UnsetNode removes a list of named variables, each resolved to its own
// compartment (§3 "UNSET (list of var targets)").
type UnsetNode struct {
	baseNode
	targets []assignTarget
}

type assignTarget struct {
	name string
	comp Compartment
}

func (n *UnsetNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	for _, t := range n.targets {
		rc.scope.Unset(t.name, t.comp)
	}
	return nil
}

func parseUnset(p *Parser, line int) (Node, error) {
	var targets []assignTarget
	for {
		raw, err := p.parseAssignTargetName()
		if err != nil {
			return nil, err
		}
		name, comp := resolveTarget(raw, Local, false)
		targets = append(targets, assignTarget{name: name, comp: comp})
		if !p.atSymbol(",") {
			break
		}
		p.advance()
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &UnsetNode{baseNode: baseNode{line}, targets: targets}, nil
}

// ClearNode empties one compartment entirely (§3 "CLEAR (compartment
// tag)").
type ClearNode struct {
	baseNode
	comp Compartment
}

func (n *ClearNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	rc.scope.Clear(n.comp)
	return nil
}

func parseClear(p *Parser, line int) (Node, error) {
	t := p.current()
	c, ok := compartmentNames[t.Val]
	if t.Typ != TokenIdentifier || !ok {
		return nil, p.errorf("expected compartment name after 'clear'")
	}
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &ClearNode{baseNode: baseNode{line}, comp: c}, nil
}
