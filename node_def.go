package template

func init() { registerAction("def", parseDef) }

// DefNode constructs a template-defined function value capturing the
// current scope by snapshot (§3, §4.6 "DEF: construct a callable Value
// capturing current scope reference, parameter names, and body").
type DefNode struct {
	baseNode
	name   string
	comp   Compartment
	params []string
	body   NodeList
}

func (n *DefNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	closure := rc.scope.snapshotLocal()
	for k, v := range rc.scope.snapshotPrivate() {
		closure[k] = v
	}
	fn := &templateFunc{name: n.name, params: n.params, body: n.body, closure: closure, line: n.line}
	rc.scope.Set(n.name, n.comp, CallableValue(fn))
	return nil
}

func parseDef(p *Parser, line int) (Node, error) {
	raw, err := p.parseAssignTargetName()
	if err != nil {
		return nil, err
	}
	name, comp := resolveTarget(raw, Local, false)

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []string
	if !p.atSymbol(")") {
		for {
			pname, err := p.parseAssignTargetName()
			if err != nil {
				return nil, err
			}
			params = append(params, pname)
			if !p.atSymbol(",") {
				break
			}
			p.advance()
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}

	body, err := p.parseNodeList(map[string]bool{"enddef": true})
	if err != nil {
		return nil, err
	}
	if n, _, err := p.peekTagName(); err != nil || n != "enddef" {
		if err != nil {
			return nil, err
		}
		return nil, p.errorf("expected 'enddef', got %q", n)
	}
	p.advance()
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &DefNode{baseNode: baseNode{line}, name: name, comp: comp, params: params, body: body}, nil
}
