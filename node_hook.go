package template

func init() {
	registerAction("hook", parseHook)
	registerAction("rhook", parseRHook)
}

// HookNode invokes a host-registered callable by name, or no-ops if the
// name isn't registered (§3, §4.6 "HOOK / RHOOK: look up hook by name; if
// absent, no-op; else invoke with (env, template, line, renderer-sink,
// scope, params-dict)"). RHOOK is the same lookup with its reverse flag
// set; the capture-to-expression-result path it implies is reserved and
// unused by this renderer, per §4.6's own "(unused; reserved)".
type HookNode struct {
	baseNode
	name    Expr
	params  []assignClause
	reverse bool
}

func (n *HookNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	nameVal, err := n.name.Eval(rc)
	if err != nil {
		return err
	}
	fn, ok := rc.env.hooks[nameVal.String()]
	if !ok {
		return nil
	}
	params := make(map[string]*Value, len(n.params))
	for _, c := range n.params {
		v, err := c.rhs.Eval(rc)
		if err != nil {
			return err
		}
		params[c.name] = v
	}
	return fn(rc, params)
}

func parseHookAction(p *Parser, line int, reverse bool) (Node, error) {
	name, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var params []assignClause
	if p.atSymbol(";") {
		p.advance()
		t := p.current()
		if t.Typ != TokenIdentifier || t.Val != "with" {
			return nil, p.errorf("expected 'with' after ';' in hook")
		}
		p.advance()
		params, err = p.parseAssignClausesForced(Local, true, false)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &HookNode{baseNode: baseNode{line}, name: name, params: params, reverse: reverse}, nil
}

func parseHook(p *Parser, line int) (Node, error)  { return parseHookAction(p, line, false) }
func parseRHook(p *Parser, line int) (Node, error) { return parseHookAction(p, line, true) }
