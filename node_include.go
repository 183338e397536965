package template

func init() { registerAction("include", parseInclude) }

// IncludeNode composes another template's rendering into this one (§3,
// §4.6 "INCLUDE"). The include frame isolates PRIVATE and inherits a
// shallow copy of LOCAL; GLOBAL/RETURN/APP are the shared singletons.
type IncludeNode struct {
	baseNode
	path        Expr
	withClauses []assignClause
	returnVar   string
	returnComp  Compartment
	hasReturn   bool
}

func (n *IncludeNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	pathVal, err := n.path.Eval(rc)
	if err != nil {
		return err
	}
	doc, canonical, err := rc.env.resolveAndParse(rc.template, pathVal.String())
	if err != nil {
		return err
	}

	vals, err := evalClauses(rc, n.withClauses)
	if err != nil {
		return err
	}

	caller := rc.template
	rc.scope.PushInclude()
	commitClauses(rc, n.withClauses, vals)
	rc.template = canonical

	err = doc.Render(rc)

	rc.template = caller
	if err != nil {
		if te, ok := asTemplateError(err); ok {
			te.withFrame(caller, n.line)
		}
		rc.scope.PopInclude()
		return err
	}

	var ret *Value
	if n.hasReturn {
		ret = Dict(rc.scope.ReturnDict())
		rc.scope.Clear(Return)
	}
	if err := rc.scope.PopInclude(); err != nil {
		return err
	}
	if n.hasReturn {
		rc.scope.Set(n.returnVar, n.returnComp, ret)
	}
	return nil
}

func parseInclude(p *Parser, line int) (Node, error) {
	node := &IncludeNode{baseNode: baseNode{line}}
	path, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	node.path = path

	for p.atSymbol(";") {
		p.advance()
		t := p.current()
		if t.Typ != TokenIdentifier {
			return nil, p.errorf("expected clause keyword after ';' in include")
		}
		p.advance()
		switch t.Val {
		case "return":
			raw, err := p.parseAssignTargetName()
			if err != nil {
				return nil, err
			}
			node.returnVar, node.returnComp = resolveTarget(raw, Local, false)
			node.hasReturn = true
		case "with":
			clauses, err := p.parseAssignClausesForced(Local, true, false)
			if err != nil {
				return nil, err
			}
			node.withClauses = clauses
		default:
			return nil, p.errorf("unknown include clause %q", t.Val)
		}
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return node, nil
}
