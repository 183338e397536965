package template

func init() {
	registerAction("set", parseSet)
	registerAction("global", parseGlobal)
	registerAction("private", parsePrivate)
	registerAction("template", parseTemplate)
}

// assignClause is one "name=expr" pair of a multi-assignment action, with
// its target's compartment already resolved (§3 "SET/GLOBAL/TEMPLATE/
// PRIVATE").
type assignClause struct {
	name          string
	comp          Compartment
	rhs           Expr
	forceTemplate bool
}

// evalClauses evaluates every clause's RHS in source order without
// binding anything yet, so a caller can implement all-or-nothing commit.
func evalClauses(rc *RenderContext, clauses []assignClause) ([]*Value, error) {
	vals := make([]*Value, len(clauses))
	for i, c := range clauses {
		v, err := c.rhs.Eval(rc)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func commitClauses(rc *RenderContext, clauses []assignClause, vals []*Value) {
	for i, c := range clauses {
		if c.forceTemplate {
			rc.scope.SetTemplate(c.name, vals[i])
		} else {
			rc.scope.Set(c.name, c.comp, vals[i])
		}
	}
}

// bindClauses evaluates then commits in one step; used by contexts (FOR
// init/incr, RETURN) that have no else-recovery.
func bindClauses(rc *RenderContext, clauses []assignClause) error {
	vals, err := evalClauses(rc, clauses)
	if err != nil {
		return err
	}
	commitClauses(rc, clauses, vals)
	return nil
}

// AssignNode implements SET, GLOBAL, PRIVATE and TEMPLATE: one
// multi-assignment target+expression list with optional else-body
// recovery (§4.6 "all-or-nothing: if any RHS raises, no bindings are
// committed and the else-body ... is rendered instead").
type AssignNode struct {
	baseNode
	clauses     []assignClause
	elseClauses []assignClause
}

func (n *AssignNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	vals, err := evalClauses(rc, n.clauses)
	if err == nil {
		commitClauses(rc, n.clauses, vals)
		return nil
	}
	if _, ok := asTemplateError(err); !ok || n.elseClauses == nil {
		return err
	}
	elseVals, elseErr := evalClauses(rc, n.elseClauses)
	if elseErr != nil {
		return elseErr
	}
	commitClauses(rc, n.elseClauses, elseVals)
	return nil
}

// parseAssignAction parses "<clauses> [; else <clauses>]" shared by
// set/global/private/template.
func parseAssignAction(p *Parser, line int, forced Compartment, useForced, isTemplate bool) (Node, error) {
	clauses, err := p.parseAssignClausesForced(forced, useForced, isTemplate)
	if err != nil {
		return nil, err
	}
	node := &AssignNode{baseNode: baseNode{line}, clauses: clauses}
	if p.atSymbol(";") {
		p.advance()
		t := p.current()
		if t.Typ != TokenIdentifier || t.Val != "else" {
			return nil, p.errorf("expected 'else' after ';'")
		}
		p.advance()
		elseClauses, err := p.parseAssignClausesForced(forced, useForced, isTemplate)
		if err != nil {
			return nil, err
		}
		node.elseClauses = elseClauses
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return node, nil
}

func parseSet(p *Parser, line int) (Node, error) {
	return parseAssignAction(p, line, Local, false, false)
}
func parseGlobal(p *Parser, line int) (Node, error) {
	return parseAssignAction(p, line, Global, true, false)
}
func parsePrivate(p *Parser, line int) (Node, error) {
	return parseAssignAction(p, line, Private, true, false)
}
func parseTemplate(p *Parser, line int) (Node, error) {
	return parseAssignAction(p, line, Local, false, true)
}
