package template

func init() { registerAction("return", parseReturn) }

// ReturnNode binds a multi-assignment list into the RETURN compartment
// (§3, §4.6 "RETURN: assignments into the RETURN compartment").
type ReturnNode struct {
	baseNode
	clauses []assignClause
}

func (n *ReturnNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	return bindClauses(rc, n.clauses)
}

func parseReturn(p *Parser, line int) (Node, error) {
	clauses, err := p.parseAssignClausesForced(Return, true, false)
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &ReturnNode{baseNode: baseNode{line}, clauses: clauses}, nil
}
