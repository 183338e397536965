package template

func init() { registerAction("import", parseImport) }

type importClause struct {
	name string
	comp Compartment
	lib  string
}

// ImportNode invokes the environment's library loader for each assignment
// and binds the result (§3, §4.6 "IMPORT: for each assignment, invoke the
// library loader (§6) and bind the result").
type ImportNode struct {
	baseNode
	clauses []importClause
}

func (n *ImportNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	for _, c := range n.clauses {
		v, err := rc.env.loadLibrary(rc, c.lib)
		if err != nil {
			return err
		}
		rc.scope.Set(c.name, c.comp, v)
	}
	return nil
}

func parseImport(p *Parser, line int) (Node, error) {
	var clauses []importClause
	for {
		raw, err := p.parseAssignTargetName()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		libTok := p.current()
		if libTok.Typ != TokenString {
			return nil, p.errorf("expected a string library name in import")
		}
		p.advance()
		name, comp := resolveTarget(raw, Local, false)
		clauses = append(clauses, importClause{name: name, comp: comp, lib: libTok.Val})
		if !p.atSymbol(",") {
			break
		}
		p.advance()
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &ImportNode{baseNode: baseNode{line}, clauses: clauses}, nil
}
