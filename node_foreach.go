package template

import "sort"

func init() { registerAction("foreach", parseForeach) }

// ForeachNode iterates a list, dict or string (§3, §4.6 "evaluate
// iterable; must be list or dict or string; bind loop variable (and
// optional index, 0-based) per element; render body. Empty iterable
// renders the else body if present").
type ForeachNode struct {
	baseNode
	varName  string
	varComp  Compartment
	idxName  string
	idxComp  Compartment
	hasIdx   bool
	iterable Expr
	body     NodeList
	elseBody NodeList
}

func (n *ForeachNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	iv, err := n.iterable.Eval(rc)
	if err != nil {
		return err
	}
	var elems []*Value
	switch iv.Kind() {
	case KindList:
		elems = iv.list
	case KindString:
		runes := []rune(iv.s)
		elems = make([]*Value, len(runes))
		for i, r := range runes {
			elems[i] = Str(string(r))
		}
	case KindDict:
		keys := make([]string, 0, len(iv.dict))
		for k := range iv.dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elems = make([]*Value, len(keys))
		for i, k := range keys {
			elems[i] = Str(k)
		}
	default:
		return rc.errorf(KindType, n.line, "foreach", "%s is not iterable", iv.Kind())
	}
	if len(elems) == 0 {
		if n.elseBody != nil {
			return n.elseBody.Render(rc)
		}
		return nil
	}
	for i, el := range elems {
		rc.scope.Set(n.varName, n.varComp, el)
		if n.hasIdx {
			rc.scope.Set(n.idxName, n.idxComp, Int(int64(i)))
		}
		if err := n.body.Render(rc); err != nil {
			return err
		}
	}
	return nil
}

func parseForeach(p *Parser, line int) (Node, error) {
	varRaw, err := p.parseAssignTargetName()
	if err != nil {
		return nil, err
	}
	varName, varComp := resolveTarget(varRaw, Local, false)

	var idxName string
	var idxComp Compartment
	hasIdx := false
	if p.atSymbol(",") {
		p.advance()
		idxRaw, err := p.parseAssignTargetName()
		if err != nil {
			return nil, err
		}
		idxName, idxComp = resolveTarget(idxRaw, Local, false)
		hasIdx = true
	}

	if !p.atKeyword("in") {
		return nil, p.errorf("expected 'in' in foreach")
	}
	p.advance()

	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	body, err := p.parseNodeList(map[string]bool{"else": true, "endforeach": true})
	if err != nil {
		return nil, err
	}
	node := &ForeachNode{
		baseNode: baseNode{line}, varName: varName, varComp: varComp,
		idxName: idxName, idxComp: idxComp, hasIdx: hasIdx,
		iterable: iterable, body: body,
	}

	name, _, err := p.peekTagName()
	if err != nil {
		return nil, err
	}
	p.advance()
	p.advance()
	switch name {
	case "else":
		if err := p.expectTagClose(); err != nil {
			return nil, err
		}
		elseBody, err := p.parseNodeList(map[string]bool{"endforeach": true})
		if err != nil {
			return nil, err
		}
		node.elseBody = elseBody
		if _, _, err := p.peekTagName(); err != nil {
			return nil, err
		}
		p.advance()
		p.advance()
		if err := p.expectTagClose(); err != nil {
			return nil, err
		}
	case "endforeach":
		if err := p.expectTagClose(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("unexpected %q inside foreach", name)
	}
	return node, nil
}
