package template

import "strings"

func init() {
	registerAction("section", parseSection)
	registerAction("use", parseUse)
}

// SectionNode renders its body into a named buffer on the render result,
// replacing any prior same-name section (§3, §4.6 "SECTION: render body
// into a named buffer stored on the render result; replaces any prior
// same-name section").
type SectionNode struct {
	baseNode
	name Expr
	body NodeList
}

func (n *SectionNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	nameVal, err := n.name.Eval(rc)
	if err != nil {
		return err
	}
	var buf strings.Builder
	savedSink := rc.sink
	rc.sink = &buf
	err = n.body.Render(rc)
	rc.sink = savedSink
	if err != nil {
		return err
	}
	rc.sections[nameVal.String()] = &buf
	return nil
}

func parseSection(p *Parser, line int) (Node, error) {
	name, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	body, err := p.parseNodeList(map[string]bool{"endsection": true})
	if err != nil {
		return nil, err
	}
	if n, _, err := p.peekTagName(); err != nil || n != "endsection" {
		if err != nil {
			return nil, err
		}
		return nil, p.errorf("expected 'endsection', got %q", n)
	}
	p.advance()
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &SectionNode{baseNode: baseNode{line}, name: name, body: body}, nil
}

// UseNode replays a previously captured section's buffer verbatim (§3,
// §4.6 "USE: emit a previously captured section's buffer verbatim"). A
// section that was never captured emits nothing.
type UseNode struct {
	baseNode
	name Expr
}

func (n *UseNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	nameVal, err := n.name.Eval(rc)
	if err != nil {
		return err
	}
	if buf, ok := rc.sections[nameVal.String()]; ok {
		return rc.emit(buf.String())
	}
	return nil
}

func parseUse(p *Parser, line int) (Node, error) {
	name, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &UseNode{baseNode: baseNode{line}, name: name}, nil
}
