package template

func init() { registerAction("strip", parseStrip) }

var stripModeNames = map[string]AutostripMode{"on": ModeStrip, "off": ModeNone, "trim": ModeTrim}

// StripNode locally overrides the ambient autostrip mode for its body.
// The override only matters during parsing (§4.2 "operates ... at parse
// time"): by render time every child TEXT node's contents are already
// baked, so Render is a plain pass-through (§3 "STRIP (mode: on/off/trim,
// body)").
type StripNode struct {
	baseNode
	body NodeList
}

func (n *StripNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	return n.body.Render(rc)
}

func parseStrip(p *Parser, line int) (Node, error) {
	t := p.current()
	mode, ok := stripModeNames[t.Val]
	if t.Typ != TokenIdentifier || !ok {
		return nil, p.errorf("expected 'on', 'off' or 'trim' after 'strip'")
	}
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}

	p.stripStack = append(p.stripStack, mode)
	body, err := p.parseNodeList(map[string]bool{"endstrip": true})
	p.stripStack = p.stripStack[:len(p.stripStack)-1]
	if err != nil {
		return nil, err
	}

	if n, _, err := p.peekTagName(); err != nil || n != "endstrip" {
		if err != nil {
			return nil, err
		}
		return nil, p.errorf("expected 'endstrip', got %q", n)
	}
	p.advance()
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	return &StripNode{baseNode: baseNode{line}, body: body}, nil
}
