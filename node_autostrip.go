package template

func init() { registerAction("autostrip", parseAutostrip) }

var autostripModeNames = map[string]AutostripMode{"none": ModeNone, "strip": ModeStrip, "trim": ModeTrim}

// AutostripNode mutates the forward-looking ambient autostrip mode
// (§3, §4.6 "AUTOSTRIP: mutate the forward-looking autostrip mode of the
// current render state"). Since whitespace is resolved once at parse time
// (§4.2), the mutation happens in parseAutostrip as each tag is consumed;
// Render is a no-op kept only so the tree records where the tag occurred.
type AutostripNode struct{ baseNode }

func (n *AutostripNode) Render(rc *RenderContext) error { return nil }

func parseAutostrip(p *Parser, line int) (Node, error) {
	t := p.current()
	mode, ok := autostripModeNames[t.Val]
	if t.Typ != TokenIdentifier || !ok {
		return nil, p.errorf("expected 'none', 'strip' or 'trim' after 'autostrip'")
	}
	p.advance()
	if err := p.expectTagClose(); err != nil {
		return nil, err
	}
	p.autostripBase = mode
	return &AutostripNode{baseNode{line}}, nil
}
