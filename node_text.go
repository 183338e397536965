package template

// TextNode is a literal span of output text, already fully resolved by
// the whitespace controller at parse time (§4.6 "TEXT: after whitespace
// transformations are resolved, emit").
type TextNode struct {
	baseNode
	text string
}

func (n *TextNode) Render(rc *RenderContext) error {
	if err := rc.checkAbort(n.line); err != nil {
		return err
	}
	return rc.emit(n.text)
}
