package template

import (
	"io"
	"strings"
)

// AbortFunc is the host-supplied cooperative-cancellation predicate polled
// once per node entry (§4.6, §5 "Cancellation is cooperative").
type AbortFunc func() bool

// RenderResult carries everything a render call surfaces to its caller
// (§6 "Template handle"): the RETURN dict, the APP dict, and the named
// section buffers captured by SECTION/USE.
type RenderResult struct {
	Return   map[string]*Value
	App      map[string]*Value
	Sections map[string]string
}

// RenderContext is the mutable state threaded through one render call: the
// owning Environment, the live Scope, the output sink, and the bookkeeping
// every node kind needs (§5 "All mutable render state ... is owned by one
// render invocation").
type RenderContext struct {
	env      *Environment
	scope    *Scope
	sink     io.Writer
	template string // canonical name of the template currently rendering
	abort    AbortFunc
	userdata any
	sections map[string]*strings.Builder
	callDepth int
}

func newRenderContext(env *Environment, scope *Scope, sink io.Writer, template string, abort AbortFunc, userdata any) *RenderContext {
	if abort == nil {
		abort = func() bool { return false }
	}
	return &RenderContext{
		env:      env,
		scope:    scope,
		sink:     sink,
		template: template,
		abort:    abort,
		userdata: userdata,
		sections: map[string]*strings.Builder{},
	}
}

// checkAbort implements "at each node's entry the renderer calls the
// optional abort predicate; if it returns true, render raises AbortError"
// (§4.6). Every node kind's Render method calls this first, except
// NoopNode and AutostripNode, whose Render does nothing.
func (rc *RenderContext) checkAbort(line int) error {
	if rc.abort() {
		return newErrorf(KindAbort, rc.template, line, 0, "render", "render aborted")
	}
	return nil
}

func (rc *RenderContext) emit(s string) error {
	_, err := io.WriteString(rc.sink, s)
	return err
}

// Scope exposes the active Scope to Callable implementations invoked
// through a variable chain's call step (§6 "Callable contract").
func (rc *RenderContext) Scope() *Scope { return rc.scope }

// Userdata exposes the opaque per-render value supplied to Render.
func (rc *RenderContext) Userdata() any { return rc.userdata }

// Emit exposes the output sink to Callable implementations and hooks.
func (rc *RenderContext) Emit(s string) error { return rc.emit(s) }

// Environment exposes the owning Environment (hook/library registries,
// loader, logging) to Callable implementations and hooks.
func (rc *RenderContext) Environment() *Environment { return rc.env }

// TemplateName reports the canonical name of the template currently
// rendering (for hooks and diagnostics).
func (rc *RenderContext) TemplateName() string { return rc.template }

func (rc *RenderContext) errorf(kind ErrorKind, line int, sender, format string, args ...any) *Error {
	return newErrorf(kind, rc.template, line, 0, sender, format, args...)
}

func (rc *RenderContext) result() *RenderResult {
	sections := make(map[string]string, len(rc.sections))
	for k, b := range rc.sections {
		sections[k] = b.String()
	}
	return &RenderResult{
		Return:   rc.scope.ReturnDict(),
		App:      rc.scope.AppDict(),
		Sections: sections,
	}
}
