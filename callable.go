package template

// Callable is the uniform contract for anything invokable through a
// variable chain's call step or a CALL/DO action (§6 "Callable contract"):
// it takes a list of Values and an ambient rendering context, and returns
// a Value or raises a TemplateError.
type Callable interface {
	Call(rc *RenderContext, args []*Value) (*Value, error)
}

// HostFunc adapts a plain Go function to Callable, for the standard
// function library and hook-adjacent helpers host code registers.
type HostFunc func(rc *RenderContext, args []*Value) (*Value, error)

func (f HostFunc) Call(rc *RenderContext, args []*Value) (*Value, error) {
	return f(rc, args)
}

// maxFuncDepth guards runaway recursion in template-defined functions
// (grounded on the teacher's tags_macro.go maxMacroDepth).
const maxFuncDepth = 1000

// templateFunc is the Value a DEF action produces: a closure over the
// scope that existed at DEF time (captured by snapshot, per §9
// "Template-function closures") plus its parameter names and body.
type templateFunc struct {
	name    string
	params  []string
	body    NodeList
	closure map[string]*Value // snapshot of defining LOCAL ∪ PRIVATE
	line    int
}

func (f *templateFunc) Call(rc *RenderContext, args []*Value) (*Value, error) {
	rc.callDepth++
	defer func() { rc.callDepth-- }()
	if rc.callDepth > maxFuncDepth {
		return nil, rc.errorf(KindInternal, f.line, f.name, "function call depth exceeds %d (runaway recursion?)", maxFuncDepth)
	}

	seed := copyValueMap(f.closure)
	for i, p := range f.params {
		if i < len(args) {
			seed[p] = args[i]
		} else {
			seed[p] = None
		}
	}

	sc := rc.scope
	sc.PushClosure(seed)
	savedRet := sc.ret
	sc.ret = map[string]*Value{}

	err := f.body.Render(rc)

	result := Dict(sc.ret)
	sc.ret = savedRet
	if popErr := sc.PopInclude(); popErr != nil && err == nil {
		err = popErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
