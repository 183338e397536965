package template

import "math"

// Expr is one node of the expression tree (§3 "Expression tree"):
// literals, list/dict constructors, variable chains, and the binary/unary
// operators.
type Expr interface {
	Eval(rc *RenderContext) (*Value, error)
}

// litExpr wraps a constant literal (string, int, float, true/false).
type litExpr struct {
	val *Value
}

func (e *litExpr) Eval(rc *RenderContext) (*Value, error) { return e.val, nil }

// listExpr is a `[a, b, c]` literal.
type listExpr struct {
	items []Expr
}

func (e *listExpr) Eval(rc *RenderContext) (*Value, error) {
	out := make([]*Value, len(e.items))
	for i, it := range e.items {
		v, err := it.Eval(rc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return List(out), nil
}

// dictExpr is a `[k:v, ...]` literal (empty as `[:]`).
type dictExpr struct {
	keys []Expr
	vals []Expr
}

func (e *dictExpr) Eval(rc *RenderContext) (*Value, error) {
	out := make(map[string]*Value, len(e.keys))
	for i := range e.keys {
		k, err := e.keys[i].Eval(rc)
		if err != nil {
			return nil, err
		}
		v, err := e.vals[i].Eval(rc)
		if err != nil {
			return nil, err
		}
		out[k.String()] = v
	}
	return Dict(out), nil
}

// varExpr is the head of a variable chain: a name plus the compartment it
// resolves in, either explicit (x@name) or inferred from the name's shape
// (§3 "Variable compartments").
type varExpr struct {
	name string
	comp Compartment
	line int
}

func newVarExpr(raw string, line int) *varExpr {
	if c, name, ok := splitCompartmentPrefix(raw); ok {
		return &varExpr{name: name, comp: c, line: line}
	}
	return &varExpr{name: raw, comp: DefaultCompartment(raw), line: line}
}

func (e *varExpr) Eval(rc *RenderContext) (*Value, error) {
	v, err := rc.scope.Get(e.name, e.comp)
	if err != nil && e.comp == Local {
		// An unprefixed read that misses LOCAL falls back to GLOBAL.
		if gv, gerr := rc.scope.Get(e.name, Global); gerr == nil {
			return gv, nil
		}
	}
	if err != nil {
		if te, ok := asTemplateError(err); ok {
			te.Template = rc.template
			te.Line = e.line
			te.Sender = "variable"
		}
		return nil, err
	}
	return v, nil
}

// chainStep is one `.name`, `[expr]` or `(args)` suffix on a chain.
type chainStep interface {
	apply(rc *RenderContext, base *Value, line int) (*Value, error)
}

type attrStep struct{ name string }

func (s attrStep) apply(rc *RenderContext, base *Value, line int) (*Value, error) {
	switch base.Kind() {
	case KindDict:
		if v, ok := base.dict[s.name]; ok {
			return v, nil
		}
		return nil, rc.errorf(KindType, line, "attr", "dict has no key %q", s.name)
	case KindOpaque:
		v, err := base.AsOpaque().GetAttr(s.name)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, rc.errorf(KindType, line, "attr", "%s has no attribute %q", base.Kind(), s.name)
	}
}

type itemStep struct{ key Expr }

func (s itemStep) apply(rc *RenderContext, base *Value, line int) (*Value, error) {
	key, err := s.key.Eval(rc)
	if err != nil {
		return nil, err
	}
	switch base.Kind() {
	case KindDict:
		if v, ok := base.dict[key.String()]; ok {
			return v, nil
		}
		return nil, rc.errorf(KindIndex, line, "item", "dict has no key %q", key.String())
	case KindList:
		idx := int(key.Integer())
		if idx < 0 || idx >= len(base.list) {
			return nil, rc.errorf(KindIndex, line, "item", "list index %d out of range (len %d)", idx, len(base.list))
		}
		return base.list[idx], nil
	case KindOpaque:
		return base.AsOpaque().GetItem(key)
	default:
		return nil, rc.errorf(KindType, line, "item", "%s is not indexable", base.Kind())
	}
}

type callStep struct{ args []Expr }

func (s callStep) apply(rc *RenderContext, base *Value, line int) (*Value, error) {
	args := make([]*Value, len(s.args))
	for i, a := range s.args {
		v, err := a.Eval(rc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch base.Kind() {
	case KindCallable:
		return base.AsCallable().Call(rc, args)
	case KindOpaque:
		return base.AsOpaque().Call(rc, args)
	default:
		return nil, rc.errorf(KindType, line, "call", "%s is not callable", base.Kind())
	}
}

// chainExpr is a variable chain: a head plus zero or more access steps
// (§4.3 "A variable chain begins with an identifier ... subsequent steps
// are .name, [expr], or (args)").
type chainExpr struct {
	head  Expr
	steps []chainStep
	line  int
}

func (e *chainExpr) Eval(rc *RenderContext) (*Value, error) {
	v, err := e.head.Eval(rc)
	if err != nil {
		return nil, err
	}
	for _, step := range e.steps {
		v, err = step.apply(rc, v, e.line)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// unaryExpr is "-" or "not" applied to its operand.
type unaryExpr struct {
	op      string
	operand Expr
	line    int
}

func (e *unaryExpr) Eval(rc *RenderContext) (*Value, error) {
	v, err := e.operand.Eval(rc)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "not":
		return Bool(!v.IsTrue()), nil
	case "-":
		if !v.IsNumber() {
			return nil, rc.errorf(KindType, e.line, "unary-", "cannot negate %s", v.Kind())
		}
		if v.IsFloat() {
			return Float(-v.Float()), nil
		}
		return Int(-v.Integer()), nil
	default:
		return nil, rc.errorf(KindInternal, e.line, "unary", "unknown unary operator %q", e.op)
	}
}

// logicalExpr is "and"/"or"; both short-circuit and (Python-style) yield
// whichever operand decided the result, not a coerced bool.
type logicalExpr struct {
	op       string
	lhs, rhs Expr
}

func (e *logicalExpr) Eval(rc *RenderContext) (*Value, error) {
	l, err := e.lhs.Eval(rc)
	if err != nil {
		return nil, err
	}
	if e.op == "or" {
		if l.IsTrue() {
			return l, nil
		}
		return e.rhs.Eval(rc)
	}
	if !l.IsTrue() {
		return l, nil
	}
	return e.rhs.Eval(rc)
}

// compareExpr is a single (non-chaining) relational comparison.
type compareExpr struct {
	op       string
	lhs, rhs Expr
	line     int
}

func (e *compareExpr) Eval(rc *RenderContext) (*Value, error) {
	l, err := e.lhs.Eval(rc)
	if err != nil {
		return nil, err
	}
	r, err := e.rhs.Eval(rc)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "==":
		return Bool(l.EqualValueTo(r)), nil
	case "!=":
		return Bool(!l.EqualValueTo(r)), nil
	}
	if l.IsNumber() && r.IsNumber() {
		lf, rf := l.Float(), r.Float()
		return Bool(orderCompare(e.op, lf < rf, lf == rf, lf > rf)), nil
	}
	if l.IsString() && r.IsString() {
		return Bool(orderCompare(e.op, l.s < r.s, l.s == r.s, l.s > r.s)), nil
	}
	return nil, rc.errorf(KindType, e.line, "compare", "cannot compare %s %s %s", l.Kind(), e.op, r.Kind())
}

func orderCompare(op string, lt, eq, gt bool) bool {
	switch op {
	case "<":
		return lt
	case "<=":
		return lt || eq
	case ">":
		return gt
	case ">=":
		return gt || eq
	default:
		return false
	}
}

// arithExpr is +, -, *, / or % (§4.3).
type arithExpr struct {
	op       string
	lhs, rhs Expr
	line     int
}

func (e *arithExpr) Eval(rc *RenderContext) (*Value, error) {
	l, err := e.lhs.Eval(rc)
	if err != nil {
		return nil, err
	}
	r, err := e.rhs.Eval(rc)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "+":
		return addValues(rc, l, r, e.line)
	case "-", "*", "/", "%":
		return arithValues(rc, e.op, l, r, e.line)
	default:
		return nil, rc.errorf(KindInternal, e.line, "arith", "unknown operator %q", e.op)
	}
}

func addValues(rc *RenderContext, l, r *Value, line int) (*Value, error) {
	switch {
	case l.IsString() || r.IsString():
		if !l.IsString() || !r.IsString() {
			return nil, rc.errorf(KindType, line, "+", "string `+` requires both operands to be strings")
		}
		return Str(l.s + r.s), nil
	case l.IsList() || r.IsList():
		if !l.IsList() || !r.IsList() {
			return nil, rc.errorf(KindType, line, "+", "list `+` requires both operands to be lists")
		}
		out := make([]*Value, 0, len(l.list)+len(r.list))
		out = append(out, l.list...)
		out = append(out, r.list...)
		return List(out), nil
	case l.IsNumber() && r.IsNumber():
		return arithValues(rc, "+", l, r, line)
	default:
		return nil, rc.errorf(KindType, line, "+", "cannot add %s and %s", l.Kind(), r.Kind())
	}
}

func arithValues(rc *RenderContext, op string, l, r *Value, line int) (*Value, error) {
	if !l.IsNumber() || !r.IsNumber() {
		return nil, rc.errorf(KindType, line, op, "%s requires numeric operands, got %s and %s", op, l.Kind(), r.Kind())
	}
	useFloat := l.IsFloat() || r.IsFloat()
	switch op {
	case "-":
		if useFloat {
			return Float(l.Float() - r.Float()), nil
		}
		return Int(l.Integer() - r.Integer()), nil
	case "*":
		if useFloat {
			return Float(l.Float() * r.Float()), nil
		}
		return Int(l.Integer() * r.Integer()), nil
	case "/":
		if useFloat {
			if r.Float() == 0 {
				return nil, rc.errorf(KindArithmetic, line, "/", "division by zero")
			}
			return Float(l.Float() / r.Float()), nil
		}
		if r.Integer() == 0 {
			return nil, rc.errorf(KindArithmetic, line, "/", "division by zero")
		}
		return Int(l.Integer() / r.Integer()), nil
	case "%":
		if useFloat {
			if r.Float() == 0 {
				return nil, rc.errorf(KindArithmetic, line, "%", "modulus by zero")
			}
			return Float(math.Mod(l.Float(), r.Float())), nil
		}
		if r.Integer() == 0 {
			return nil, rc.errorf(KindArithmetic, line, "%", "modulus by zero")
		}
		return Int(l.Integer() % r.Integer()), nil
	default:
		return nil, rc.errorf(KindInternal, line, "arith", "unknown operator %q", op)
	}
}
