package template

import (
	"io"
	"sync"

	juju "github.com/juju/errors"
)

// Loader is the host-supplied collaborator that maps a logical template
// name to its source text (§6 "Loader"). Mapping a name onto a filesystem,
// embedded FS, database row, or anything else is entirely the host's
// concern; the core only ever calls Load.
type Loader interface {
	// Load resolves name to its source text and canonical name, or fails
	// with a NotFound-shaped error. The renderer passes include/use paths
	// through unchanged; a host wanting "relative to the current
	// template" resolution implements that inside its own Loader.
	Load(name string) (source, canonicalName string, err error)
}

// HookFunc is a host-registered callable invoked by name via HOOK/RHOOK
// (§4.6, §6 "register a hook").
type HookFunc func(rc *RenderContext, params map[string]*Value) error

// LibraryLoader produces the Value (usually a dict of callables) bound by
// IMPORT for one library name (§6 "register a function library").
type LibraryLoader func() (*Value, error)

// Environment is the public façade: it owns the Loader, the GLOBAL seed
// handed to every new render, the parsed-template cache, and the hook and
// library registries (§6 "Environment"). It mirrors the teacher's
// TemplateSet in shape (construct once, parse-and-cache by name, hand out
// render handles) generalized to this engine's four-compartment scope and
// hook/library surface.
type Environment struct {
	// Debug gates diagnostic logging (see logging.go); off by default.
	Debug bool

	loader     Loader
	globalSeed map[string]*Value

	mu    sync.Mutex
	cache map[string]*Document

	hooks     map[string]HookFunc
	libraries map[string]LibraryLoader
}

// NewEnvironment constructs an Environment around loader, seeding GLOBAL
// with initialGlobals (§6 "construct with an initial variable dictionary
// ... treated as GLOBAL seed").
func NewEnvironment(loader Loader, initialGlobals map[string]*Value) *Environment {
	if initialGlobals == nil {
		initialGlobals = map[string]*Value{}
	}
	return &Environment{
		loader:     loader,
		globalSeed: copyValueMap(initialGlobals),
		cache:      map[string]*Document{},
		hooks:      map[string]HookFunc{},
		libraries:  map[string]LibraryLoader{},
	}
}

// RegisterHook adds or replaces a named hook callable (§6).
func (env *Environment) RegisterHook(name string, fn HookFunc) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.hooks[name] = fn
}

// RegisterLibrary adds or replaces a named function library loader (§6).
func (env *Environment) RegisterLibrary(name string, fn LibraryLoader) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.libraries[name] = fn
}

// Get parses (or returns the cached parse of) the template named name and
// returns a handle to it (§6 "Retrieval of a template returns a handle to
// a parsed tree").
func (env *Environment) Get(name string) (*Template, error) {
	doc, canonical, err := env.resolveAndParse("", name)
	if err != nil {
		return nil, err
	}
	return &Template{env: env, doc: doc, name: canonical}, nil
}

// resolveAndParse loads, parses and caches the template at path, reusing
// an existing parse if one is cached under the loader's canonical name
// (§4.6 "INCLUDE: ... if already parsed, reuse"). fromTemplate is used
// only to attribute a NotFound error to the including template; resolving
// path relative to fromTemplate is the Loader's own responsibility (§6).
func (env *Environment) resolveAndParse(fromTemplate, path string) (*Document, string, error) {
	env.mu.Lock()
	defer env.mu.Unlock()

	src, canonical, err := env.loader.Load(path)
	if err != nil {
		return nil, "", newError(KindNotFound, fromTemplate, 0, 0, "loader", juju.Annotatef(err, "loading %q", path))
	}
	if doc, ok := env.cache[canonical]; ok {
		return doc, canonical, nil
	}
	doc, err := Parse(canonical, src)
	if err != nil {
		return nil, "", err
	}
	env.cache[canonical] = doc
	return doc, canonical, nil
}

// loadLibrary invokes the registered LibraryLoader for name, raising
// NotFound if nothing is registered under it (§4.6 "IMPORT: ... invoke the
// library loader (§6) and bind the result").
func (env *Environment) loadLibrary(rc *RenderContext, name string) (*Value, error) {
	env.mu.Lock()
	fn, ok := env.libraries[name]
	env.mu.Unlock()
	if !ok {
		return nil, rc.errorf(KindNotFound, 0, "import", "no such library %q", name)
	}
	return fn()
}

// Template is a handle to one parsed tree, ready to render (§6 "Template
// handle").
type Template struct {
	env  *Environment
	doc  *Document
	name string
}

// Name reports the template's canonical name.
func (t *Template) Name() string { return t.name }

// Render runs a fresh top-level render: a new Scope seeded from the
// Environment's GLOBAL seed and, optionally, an initial LOCAL dictionary,
// against sink (§6 "render(sink, initial_locals?, userdata?,
// abort_predicate?) -> RenderResult").
func (t *Template) Render(sink io.Writer, initialLocals map[string]*Value, userdata any, abort AbortFunc) (*RenderResult, error) {
	sc := NewScope(t.env.globalSeed)
	for k, v := range initialLocals {
		sc.Set(k, Local, v)
	}
	rc := newRenderContext(t.env, sc, sink, t.name, abort, userdata)
	if err := t.doc.Render(rc); err != nil {
		return nil, err
	}
	return rc.result(), nil
}

// RenderNested is the reentrant form used by hooks and by callables that
// need to compose another template's output into an already-running
// render, against an existing Scope rather than a fresh one (§6
// "render_nested(sink, scope, userdata?)").
func (t *Template) RenderNested(sink io.Writer, sc *Scope, userdata any) error {
	rc := newRenderContext(t.env, sc, sink, t.name, nil, userdata)
	return t.doc.Render(rc)
}
