package template

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewEnvironmentCopiesGlobalSeed(t *testing.T) {
	seed := map[string]*Value{"x": Int(1)}
	env := NewEnvironment(mapLoader{"main": "{{ x }}"}, seed)
	seed["x"] = Int(99)

	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if _, err := tpl.Render(&buf, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1" {
		t.Errorf("Environment should have snapshotted the seed at construction, got %q", buf.String())
	}
}

func TestGetReturnsNotFoundForMissingTemplate(t *testing.T) {
	env := NewEnvironment(mapLoader{}, nil)
	_, err := env.Get("nosuch")
	if err == nil {
		t.Fatal("expected an error for a missing template")
	}
	te, ok := asTemplateError(err)
	if !ok || te.Kind != KindNotFound {
		t.Errorf("expected KindNotFound, got %#v", err)
	}
}

// Get reuses the cached parse on a second lookup: the canonical name the
// Loader reports is the cache key (§6 "if already parsed, reuse").
func TestGetReusesCachedParse(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": "{{ 1 + 1 }}"}, nil)
	t1, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	t2, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	if t1.doc != t2.doc {
		t.Error("expected the second Get to reuse the first parse's *Document")
	}
}

func TestTemplateNameReportsCanonicalName(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": "x"}, nil)
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Name() != "main" {
		t.Errorf("Name() = %q, want %q", tpl.Name(), "main")
	}
}

func TestRegisterHookIsVisibleToRender(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": `{% hook "greet" %}`}, nil)
	called := false
	env.RegisterHook("greet", func(rc *RenderContext, params map[string]*Value) error {
		called = true
		return nil
	})
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if _, err := tpl.Render(&buf, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("registered hook was never invoked")
	}
}

func TestRegisterLibraryIsVisibleToImport(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": `{% import m="mathlib" %}{{ m.answer }}`}, nil)
	env.RegisterLibrary("mathlib", func() (*Value, error) {
		return Dict(map[string]*Value{"answer": Int(42)}), nil
	})
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if _, err := tpl.Render(&buf, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "42" {
		t.Errorf("got %q", buf.String())
	}
}

func TestImportOfUnregisteredLibraryIsNotFound(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": `{% import m="nosuch" %}`}, nil)
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	_, err = tpl.Render(&buf, nil, nil, nil)
	if err == nil {
		t.Fatal("expected an error for an unregistered library")
	}
	te, ok := asTemplateError(err)
	if !ok || te.Kind != KindNotFound {
		t.Errorf("expected KindNotFound, got %#v", err)
	}
}

// Render seeds initialLocals into LOCAL on top of the Environment's GLOBAL
// seed (§6 "render(sink, initial_locals?, ...)").
func TestRenderSeedsInitialLocals(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": "{{ name }}"}, nil)
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	_, err = tpl.Render(&buf, map[string]*Value{"name": Str("Ada")}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Ada" {
		t.Errorf("got %q", buf.String())
	}
}

// RenderNested renders against a caller-supplied Scope rather than a fresh
// one, so GLOBAL/LOCAL writes made before the call are already visible.
func TestRenderNestedSharesSuppliedScope(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": "{{ x }}"}, nil)
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	sc := NewScope(nil)
	sc.Set("x", Local, Str("from caller scope"))
	var buf strings.Builder
	if err := tpl.RenderNested(&buf, sc, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "from caller scope" {
		t.Errorf("got %q", buf.String())
	}
}

// RenderResult.Return surfaces exactly what the template bound into RETURN;
// go-cmp.Diff (with Value's unexported fields allowed) gives a readable
// failure if the two dicts diverge.
func TestRenderResultReturnDict(t *testing.T) {
	env := NewEnvironment(mapLoader{"main": "{% return a=1, b=\"two\" %}"}, nil)
	tpl, err := env.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	res, err := tpl.Render(&buf, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]*Value{"a": Int(1), "b": Str("two")}
	if diff := cmp.Diff(want, res.Return, cmp.AllowUnexported(Value{})); diff != "" {
		t.Errorf("Return dict mismatch (-want +got):\n%s", diff)
	}
}
