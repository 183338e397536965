package template

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

type yamlScenario struct {
	Name string `yaml:"name"`
	Src  string `yaml:"src"`
	Want string `yaml:"want"`
}

// TestScenariosFromYAML reads testdata/scenarios.yaml and renders each
// entry against a variable-free Environment, complementing
// TestConcreteScenarios' Go-literal table with a data-driven pass over
// cases that need no typed *Value bindings.
func TestScenariosFromYAML(t *testing.T) {
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var scenarios []yamlScenario
	if err := yaml.Unmarshal(raw, &scenarios); err != nil {
		t.Fatal(err)
	}
	if len(scenarios) == 0 {
		t.Fatal("no scenarios loaded from testdata/scenarios.yaml")
	}
	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			env := NewEnvironment(mapLoader{"main": sc.Src}, nil)
			tpl, err := env.Get("main")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			var buf strings.Builder
			if _, err := tpl.Render(&buf, nil, nil, nil); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if buf.String() != sc.Want {
				t.Errorf("got %q, want %q", buf.String(), sc.Want)
			}
		})
	}
}
