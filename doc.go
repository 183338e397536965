// Package template implements a text templating engine in the Django/
// Jinja tradition: template source is a sequence of literal text
// interleaved with tagged directives for substitution, iteration,
// conditionals, scoping and composition of other templates.
//
// The engine is organized as three tightly coupled subsystems:
//
//   - a lexer/parser that turns source text into a tree of typed nodes,
//     honoring whitespace-control flags that cross block boundaries
//   - an expression language (values, variable access with compartment
//     prefixes, operators, function calls, attribute/index chains)
//   - a tree-walking renderer evaluating the node tree against a scoped
//     environment with four variable compartments, include/expand
//     composition, hookable extension points and control-flow signals
//
// The standard function library, the template-name-to-source loader, and
// the public environment/caching facade are intentionally narrow: callers
// supply a Loader (see Environment) and register hooks/function libraries
// themselves.
package template
