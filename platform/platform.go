// Package platform defines the grammar of every supported search platform.
// A grammar bundles the platform's lexical rules, operator precedence, field
// table and content rules; the parser package consumes it as a read-only
// capability object.
package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/sq/parser"
)

var registry = map[string]*parser.Grammar{}

func register(g *parser.Grammar, aliases ...string) *parser.Grammar {
	g.Finish()
	registry[g.Name] = g
	for _, alias := range aliases {
		registry[alias] = g
	}
	return g
}

// Lookup resolves a platform name or alias, case-insensitively.
func Lookup(name string) (*parser.Grammar, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if g, ok := registry[key]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("unknown platform %q (supported: %s)",
		name, strings.Join(Names(), ", "))
}

// Names returns the canonical platform names, sorted.
func Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, g := range registry {
		if !seen[g.Name] {
			seen[g.Name] = true
			names = append(names, g.Name)
		}
	}
	sort.Strings(names)
	return names
}
