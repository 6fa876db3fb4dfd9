package scope

import (
	"sort"

	"github.com/arnavsurve/transpile/internal/compiler/value"
)

// --- Scope ---

// Scope is the single flat variable mapping of one interpreter run. Blocks do
// not open nested scopes: a name assigned anywhere stays visible afterwards.
type Scope struct {
	Symbols map[string]value.Value
	Name    string
}

func NewScope(name string) *Scope {
	return &Scope{
		Symbols: make(map[string]value.Value),
		Name:    name,
	}
}

// Define creates or overwrites name.
func (s *Scope) Define(name string, v value.Value) {
	s.Symbols[name] = v
}

// Lookup returns the current value of name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	v, ok := s.Symbols[name]
	return v, ok
}

// Names returns the defined names in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.Symbols))
	for name := range s.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
