package scope

import (
	"reflect"
	"testing"

	"github.com/arnavsurve/transpile/internal/compiler/value"
)

func TestDefineAndLookup(t *testing.T) {
	s := NewScope("global")

	if _, ok := s.Lookup("x"); ok {
		t.Fatalf("fresh scope should be empty")
	}

	s.Define("x", value.Int(1))
	s.Define("x", value.Int(2))
	s.Define("flag", value.Bool(true))

	if v, ok := s.Lookup("x"); !ok || v != value.Int(2) {
		t.Errorf("Lookup(x) = %v, %v; want 2, true", v, ok)
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"flag", "x"}) {
		t.Errorf("Names() = %v", got)
	}
}
