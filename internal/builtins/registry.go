// Package builtins implements the evaluator's static name→evaluator map
// (spec §4.6): the comprehensive math/string/conversion function library,
// looked up by the already-lowercased name the lexer produced. Grounded on
// the teacher's categorized Registry (CWBudde-go-dws
// internal/interp/builtins/registry.go) and its per-function arity-checked
// evalutor shape (internal/interp/builtins_math.go), collapsed from a family
// of concrete Value types onto goexpr's single tagged value.Value.
package builtins

import (
	"sort"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/value"
)

// Category groups built-ins for the CLI's `goexpr builtins` listing.
type Category string

const (
	CategoryMath       Category = "math"
	CategoryString     Category = "string"
	CategoryConversion Category = "conversion"
)

// Func is a built-in's implementation: it receives the already-evaluated,
// left-to-right ordered argument list and the call site's byte position (for
// error reporting) and returns a Value or a domain/arity error.
type Func func(args []value.Value, pos int) (value.Value, error)

// Info holds metadata about one registered built-in, mirroring the
// teacher's FunctionInfo.
type Info struct {
	Name     string
	Fn       Func
	Category Category
}

// registry is the package-level static table; built-ins never change at
// runtime, so there is no mutex here unlike the teacher's Registry (spec §5
// notes the evaluator performs no concurrent mutation of shared state).
var registry = map[string]Info{}

func register(category Category, fn Func, names ...string) {
	for _, name := range names {
		registry[name] = Info{Name: names[0], Fn: fn, Category: category}
	}
}

// Lookup finds a built-in by name (case-sensitive on the already-lowercased
// identifier the lexer produced — spec §4.6).
func Lookup(name string) (Func, bool) {
	info, ok := registry[name]
	if !ok {
		return nil, false
	}
	return info.Fn, true
}

// All returns every registered built-in's metadata, sorted alphabetically.
func All() []Info {
	seen := make(map[string]bool, len(registry))
	out := make([]Info, 0, len(registry))
	for _, info := range registry {
		if seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func arityError(name string, got, want int) error {
	if got < want {
		return exprerr.New(exprerr.InvalArgCountLow, exprerr.NoPosition, "%s() expects %d argument(s), got %d", name, want, got)
	}
	return exprerr.New(exprerr.InvalArgCountHigh, exprerr.NoPosition, "%s() expects %d argument(s), got %d", name, want, got)
}

func arityRangeError(name string, got, min, max int) error {
	if got < min {
		return exprerr.New(exprerr.InvalArgCountLow, exprerr.NoPosition, "%s() expects %d-%d arguments, got %d", name, min, max, got)
	}
	return exprerr.New(exprerr.InvalArgCountHigh, exprerr.NoPosition, "%s() expects %d-%d arguments, got %d", name, min, max, got)
}
