// Package fixtures provides a YAML-literal-to-Resolver helper for tests,
// mirroring the teacher's YAML(...) test helper (built on simpleyaml) in
// op_comparison_test.go: instead of hand-building a map[string]value.Value
// per test case, a test writes a small YAML document and gets back a
// Resolver with logexpr.Resolver's shape (convert it at the call site).
package fixtures

import (
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// Resolver mirrors logexpr.Resolver's shape without importing the root
// package, so this internal package stays a leaf dependency usable from
// any _test.go file without risking an import cycle.
type Resolver func(name string) (value.Value, bool)

// FromYAML parses a YAML mapping document into a Resolver. Scalar nodes
// become Bool/Int/String values by their natural YAML type; sequence
// nodes of strings become List values; a null value or `~` becomes
// value.Absent, for tests exercising the "present but data-less" case.
func FromYAML(doc string) (Resolver, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, err
	}
	values := make(map[string]value.Value, len(raw))
	for k, v := range raw {
		values[k] = toValue(v)
	}
	return func(name string) (value.Value, bool) {
		v, ok := values[name]
		return v, ok
	}, nil
}

func toValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Absent
	case bool:
		return value.NewBool(t)
	case int:
		return value.NewInt(int64(t))
	case int64:
		return value.NewInt(t)
	case string:
		return value.NewString(t)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, e := range t {
			items = append(items, toScalarString(e))
		}
		return value.NewList(items)
	default:
		return value.NewString(toScalarString(v))
	}
}

func toScalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
