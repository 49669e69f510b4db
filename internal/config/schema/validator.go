package schema

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Result is the outcome of validating a settings map.
type Result struct {
	// Unknown lists properties the schema does not describe.
	Unknown []string

	// Deprecated maps deprecated properties that were used to their
	// replacements.
	Deprecated map[string]string
}

// Validator validates settings maps against a schema.
type Validator struct {
	schema *Schema
}

// NewValidator creates a validator for the given object schema.
func NewValidator(schema *Schema) *Validator {
	return &Validator{schema: schema}
}

// Validate checks data and returns a *ValidationErrors when any value does
// not match. Unknown and deprecated properties are reported in the Result.
func (v *Validator) Validate(data map[string]any) (Result, error) {
	var (
		res  Result
		errs ValidationErrors
	)
	v.validateObject("", data, v.schema, &res, &errs)
	sort.Strings(res.Unknown)
	if errs.HasErrors() {
		return res, &errs
	}
	return res, nil
}

func (v *Validator) validateObject(path string, data map[string]any, s *Schema, res *Result, errs *ValidationErrors) {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := joinPath(path, name)
		prop, ok := s.Properties[name]
		if !ok {
			res.Unknown = append(res.Unknown, p)
			continue
		}
		if prop.Deprecated != "" {
			if res.Deprecated == nil {
				res.Deprecated = make(map[string]string)
			}
			res.Deprecated[p] = prop.Deprecated
		}
		v.validateValue(p, data[name], prop, res, errs)
	}
}

func (v *Validator) validateValue(path string, value any, s *Schema, res *Result, errs *ValidationErrors) {
	// An empty YAML value leaves the default in place.
	if value == nil {
		return
	}

	switch s.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			errs.Add(path, "expected string, got %s", typeName(value))
			return
		}
		if len(s.Enum) > 0 && str != "" && !containsFold(s.Enum, strings.TrimSpace(str)) {
			errs.Add(path, "must be one of %s, got %q", strings.Join(s.Enum, ", "), str)
		}

	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			errs.Add(path, "expected boolean, got %s", typeName(value))
		}

	case TypeInteger:
		n, ok := toInt64(value)
		if !ok {
			errs.Add(path, "expected integer, got %s", typeName(value))
			return
		}
		if s.Minimum != nil && n < *s.Minimum {
			errs.Add(path, "must be at least %d, got %d", *s.Minimum, n)
		}
		if s.Maximum != nil && n > *s.Maximum {
			errs.Add(path, "must be at most %d, got %d", *s.Maximum, n)
		}

	case TypeArray:
		items, ok := toSlice(value)
		if !ok {
			errs.Add(path, "expected array, got %s", typeName(value))
			return
		}
		if s.Items == nil {
			return
		}
		for i, item := range items {
			v.validateValue(indexPath(path, i), item, s.Items, res, errs)
		}

	case TypeObject:
		m, ok := value.(map[string]any)
		if !ok {
			errs.Add(path, "expected object, got %s", typeName(value))
			return
		}
		v.validateObject(path, m, s, res, errs)
	}
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// toInt64 accepts the integer types produced by the YAML and environment
// loaders, and floats without a fractional part.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case map[string]any:
		return TypeObject
	case []any, []string:
		return TypeArray
	case float32, float64:
		return "number"
	}
	if _, ok := toInt64(v); ok {
		return TypeInteger
	}
	return "unknown"
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func indexPath(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}
