// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tool

import (
	"fmt"
	"maps"
	"math"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FieldType is the value type of an option.
type FieldType uint8

// Field types.
const (
	TypeInt FieldType = iota
	TypeFloat
	TypeBool
)

func (t FieldType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(t))
	}
}

// Field describes one option.
type Field struct {
	Key     string
	Type    FieldType
	Default any

	// Constraint is an expr boolean expression; empty means unconstrained.
	Constraint string
}

// Schema lists the options of a tool.
type Schema []Field

// Field returns the field with the given key.
func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// programs holds the compiled constraint of every built-in field, keyed by
// expression source.
var programs = compileConstraints()

func compileConstraints() map[string]*vm.Program {
	out := make(map[string]*vm.Program)
	for _, d := range descriptors {
		for _, f := range d.Schema {
			if f.Constraint == "" {
				continue
			}
			if _, ok := out[f.Constraint]; ok {
				continue
			}
			p, err := compileConstraint(f.Constraint)
			if err != nil {
				panic(fmt.Sprintf("tool: %s.%s: %v", d.Name, f.Key, err))
			}
			out[f.Constraint] = p
		}
	}
	return out
}

func compileConstraint(src string) (*vm.Program, error) {
	return expr.Compile(src,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
}

// Config is a validated set of options for one tool. The zero value is not
// useful; obtain one from Configure or Default.
type Config struct {
	kind   Kind
	values map[string]any
}

// Default returns the configuration of k with every option at its default.
func Default(k Kind) (Config, error) {
	return Configure(k, nil)
}

// Configure validates values against the schema of k. Missing options take
// their default. Integer options accept whole floats; float options accept
// integers.
func Configure(k Kind, values map[string]any) (Config, error) {
	d, ok := Describe(k)
	if !ok {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}

	for key := range values {
		if _, ok := d.Schema.Field(key); !ok {
			return Config{}, fmt.Errorf("%w: %s has no option %q", ErrInvalidOption, d.Name, key)
		}
	}

	cfg := Config{kind: k, values: make(map[string]any, len(d.Schema))}
	for _, f := range d.Schema {
		raw, ok := values[f.Key]
		if !ok {
			raw = f.Default
		}
		v, err := coerce(f.Type, raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s.%s: %v", ErrInvalidOption, d.Name, f.Key, err)
		}
		cfg.values[f.Key] = v
	}

	for _, f := range d.Schema {
		if err := cfg.check(f); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c Config) check(f Field) error {
	if f.Constraint == "" {
		return nil
	}
	p, ok := programs[f.Constraint]
	if !ok {
		var err error
		if p, err = compileConstraint(f.Constraint); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidOption, f.Key, err)
		}
	}

	env := make(map[string]any, len(c.values)+1)
	maps.Copy(env, c.values)
	env["value"] = c.values[f.Key]

	out, err := expr.Run(p, env)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidOption, f.Key, err)
	}
	if ok, _ := out.(bool); !ok {
		return fmt.Errorf("%w: %s = %v violates %q", ErrInvalidOption, f.Key, c.values[f.Key], f.Constraint)
	}
	return nil
}

func coerce(t FieldType, v any) (any, error) {
	switch t {
	case TypeInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("%v is not a whole number", n)
			}
			return int(n), nil
		}
	case TypeFloat:
		switch n := v.(type) {
		case float64:
			if math.IsNaN(n) {
				return nil, fmt.Errorf("NaN")
			}
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("want %s, got %T", t, v)
}

// Kind returns the tool the configuration belongs to.
func (c Config) Kind() Kind { return c.kind }

// Int returns an integer option, or 0 if absent.
func (c Config) Int(key string) int {
	v, _ := c.values[key].(int)
	return v
}

// Float returns a float option, or 0 if absent.
func (c Config) Float(key string) float64 {
	v, _ := c.values[key].(float64)
	return v
}

// Bool returns a boolean option, or false if absent.
func (c Config) Bool(key string) bool {
	v, _ := c.values[key].(bool)
	return v
}

// Values returns a copy of the option map.
func (c Config) Values() map[string]any {
	return maps.Clone(c.values)
}

// Keys returns the option keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns a copy of c with key set to v, validated like Configure.
func (c Config) With(key string, v any) (Config, error) {
	values := c.Values()
	if values == nil {
		values = make(map[string]any, 1)
	}
	values[key] = v
	return Configure(c.kind, values)
}
