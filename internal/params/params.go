// Package params is the live parameter store behind the control panel and the
// terminal's set/get commands. Continuously animated values are pulled by the
// frame loop each frame; cosmetic toggles are pushed to their targets through
// OnChange callbacks when they change.
//
// A Store is not safe for concurrent use. The host serializes input events,
// panel updates and frames on one goroutine.
package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"golang.org/x/exp/constraints"

	"scene-demo/internal/world"
)

var (
	// ErrUnknown is returned for names that were never declared.
	ErrUnknown = errors.New("unknown parameter")
	// ErrKind is returned when a value does not match the declared kind.
	ErrKind = errors.New("wrong parameter kind")
)

// Kind is the declared type of a parameter.
type Kind int

const (
	KindRange Kind = iota
	KindBool
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	}
	return "unknown"
}

// ParseKind maps "range", "bool" and "color" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "range", "number", "float":
		return KindRange, nil
	case "bool", "boolean":
		return KindBool, nil
	case "color", "colour":
		return KindColor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrKind, s)
}

// Value is the current value of one parameter. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Number float64
	Flag   bool
	Color  world.Color
}

func (v Value) String() string {
	switch v.Kind {
	case KindRange:
		return strconv.FormatFloat(v.Number, 'g', 4, 64)
	case KindBool:
		return strconv.FormatBool(v.Flag)
	case KindColor:
		return v.Color.Hex()
	}
	return "?"
}

// Def declares a parameter. Min and Max bound range parameters; Folder groups
// rows in the control panel.
type Def struct {
	Name    string
	Kind    Kind
	Min     float64
	Max     float64
	Default Value
	Folder  string
}

// clampNumber bounds n to [Min, Max]. A zero Min and Max leaves n unbounded.
func (d Def) clampNumber(n float64) float64 {
	if d.Min == 0 && d.Max == 0 {
		return n
	}
	return Clamp(n, d.Min, d.Max)
}

// Store holds current values for a fixed set of declared parameters.
type Store struct {
	defs      []Def
	byName    map[string]int
	values    map[string]Value
	callbacks map[string][]func(Value)
}

// New returns a store with every parameter at its default. Duplicate names are rejected.
func New(defs []Def) (*Store, error) {
	s := &Store{
		byName:    make(map[string]int, len(defs)),
		values:    make(map[string]Value, len(defs)),
		callbacks: make(map[string][]func(Value)),
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, errors.New("params: empty parameter name")
		}
		if _, dup := s.byName[d.Name]; dup {
			return nil, fmt.Errorf("params: duplicate parameter %q", d.Name)
		}
		if d.Kind == KindRange && !finite(d.Default.Number) {
			return nil, fmt.Errorf("params: %q has a non-finite default", d.Name)
		}
		if d.Kind == KindRange && d.Max < d.Min {
			return nil, fmt.Errorf("params: %q has max %v below min %v", d.Name, d.Max, d.Min)
		}
		v := d.Default
		v.Kind = d.Kind
		if d.Kind == KindRange {
			v.Number = d.clampNumber(v.Number)
		}
		s.byName[d.Name] = len(s.defs)
		s.defs = append(s.defs, d)
		s.values[d.Name] = v
	}
	return s, nil
}

// Defs returns the declarations in declaration order.
func (s *Store) Defs() []Def {
	out := make([]Def, len(s.defs))
	copy(out, s.defs)
	return out
}

// Def returns the declaration for name.
func (s *Store) Def(name string) (Def, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Def{}, false
	}
	return s.defs[i], true
}

// Get returns the current value for name.
func (s *Store) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Float returns a range parameter.
func (s *Store) Float(name string) (float32, error) {
	v, err := s.lookup(name, KindRange)
	if err != nil {
		return 0, err
	}
	return float32(v.Number), nil
}

// Bool returns a bool parameter.
func (s *Store) Bool(name string) (bool, error) {
	v, err := s.lookup(name, KindBool)
	if err != nil {
		return false, err
	}
	return v.Flag, nil
}

// Color returns a color parameter.
func (s *Store) Color(name string) (world.Color, error) {
	v, err := s.lookup(name, KindColor)
	if err != nil {
		return 0, err
	}
	return v.Color, nil
}

func (s *Store) lookup(name string, want Kind) (Value, error) {
	v, ok := s.values[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	if v.Kind != want {
		return Value{}, fmt.Errorf("%w: %q is %s, not %s", ErrKind, name, v.Kind, want)
	}
	return v, nil
}

// Set stores a new value and runs the OnChange callbacks for name. Range
// values accept any finite Go number and are clamped to [Min, Max]; color
// values accept world.Color, integers or a color string.
func (s *Store) Set(name string, value any) error {
	i, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	d := s.defs[i]
	v := Value{Kind: d.Kind}
	switch d.Kind {
	case KindRange:
		n, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %q wants a number, got %T", ErrKind, name, value)
		}
		if !finite(n) {
			return fmt.Errorf("%w: %q wants a finite number, got %v", ErrKind, name, n)
		}
		v.Number = d.clampNumber(n)
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %q wants a bool, got %T", ErrKind, name, value)
		}
		v.Flag = b
	case KindColor:
		c, err := toColor(value)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrKind, name, err)
		}
		v.Color = c
	}
	s.values[name] = v
	for _, fn := range s.callbacks[name] {
		fn(v)
	}
	return nil
}

// SetString parses raw according to the declared kind and calls Set. Bools
// also accept on/off and yes/no.
func (s *Store) SetString(name, raw string) error {
	d, ok := s.Def(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	raw = strings.TrimSpace(raw)
	switch d.Kind {
	case KindRange:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrKind, name, err)
		}
		return s.Set(name, n)
	case KindBool:
		switch strings.ToLower(raw) {
		case "on", "yes":
			return s.Set(name, true)
		case "off", "no":
			return s.Set(name, false)
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrKind, name, err)
		}
		return s.Set(name, b)
	default:
		return s.Set(name, raw)
	}
}

// OnChange registers fn to run after every successful Set of name.
func (s *Store) OnChange(name string, fn func(Value)) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	s.callbacks[name] = append(s.callbacks[name], fn)
	return nil
}

// Snapshot returns a copy of every current value keyed by name.
func (s *Store) Snapshot() (map[string]Value, error) {
	out := make(map[string]Value, len(s.values))
	if err := copier.CopyWithOption(&out, s.values, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("params: snapshot: %w", err)
	}
	return out, nil
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toColor(v any) (world.Color, error) {
	switch c := v.(type) {
	case world.Color:
		return c, nil
	case uint32:
		return world.Color(c), nil
	case int:
		if c < 0 || c > 0xffffff {
			return 0, fmt.Errorf("color %#x out of range", c)
		}
		return world.Color(c), nil
	case string:
		return world.ParseColor(c)
	}
	return 0, fmt.Errorf("want a color, got %T", v)
}
