package pipeline

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Kind discriminates the closed set of shapes a raw record value can take.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a JSON-like value: null, bool, number, string, array or object.
// Raw records are decoded into this type so every later transform is a
// total structural recursion instead of type switches over `any`.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
	Arr  []Value
	Obj  map[string]Value
}

func Null() Value             { return Value{Kind: KindNull} }
func String(s string) Value   { return Value{Kind: KindString, Str: s} }
func Number(f float64) Value  { return Value{Kind: KindNumber, Num: f} }
func Boolean(b bool) Value    { return Value{Kind: KindBool, Bool: b} }
func Array(vs ...Value) Value { return Value{Kind: KindArray, Arr: vs} }
func Object(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: KindObject, Obj: m}
}

// FromAny converts a decoded JSON/YAML value into a Value. Unsupported leaf
// types collapse to their string form rather than failing.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Boolean(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}
		return Number(f)
	case string:
		return String(t)
	case []any:
		arr := make([]Value, 0, len(t))
		for _, el := range t {
			arr = append(arr, FromAny(el))
		}
		return Value{Kind: KindArray, Arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, el := range t {
			obj[k] = FromAny(el)
		}
		return Object(obj)
	case map[any]any:
		obj := make(map[string]Value, len(t))
		for k, el := range t {
			obj[fmt.Sprint(k)] = FromAny(el)
		}
		return Object(obj)
	default:
		return String(fmt.Sprint(t))
	}
}

// Field looks a key up on an object value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	f, ok := v.Obj[name]
	return f, ok
}

// Int reports the value as an integer when it is a whole number.
func (v Value) Int() (int, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	if v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	return int(v.Num), true
}

// Trimmed trims every string leaf: arrays map element-wise, objects map
// value-wise, other scalars pass through unchanged.
func (v Value) Trimmed() Value {
	switch v.Kind {
	case KindString:
		return String(strings.TrimSpace(v.Str))
	case KindArray:
		arr := make([]Value, len(v.Arr))
		for i, el := range v.Arr {
			arr[i] = el.Trimmed()
		}
		return Value{Kind: KindArray, Arr: arr}
	case KindObject:
		obj := make(map[string]Value, len(v.Obj))
		for k, el := range v.Obj {
			obj[k] = el.Trimmed()
		}
		return Object(obj)
	default:
		return v
	}
}

// Equal compares two values structurally.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindNumber:
		return v.Num == o.Num
	case KindString:
		return v.Str == o.Str
	case KindArray:
		if len(v.Arr) != len(o.Arr) {
			return false
		}
		for i := range v.Arr {
			if !v.Arr[i].Equal(o.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Obj) != len(o.Obj) {
			return false
		}
		for k, el := range v.Obj {
			other, ok := o.Obj[k]
			if !ok || !el.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}
