package smartdiff

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// Kind defines all of the atoms in our universe, or the types of data we
// will encounter while comparing documents
type Kind uint8

const (
	// KindNull is the JSON null literal
	KindNull Kind = iota
	// KindBool is true or false
	KindBool
	// KindNumber is any JSON number, integer or floating point
	KindNumber
	// KindString is a JSON string
	KindString
	// KindArray is an ordered sequence of values
	KindArray
	// KindObject is a mapping of unique string keys to values
	KindObject
)

// String implements the stringer interface for Kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a node in a document tree. The set of implementations is closed:
// Null, Bool, Number, String, Array and Object. Values are never mutated once
// constructed, callers must not modify slices returned by accessors.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null value
type Null struct{}

// Bool is a JSON boolean
type Bool bool

// String is a JSON string
type String string

// Number is a JSON number. it keeps the literal it was parsed from so
// rendering reproduces the input, while ordering & equality use the numeric
// value
type Number struct {
	f   float64
	lit string
}

// Array is an ordered sequence of values
type Array []Value

// Field is a single key/value pair of an Object
type Field struct {
	Key   string
	Value Value
}

// Object is a mapping of unique string keys to values. fields are always held
// in lexicographic key order, regardless of construction order
type Object struct {
	fields []Field
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// NewNumber creates a number from a float. f must be finite, NaN & ±Inf have
// no JSON representation
func NewNumber(f float64) Number {
	return Number{f: f, lit: formatFloat(f)}
}

// ParseNumber creates a number from a JSON number literal. literals beyond
// float64 range are accepted: Float64 reports them as ±Inf (or zero) while
// ordering & equality still use the exact literal value, so 1e400 < 2e400
func ParseNumber(lit string) (Number, error) {
	if !isNumberLiteral(lit) {
		return Number{}, fmt.Errorf("invalid number literal %q", lit)
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Number{}, fmt.Errorf("invalid number literal %q", lit)
		}
	}
	return Number{f: f, lit: lit}, nil
}

// isNumberLiteral reports whether s matches the JSON number grammar
func isNumberLiteral(s string) bool {
	digits := func(i int) int {
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i
	}

	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i >= len(s):
		return false
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		i = digits(i)
	default:
		return false
	}

	if i < len(s) && s[i] == '.' {
		j := digits(i + 1)
		if j == i+1 {
			return false
		}
		i = j
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := digits(i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(s)
}

// Float64 returns the numeric value of n
func (n Number) Float64() float64 { return n.f }

// String returns the literal representation of n
func (n Number) String() string {
	if n.lit == "" {
		return formatFloat(n.f)
	}
	return n.lit
}

// isZero reports whether n is positive or negative zero. literals too small
// for a float64 aren't zero
func (n Number) isZero() bool { return parseDecimal(n.String()).sign() == 0 }

// formatFloat matches encoding/json's float formatting
func formatFloat(f float64) string {
	abs := math.Abs(f)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	return strconv.FormatFloat(f, fmtByte, -1, 64)
}

// NewObject creates an object from a list of fields. fields are sorted by key,
// when a key is repeated the last field wins
func NewObject(fields ...Field) Object {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	deduped := sorted[:0]
	for _, f := range sorted {
		if l := len(deduped); l > 0 && deduped[l-1].Key == f.Key {
			deduped[l-1] = f
			continue
		}
		deduped = append(deduped, f)
	}
	return Object{fields: deduped}
}

// ObjectFromMap creates an object from a map of values
func ObjectFromMap(m map[string]Value) Object {
	fields := make([]Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, Field{Key: k, Value: v})
	}
	return NewObject(fields...)
}

// Len returns the number of fields in o
func (o Object) Len() int { return len(o.fields) }

// Fields lists key/value pairs in lexicographic key order
func (o Object) Fields() []Field { return o.fields }

// Keys lists field names in lexicographic order
func (o Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored at key
func (o Object) Get(key string) (Value, bool) {
	i := sort.Search(len(o.fields), func(i int) bool { return o.fields[i].Key >= key })
	if i < len(o.fields) && o.fields[i].Key == key {
		return o.fields[i].Value, true
	}
	return nil, false
}

// Has reports whether o contains a field named key
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// isScalar reports whether v is a leaf value
func isScalar(v Value) bool {
	switch v.(type) {
	case Array, Object:
		return false
	}
	return true
}

// numberLiteral covers json.Number-like types from any decoder
type numberLiteral interface {
	Float64() (float64, error)
	String() string
}

// FromInterface converts the go types created by unmarshaling from JSON (or
// YAML) into a document tree. supported types are:
//
//	map[string]interface{}, map[interface{}]interface{} (string keys only)
//	[]interface{}
//	string, bool, nil, all int, uint & float types, json.Number
//
// any other type is an error
func FromInterface(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return floatNumber(x)
	case float32:
		return floatNumber(float64(x))
	case int:
		return intNumber(int64(x)), nil
	case int8:
		return intNumber(int64(x)), nil
	case int16:
		return intNumber(int64(x)), nil
	case int32:
		return intNumber(int64(x)), nil
	case int64:
		return intNumber(x), nil
	case uint:
		return uintNumber(uint64(x)), nil
	case uint8:
		return uintNumber(uint64(x)), nil
	case uint16:
		return uintNumber(uint64(x)), nil
	case uint32:
		return uintNumber(uint64(x)), nil
	case uint64:
		return uintNumber(x), nil
	case json.Number:
		return ParseNumber(x.String())
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case []interface{}:
		arr := make(Array, len(x))
		for i, el := range x {
			val, err := FromInterface(el)
			if err != nil {
				return nil, fmt.Errorf("%d: %w", i, err)
			}
			arr[i] = val
		}
		return arr, nil
	case map[string]interface{}:
		fields := make([]Field, 0, len(x))
		for k, el := range x {
			val, err := FromInterface(el)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			fields = append(fields, Field{Key: k, Value: val})
		}
		return NewObject(fields...), nil
	case map[interface{}]interface{}:
		fields := make([]Field, 0, len(x))
		for k, el := range x {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported object key type: %T", k)
			}
			val, err := FromInterface(el)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			fields = append(fields, Field{Key: key, Value: val})
		}
		return NewObject(fields...), nil
	case numberLiteral:
		return ParseNumber(x.String())
	}
	return nil, fmt.Errorf("unexpected type: %T", v)
}

func floatNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("unsupported number: %v", f)
	}
	return NewNumber(f), nil
}

func intNumber(i int64) Number {
	return Number{f: float64(i), lit: strconv.FormatInt(i, 10)}
}

func uintNumber(u uint64) Number {
	return Number{f: float64(u), lit: strconv.FormatUint(u, 10)}
}

// MustFromInterface is FromInterface that panics on error, intended for
// literals in tests & examples
func MustFromInterface(v interface{}) Value {
	val, err := FromInterface(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Interface converts a document tree back into plain go types, the inverse of
// FromInterface. numbers become json.Number to preserve their literal
func Interface(v Value) interface{} {
	switch x := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(x)
	case String:
		return string(x)
	case Number:
		return json.Number(x.String())
	case Array:
		arr := make([]interface{}, len(x))
		for i, el := range x {
			arr[i] = Interface(el)
		}
		return arr
	case Object:
		m := make(map[string]interface{}, x.Len())
		for _, f := range x.fields {
			m[f.Key] = Interface(f.Value)
		}
		return m
	}
	return nil
}

// countNodes returns the total number of values in a tree, including v
func countNodes(v Value) int {
	switch x := v.(type) {
	case Array:
		n := 1
		for _, el := range x {
			n += countNodes(el)
		}
		return n
	case Object:
		n := 1
		for _, f := range x.fields {
			n += countNodes(f.Value)
		}
		return n
	}
	return 1
}
