package smartdiff

import (
	"cmp"
	"math"
	"sort"
	"strconv"
	"strings"
)

// rank fixes the sorting order across kinds. The ranking carries no meaning
// beyond making canonical output reproducible:
//
//	boolean < object < array < null < number < string
func rank(k Kind) int {
	switch k {
	case KindBool:
		return 0
	case KindObject:
		return 1
	case KindArray:
		return 2
	case KindNull:
		return 3
	case KindNumber:
		return 4
	case KindString:
		return 5
	}
	return 100
}

// Order compares the canonical keys of two values, returning -1, 0 or +1.
// Order imposes a strict total order over all values: kinds are ranked first,
// then values of the same kind are compared by their natural ordering. Key
// and element order in a or b never affect the result
func Order(a, b Value) int {
	return compareCanonical(Canonicalize(a), Canonicalize(b))
}

// Equal reports whether a and b hold the same content, ignoring object key
// order and array element order
func Equal(a, b Value) bool {
	return Order(a, b) == 0
}

// compareCanonical is Order for values that are already in canonical form
func compareCanonical(a, b Value) int {
	ra, rb := rank(a.Kind()), rank(b.Kind())
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch x := a.(type) {
	case Bool:
		y := b.(Bool)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case Number:
		return compareNumbers(x, b.(Number))
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case Array:
		y := b.(Array)
		for i := 0; i < len(x) && i < len(y); i++ {
			if c := compareCanonical(x[i], y[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x), len(y))
	case Object:
		y := b.(Object)
		for i := 0; i < len(x.fields) && i < len(y.fields); i++ {
			if c := strings.Compare(x.fields[i].Key, y.fields[i].Key); c != 0 {
				return c
			}
			if c := compareCanonical(x.fields[i].Value, y.fields[i].Value); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x.fields), len(y.fields))
	}
	// null
	return 0
}

// compareNumbers orders by exact numeric value. float64 rounding is
// monotonic, so differing floats already decide the order & only literals
// that round to the same float are compared digit by digit
func compareNumbers(a, b Number) int {
	if c := cmp.Compare(a.f, b.f); c != 0 {
		return c
	}
	return parseDecimal(a.String()).cmp(parseDecimal(b.String()))
}

// decimal is the exact value of a number literal: 0.digits * 10^exp, negated
// when neg is set. digits has no leading or trailing zeros, zero has no digits
// and is never negative
type decimal struct {
	neg    bool
	digits string
	exp    int64
}

// maxDecimalExp clamps exponents too large to represent, such literals only
// need to order before or after every reasonable number
const maxDecimalExp = 1 << 40

func parseDecimal(lit string) decimal {
	var d decimal
	s := lit
	if strings.HasPrefix(s, "-") {
		d.neg = true
		s = s[1:]
	}

	var exp int64
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.ParseInt(strings.TrimPrefix(s[i+1:], "+"), 10, 64)
		if err != nil || e > maxDecimalExp || e < -maxDecimalExp {
			e = maxDecimalExp
			if strings.HasPrefix(s[i+1:], "-") {
				e = -maxDecimalExp
			}
		}
		exp = e
		s = s[:i]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	digits := intPart + fracPart
	point := int64(len(intPart))

	trimmed := strings.TrimLeft(digits, "0")
	point -= int64(len(digits) - len(trimmed))
	d.digits = strings.TrimRight(trimmed, "0")
	if d.digits == "" {
		return decimal{}
	}
	d.exp = point + exp
	return d
}

func (d decimal) sign() int {
	switch {
	case d.digits == "":
		return 0
	case d.neg:
		return -1
	}
	return 1
}

func (d decimal) cmp(o decimal) int {
	sa, sb := d.sign(), o.sign()
	if sa != sb || sa == 0 {
		return cmp.Compare(sa, sb)
	}
	c := cmp.Compare(d.exp, o.exp)
	if c == 0 {
		// no leading zeros, so digit strings compare like fractions
		c = strings.Compare(d.digits, o.digits)
	}
	return c * sa
}

// String returns a normalized form, equal for two literals exactly when they
// hold the same value
func (d decimal) String() string {
	if d.digits == "" {
		return "0"
	}
	sign := "+"
	if d.neg {
		sign = "-"
	}
	return sign + "0." + d.digits + "e" + strconv.FormatInt(d.exp, 10)
}

// Canonicalize converts v into a deterministic, order-independent normal form.
// object fields are ordered by key, array elements are ordered by canonical
// key (duplicates are kept), negative zero becomes zero. v is not modified
func Canonicalize(v Value) Value {
	switch x := v.(type) {
	case Object:
		fields := make([]Field, len(x.fields))
		for i, f := range x.fields {
			fields[i] = Field{Key: f.Key, Value: Canonicalize(f.Value)}
		}
		return Object{fields: fields}
	case Array:
		arr := make(Array, len(x))
		for i, el := range x {
			arr[i] = Canonicalize(el)
		}
		sort.SliceStable(arr, func(i, j int) bool {
			return compareCanonical(arr[i], arr[j]) < 0
		})
		return arr
	case Number:
		if x.isZero() && (math.Signbit(x.f) || strings.HasPrefix(x.lit, "-")) {
			return NewNumber(0)
		}
		return x
	case nil:
		return Null{}
	}
	return v
}

// Cardinality returns the number of fields of an object, the number of
// elements of an array, and 1 for any scalar, including null
func Cardinality(v Value) int {
	switch x := v.(type) {
	case Object:
		return x.Len()
	case Array:
		return len(x)
	}
	return 1
}
