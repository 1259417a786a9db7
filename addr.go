package smartdiff

import (
	"sort"
	"strconv"
	"strings"
)

// Addr is a single segment of a Path: either an object key or an array index
type Addr interface {
	// Value returns the underlying key or index
	Value() interface{}
	// String returns the segment as it appears in a JSON pointer, unescaped
	String() string
	// Eq reports whether two addresses are the same segment
	Eq(b Addr) bool
}

// StringAddr is an object key
type StringAddr string

var _ Addr = StringAddr("")

// Value returns the key as a string
func (p StringAddr) Value() interface{} { return string(p) }

// String implements the Addr interface
func (p StringAddr) String() string { return string(p) }

// Eq tests for equality with another address
func (p StringAddr) Eq(b Addr) bool {
	sa, ok := b.(StringAddr)
	return ok && sa == p
}

// IndexAddr is an array index
type IndexAddr int

var _ Addr = IndexAddr(0)

// Value returns the index as an int
func (p IndexAddr) Value() interface{} { return int(p) }

// String implements the Addr interface
func (p IndexAddr) String() string { return strconv.Itoa(int(p)) }

// Eq tests for equality with another address
func (p IndexAddr) Eq(b Addr) bool {
	ia, ok := b.(IndexAddr)
	return ok && ia == p
}

// Path addresses a unique location inside one document tree. the empty path
// is the root. paths are per-side: a path into the left document says nothing
// about the right one
type Path []Addr

// Child returns a new path extended by a, never sharing backing storage with p
func (p Path) Child(a Addr) Path {
	ch := make(Path, len(p)+1)
	copy(ch, p)
	ch[len(p)] = a
	return ch
}

// Key extends p by an object key
func (p Path) Key(key string) Path { return p.Child(StringAddr(key)) }

// Index extends p by an array index
func (p Path) Index(i int) Path { return p.Child(IndexAddr(i)) }

// Eq reports whether two paths address the same location
func (p Path) Eq(b Path) bool {
	if len(p) != len(b) {
		return false
	}
	for i := range p {
		if !p[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of, or equal to p
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Eq(prefix)
}

// String renders the path as an RFC 6901 JSON pointer. the root is ""
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(a.String()))
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// MarshalText encodes the path as a JSON pointer
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// comparePaths orders paths segment-wise, indices before keys, indices
// numerically, keys lexicographically, shorter prefixes first
func comparePaths(a, b Path) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ai, aIsIdx := a[i].(IndexAddr)
		bi, bIsIdx := b[i].(IndexAddr)
		switch {
		case aIsIdx && bIsIdx:
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
		case aIsIdx:
			return -1
		case bIsIdx:
			return 1
		default:
			if c := strings.Compare(a[i].String(), b[i].String()); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// PathSet is a set of paths into a single document, keyed by JSON pointer.
// within one tree a pointer identifies exactly one location
type PathSet map[string]Path

// NewPathSet creates a set from a list of paths
func NewPathSet(paths ...Path) PathSet {
	s := PathSet{}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p into the set
func (s PathSet) Add(p Path) { s[p.String()] = p }

// Has reports whether p is in the set
func (s PathSet) Has(p Path) bool {
	_, ok := s[p.String()]
	return ok
}

// Merge adds all paths in o to s
func (s PathSet) Merge(o PathSet) {
	for k, p := range o {
		s[k] = p
	}
}

// Sorted lists paths in document order
func (s PathSet) Sorted() []Path {
	paths := make([]Path, 0, len(s))
	for _, p := range s {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return comparePaths(paths[i], paths[j]) < 0 })
	return paths
}

// Strings lists the JSON pointers of the set in document order
func (s PathSet) Strings() []string {
	sorted := s.Sorted()
	strs := make([]string, len(sorted))
	for i, p := range sorted {
		strs[i] = p.String()
	}
	return strs
}
