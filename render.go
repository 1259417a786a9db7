package smartdiff

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// indentWidth is the number of spaces per nesting level of rendered output
const indentWidth = 2

// Document is a tree rendered as stable, line-indexed text. Every location in
// the tree maps to the set of lines it occupies. a container's line set holds
// its own bracket lines plus every line of everything it contains, so a
// path's lines are always a subset of each of its ancestors' lines
type Document struct {
	// Lines of rendered output, without trailing newlines
	Lines []string

	index map[string][]int
	paths map[string]Path
}

// Render serializes v to indented text, recording the lines each location
// spans. v should already be canonical (see Canonicalize) so that equivalent
// documents render identically
func Render(v Value) *Document {
	r := &renderer{
		doc: &Document{
			index: map[string][]int{},
			paths: map[string]Path{},
		},
	}
	r.write(v, 0, []owner{{path: Path{}, key: ""}}, true)
	return r.doc
}

// Text returns the rendered document as a single newline-joined string
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// LinesAt returns the ascending line indices occupied by the location at p.
// locations that don't exist in the document have no lines
func (d *Document) LinesAt(p Path) []int {
	return d.index[p.String()]
}

// Has reports whether p addresses a location in the document
func (d *Document) Has(p Path) bool {
	_, ok := d.index[p.String()]
	return ok
}

// Paths lists every location of the document in document order
func (d *Document) Paths() []Path {
	ps := make(PathSet, len(d.paths))
	for k, p := range d.paths {
		ps[k] = p
	}
	return ps.Sorted()
}

// LinesFor resolves a set of locations to the ascending, de-duplicated line
// indices they occupy. paths missing from the document are skipped
func (d *Document) LinesFor(paths PathSet) []int {
	seen := map[int]bool{}
	var lines []int
	for key := range paths {
		for _, l := range d.index[key] {
			if !seen[l] {
				seen[l] = true
				lines = append(lines, l)
			}
		}
	}
	sort.Ints(lines)
	return lines
}

// renderer writes lines to a document. owners is the stack of locations a
// line belongs to: the innermost first, then every enclosing container up to
// the root
type renderer struct {
	doc *Document
}

// owner is a location paired with its JSON pointer
type owner struct {
	path Path
	key  string
}

func (r *renderer) emit(line string, owners []owner) {
	idx := len(r.doc.Lines)
	r.doc.Lines = append(r.doc.Lines, line)
	for _, o := range owners {
		// lines are emitted in order, so each index list stays sorted
		if l := r.doc.index[o.key]; len(l) == 0 || l[len(l)-1] != idx {
			r.doc.index[o.key] = append(l, idx)
		}
		if _, ok := r.doc.paths[o.key]; !ok {
			r.doc.paths[o.key] = o.path
		}
	}
}

// write renders v at the given indent level. owners[0] is the location of v
func (r *renderer) write(v Value, indent int, owners []owner, last bool) {
	pad := strings.Repeat(" ", indent)
	path := owners[0].path

	switch x := v.(type) {
	case Object:
		r.emit(pad+"{", owners)
		childPad := strings.Repeat(" ", indent+indentWidth)
		for i, f := range x.fields {
			lastField := i == len(x.fields)-1
			childOwners := withOwner(path.Key(f.Key), owners[0].key+"/"+pointerEscaper.Replace(f.Key), owners)
			key := quote(f.Key)
			if isScalar(f.Value) {
				r.emit(childPad+key+": "+scalarText(f.Value)+sep(lastField), childOwners)
				continue
			}
			r.emit(childPad+key+":", childOwners)
			r.write(f.Value, indent+indentWidth, childOwners, lastField)
		}
		r.emit(pad+"}"+sep(last), owners)
	case Array:
		r.emit(pad+"[", owners)
		childPad := strings.Repeat(" ", indent+indentWidth)
		for i, el := range x {
			lastEl := i == len(x)-1
			childOwners := withOwner(path.Index(i), owners[0].key+"/"+strconv.Itoa(i), owners)
			if isScalar(el) {
				r.emit(childPad+scalarText(el)+sep(lastEl), childOwners)
				continue
			}
			r.write(el, indent+indentWidth, childOwners, lastEl)
		}
		r.emit(pad+"]"+sep(last), owners)
	default:
		r.emit(pad+scalarText(v)+sep(last), owners)
	}
}

func withOwner(p Path, key string, owners []owner) []owner {
	o := make([]owner, 0, len(owners)+1)
	o = append(o, owner{path: p, key: key})
	return append(o, owners...)
}

func sep(last bool) string {
	if last {
		return ""
	}
	return ","
}

func scalarText(v Value) string {
	switch x := v.(type) {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(x))
	case Number:
		return x.String()
	case String:
		return quote(string(x))
	}
	return ""
}

// quote encodes s as a JSON string literal without HTML escaping
func quote(s string) string {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
