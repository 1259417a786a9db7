package smartdiff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrMaxDepth is returned when a document nests deeper than the configured
// maximum depth
var ErrMaxDepth = errors.New("maximum document depth exceeded")

// DiffConfig are any possible configuration parameters for calculating diffs
type DiffConfig struct {
	// PreferredKeys are field names tried first when aligning lists of
	// objects. defaults to DefaultPreferredKeys
	PreferredKeys []string
	// DisableJoinKeys forces positional alignment for every array
	DisableJoinKeys bool
	// MaxDepth bounds recursion. zero means unlimited
	MaxDepth int
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
	// Logger receives debug output about list alignment decisions
	Logger *slog.Logger
}

// DiffOption is a function that adjust a config, zero or more DiffOptions
// can be passed to the New function
type DiffOption func(cfg *DiffConfig)

// OptionPreferredKeys replaces the list of preferred join key names
func OptionPreferredKeys(keys ...string) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.PreferredKeys = keys
	}
}

// OptionDisableJoinKeys turns off join key inference
func OptionDisableJoinKeys() DiffOption {
	return func(cfg *DiffConfig) {
		cfg.DisableJoinKeys = true
	}
}

// OptionMaxDepth sets a nesting limit, beyond which Diff returns ErrMaxDepth
func OptionMaxDepth(depth int) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.MaxDepth = depth
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff or Report is
// called. the pointer is shared by every call made with the configured differ
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Stats = st
	}
}

// OptionLogger sets the logger used for debug output
func OptionLogger(l *slog.Logger) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Logger = l
	}
}

// Result pairs the locations that differ in each of two documents. Left
// holds paths into the left document, Right paths into the right one. the
// two sets are computed independently & needn't match in size or shape
type Result struct {
	Left  PathSet
	Right PathSet
}

// Empty reports whether no differences were found
func (r *Result) Empty() bool {
	return len(r.Left) == 0 && len(r.Right) == 0
}

func (r *Result) merge(o *Result) {
	r.Left.Merge(o.Left)
	r.Right.Merge(o.Right)
}

func newResult() *Result {
	return &Result{Left: PathSet{}, Right: PathSet{}}
}

// DeepDiff is a configured differ. a DeepDiff holds no state between calls &
// is safe for concurrent use, unless it was created with OptionSetStats:
// every Diff & Report call writes to that one Stats value, so concurrent
// callers should read stats from each returned Report instead
type DeepDiff struct {
	cfg *DiffConfig
}

// New creates a differ from the given options
func New(opts ...DiffOption) *DeepDiff {
	cfg := &DiffConfig{
		PreferredKeys: DefaultPreferredKeys,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DeepDiff{cfg: cfg}
}

// Diff computes the locations that differ between a & b. both documents are
// canonicalized first so key & element order never produce differences.
// Paths in the result address the canonical trees, render those with Render
// to map paths onto lines
func (dd *DeepDiff) Diff(ctx context.Context, a, b Value) (*Result, error) {
	ca, cb := Canonicalize(a), Canonicalize(b)
	res, err := dd.DiffCanonical(ctx, ca, cb)
	if err != nil {
		return nil, err
	}
	if st := dd.cfg.Stats; st != nil {
		st.Left = countNodes(ca)
		st.Right = countNodes(cb)
		st.LeftDiffs = len(res.Left)
		st.RightDiffs = len(res.Right)
	}
	return res, nil
}

// DiffCanonical diffs two trees that are already canonical
func (dd *DeepDiff) DiffCanonical(ctx context.Context, a, b Value) (*Result, error) {
	return dd.DiffAt(ctx, a, b, Path{}, Path{})
}

// DiffAt diffs two canonical subtrees, prefixing recorded locations with pa on
// the left and pb on the right
func (dd *DeepDiff) DiffAt(ctx context.Context, a, b Value, pa, pb Path) (*Result, error) {
	d := &diff{ctx: ctx, cfg: dd.cfg}
	return d.diff(a, b, pa, pb, len(pa))
}

// Diff computes differing locations using the default configuration
func Diff(ctx context.Context, a, b Value, opts ...DiffOption) (*Result, error) {
	return New(opts...).Diff(ctx, a, b)
}

// diff carries the per-call state of a single Diff
type diff struct {
	ctx context.Context
	cfg *DiffConfig
}

// diff dispatches on the combined kind of a & b:
//
//   - kinds differ: both locations are recorded, no recursion
//   - object/object: fields are matched by name
//   - array/array: elements are matched by join key if one exists, by
//     position otherwise
//   - scalar/scalar: unequal values record both locations
func (d *diff) diff(a, b Value, pa, pb Path, depth int) (*Result, error) {
	if d.cfg.MaxDepth > 0 && depth > d.cfg.MaxDepth {
		return nil, fmt.Errorf("%w: %d at %q", ErrMaxDepth, d.cfg.MaxDepth, pa.String())
	}

	res := newResult()
	if a.Kind() != b.Kind() {
		res.Left.Add(pa)
		res.Right.Add(pb)
		return res, nil
	}

	switch x := a.(type) {
	case Object:
		return d.diffObjects(x, b.(Object), pa, pb, depth)
	case Array:
		if err := d.ctx.Err(); err != nil {
			return nil, err
		}
		y := b.(Array)
		if !d.cfg.DisableJoinKeys {
			if key, ok := ChooseJoinKey(x, y, d.cfg.PreferredKeys); ok {
				d.cfg.Logger.Debug("aligning arrays by join key", "left", pa.String(), "right", pb.String(), "key", key)
				return d.diffArraysByKey(x, y, key, pa, pb, depth)
			}
		}
		return d.diffArraysByIndex(x, y, pa, pb, depth)
	}

	if compareCanonical(a, b) != 0 {
		res.Left.Add(pa)
		res.Right.Add(pb)
	}
	return res, nil
}

func (d *diff) diffObjects(x, y Object, pa, pb Path, depth int) (*Result, error) {
	res := newResult()
	for _, f := range x.fields {
		yv, ok := y.Get(f.Key)
		if !ok {
			res.Left.Add(pa.Key(f.Key))
			continue
		}
		sub, err := d.diff(f.Value, yv, pa.Key(f.Key), pb.Key(f.Key), depth+1)
		if err != nil {
			return nil, err
		}
		res.merge(sub)
	}
	for _, f := range y.fields {
		if !x.Has(f.Key) {
			res.Right.Add(pb.Key(f.Key))
		}
	}
	return res, nil
}

// diffArraysByKey pairs elements that share a join key value. values are
// unique per side, so each side gets a value->index map
func (d *diff) diffArraysByKey(x, y Array, key string, pa, pb Path, depth int) (*Result, error) {
	xIdx := joinIndex(x, key)
	yIdx := joinIndex(y, key)

	res := newResult()
	for i, el := range x {
		sk := joinValue(el, key)
		j, ok := yIdx[sk]
		if !ok {
			res.Left.Add(pa.Index(i))
			continue
		}
		sub, err := d.diff(el, y[j], pa.Index(i), pb.Index(j), depth+1)
		if err != nil {
			return nil, err
		}
		res.merge(sub)
	}
	for j, el := range y {
		if _, ok := xIdx[joinValue(el, key)]; !ok {
			res.Right.Add(pb.Index(j))
		}
	}
	return res, nil
}

// diffArraysByIndex aligns elements positionally. trailing elements of the
// longer array are unmatched
func (d *diff) diffArraysByIndex(x, y Array, pa, pb Path, depth int) (*Result, error) {
	if len(x) != len(y) && len(x) > 0 && len(y) > 0 {
		d.cfg.Logger.Debug("aligning arrays by position", "left", pa.String(), "right", pb.String(), "leftLen", len(x), "rightLen", len(y))
	}

	res := newResult()
	n := max(len(x), len(y))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(x):
			res.Right.Add(pb.Index(i))
		case i >= len(y):
			res.Left.Add(pa.Index(i))
		default:
			sub, err := d.diff(x[i], y[i], pa.Index(i), pb.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			res.merge(sub)
		}
	}
	return res, nil
}

func joinIndex(arr Array, key string) map[string]int {
	idx := make(map[string]int, len(arr))
	for i, el := range arr {
		idx[joinValue(el, key)] = i
	}
	return idx
}

// joinValue reads the join key of an element. ChooseJoinKey has already
// guaranteed the element is an object holding a scalar at key
func joinValue(el Value, key string) string {
	v, _ := el.(Object).Get(key)
	sk, _ := scalarKey(v)
	return sk
}
