package smartdiff

import (
	"context"

	json "github.com/goccy/go-json"
)

// Report is the complete outcome of comparing two documents: an equality
// verdict, both sides rendered in canonical form, the differing locations
// of each side, and the rendered lines those locations occupy
type Report struct {
	// Equal is the comparison verdict, Reason explains it
	Equal  bool
	Reason string

	// Left & Right are the canonical renderings of each input
	Left  *Document
	Right *Document

	// Diff holds the differing locations of each side
	Diff *Result

	// LeftLines & RightLines are the ascending line indices to highlight
	LeftLines  []int
	RightLines []int

	Stats Stats
}

// Report runs the full comparison pipeline over two parsed documents:
// the verdict comes from Compare on the inputs as given, while diffing &
// rendering work on canonical forms so both sides line up regardless of key
// or element order
func (dd *DeepDiff) Report(ctx context.Context, a, b Value) (*Report, error) {
	equal, reason := Compare(a, b)

	ca, cb := Canonicalize(a), Canonicalize(b)
	res, err := dd.DiffCanonical(ctx, ca, cb)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Equal:  equal,
		Reason: reason,
		Left:   Render(ca),
		Right:  Render(cb),
		Diff:   res,
	}
	r.LeftLines = r.Left.LinesFor(res.Left)
	r.RightLines = r.Right.LinesFor(res.Right)
	r.Stats = Stats{
		Left:       countNodes(ca),
		Right:      countNodes(cb),
		LeftDiffs:  len(res.Left),
		RightDiffs: len(res.Right),
		LeftLines:  len(r.LeftLines),
		RightLines: len(r.RightLines),
	}
	if dd.cfg.Stats != nil {
		*dd.cfg.Stats = r.Stats
	}
	return r, nil
}

// CompareDocuments builds a Report using a differ configured with opts
func CompareDocuments(ctx context.Context, a, b Value, opts ...DiffOption) (*Report, error) {
	return New(opts...).Report(ctx, a, b)
}

type reportSide struct {
	Lines     []string `json:"lines"`
	Paths     []string `json:"paths"`
	Highlight []int    `json:"highlight"`
}

type reportJSON struct {
	Equal  bool       `json:"equal"`
	Reason string     `json:"reason"`
	Left   reportSide `json:"left"`
	Right  reportSide `json:"right"`
	Stats  Stats      `json:"stats"`
}

// MarshalJSON encodes the report with paths as JSON pointers
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Equal:  r.Equal,
		Reason: r.Reason,
		Left: reportSide{
			Lines:     nonNilStrings(r.Left.Lines),
			Paths:     r.Diff.Left.Strings(),
			Highlight: nonNilInts(r.LeftLines),
		},
		Right: reportSide{
			Lines:     nonNilStrings(r.Right.Lines),
			Paths:     r.Diff.Right.Strings(),
			Highlight: nonNilInts(r.RightLines),
		},
		Stats: r.Stats,
	})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(i []int) []int {
	if i == nil {
		return []int{}
	}
	return i
}
