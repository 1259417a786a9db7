package smartdiff

import (
	"context"
	stdjson "encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestReportJoinedRecords(t *testing.T) {
	a := mustParse(t, `{"x":[{"id":1,"v":"a"},{"id":2,"v":"b"}]}`)
	b := mustParse(t, `{"x":[{"id":2,"v":"b"},{"id":1,"v":"z"}]}`)

	st := &Stats{}
	r, err := CompareDocuments(context.Background(), a, b, OptionSetStats(st))
	if err != nil {
		t.Fatal(err)
	}

	if r.Equal {
		t.Errorf("expected documents to differ")
	}
	if r.Reason != ReasonContentDiffers {
		t.Errorf("reason: want %q, got %q", ReasonContentDiffers, r.Reason)
	}
	if diff := cmp.Diff([]string{"/x/0/v"}, r.Diff.Left.Strings()); diff != "" {
		t.Errorf("left locations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/x/0/v"}, r.Diff.Right.Strings()); diff != "" {
		t.Errorf("right locations mismatch (-want +got):\n%s", diff)
	}

	// {
	//   "x":
	//   [
	//     {
	//       "id": 1,
	//       "v": "a"
	//     },
	//     ...
	if diff := cmp.Diff([]int{5}, r.LeftLines); diff != "" {
		t.Errorf("left lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5}, r.RightLines); diff != "" {
		t.Errorf("right lines mismatch (-want +got):\n%s", diff)
	}
	if r.Left.Lines[5] != `      "v": "a"` || r.Right.Lines[5] != `      "v": "z"` {
		t.Errorf("highlighted wrong lines: %q / %q", r.Left.Lines[5], r.Right.Lines[5])
	}

	expectStats := Stats{Left: 8, Right: 8, LeftDiffs: 1, RightDiffs: 1, LeftLines: 1, RightLines: 1}
	if diff := cmp.Diff(expectStats, r.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(expectStats, *st); diff != "" {
		t.Errorf("option stats mismatch (-want +got):\n%s", diff)
	}
}

func TestReportReorderedEqual(t *testing.T) {
	r, err := CompareDocuments(context.Background(), mustParse(t, `[1,2,3]`), mustParse(t, `[3,2,1]`))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal || r.Reason != ReasonEqual {
		t.Errorf("expected equal, got %t %q", r.Equal, r.Reason)
	}
	if !r.Diff.Empty() {
		t.Errorf("expected no differing locations, got %v / %v", r.Diff.Left.Strings(), r.Diff.Right.Strings())
	}
	if len(r.LeftLines) != 0 || len(r.RightLines) != 0 {
		t.Errorf("expected no highlighted lines")
	}
	if diff := cmp.Diff(r.Left.Lines, r.Right.Lines); diff != "" {
		t.Errorf("canonical renderings differ (-left +right):\n%s", diff)
	}
}

func TestReportWholeElementHighlight(t *testing.T) {
	a := mustParse(t, `[{"id":1,"v":"a"},{"id":2,"v":"b"}]`)
	b := mustParse(t, `[{"id":1,"v":"a"}]`)

	r, err := CompareDocuments(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if r.Reason != "array length mismatch: 2 vs 1" {
		t.Errorf("unexpected reason %q", r.Reason)
	}
	// [
	//   {
	//     "id": 1,
	//     "v": "a"
	//   },
	//   {
	//     "id": 2,
	//     "v": "b"
	//   }
	// ]
	if diff := cmp.Diff([]int{5, 6, 7, 8}, r.LeftLines); diff != "" {
		t.Errorf("left lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int(nil), r.RightLines, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("right lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReportMarshalJSON(t *testing.T) {
	r, err := CompareDocuments(context.Background(), mustParse(t, `{"a":1}`), mustParse(t, `{"a":2}`))
	if err != nil {
		t.Fatal(err)
	}
	data, err := stdjson.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]interface{}
	if err := stdjson.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	expect := map[string]interface{}{
		"equal":  false,
		"reason": ReasonContentDiffers,
		"left": map[string]interface{}{
			"lines":     []interface{}{"{", `  "a": 1`, "}"},
			"paths":     []interface{}{"/a"},
			"highlight": []interface{}{float64(1)},
		},
		"right": map[string]interface{}{
			"lines":     []interface{}{"{", `  "a": 2`, "}"},
			"paths":     []interface{}{"/a"},
			"highlight": []interface{}{float64(1)},
		},
		"stats": map[string]interface{}{
			"leftNodes":  float64(2),
			"rightNodes": float64(2),
			"leftDiffs":  float64(1),
			"rightDiffs": float64(1),
			"leftLines":  float64(1),
			"rightLines": float64(1),
		},
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}
