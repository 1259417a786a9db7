package smartdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	doc := Render(Canonicalize(mustParse(t, `{"b":[1,{"c":null}],"a":"x"}`)))

	expectLines := []string{
		`{`,
		`  "a": "x",`,
		`  "b":`,
		`  [`,
		`    {`,
		`      "c": null`,
		`    },`,
		`    1`,
		`  ]`,
		`}`,
	}
	if diff := cmp.Diff(expectLines, doc.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	expectIndex := map[string][]int{
		"":       {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		"/a":     {1},
		"/b":     {2, 3, 4, 5, 6, 7, 8},
		"/b/0":   {4, 5, 6},
		"/b/0/c": {5},
		"/b/1":   {7},
	}
	if diff := cmp.Diff(expectIndex, doc.index); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderScalars(t *testing.T) {
	cases := []struct {
		doc    string
		expect []string
	}{
		{`"hi"`, []string{`"hi"`}},
		{`null`, []string{`null`}},
		{`{}`, []string{`{`, `}`}},
		{`[]`, []string{`[`, `]`}},
		{`["<a&b>"]`, []string{`[`, `  "<a&b>"`, `]`}},
		{`[1.50, 1e3]`, []string{`[`, `  1.50,`, `  1e3`, `]`}},
		{`{"q\"uote":"line\nbreak"}`, []string{`{`, `  "q\"uote": "line\nbreak"`, `}`}},
	}
	for _, c := range cases {
		doc := Render(Canonicalize(mustParse(t, c.doc)))
		if diff := cmp.Diff(c.expect, doc.Lines); diff != "" {
			t.Errorf("%s: lines mismatch (-want +got):\n%s", c.doc, diff)
		}
		if diff := cmp.Diff(allLines(len(c.expect)), doc.LinesAt(Path{})); diff != "" {
			t.Errorf("%s: root must own every line (-want +got):\n%s", c.doc, diff)
		}
	}
}

func allLines(n int) []int {
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i
	}
	return lines
}

func TestRenderEscapedKeys(t *testing.T) {
	doc := Render(mustParse(t, `{"a/b":{"~":[true]}}`))
	inner := Path{}.Key("a/b").Key("~")

	if diff := cmp.Diff([]int{3, 4, 5, 6}, doc.LinesAt(inner)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5}, doc.LinesAt(inner.Index(0))); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	var got []string
	for _, p := range doc.Paths() {
		got = append(got, p.String())
	}
	expect := []string{"", "/a~1b", "/a~1b/~0", "/a~1b/~0/0"}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderContainment(t *testing.T) {
	doc := Render(Canonicalize(mustParse(t, `{
		"a": [{"id":1,"tags":["x","y"],"meta":{"deep":[[1],[2,{"z":null}]]}}, 3, "s"],
		"b": {"c": {"d": {}}, "e": []},
		"f": true
	}`)))

	paths := doc.Paths()
	if len(paths) < 10 {
		t.Fatalf("expected a location per node, got %d", len(paths))
	}
	for _, p := range paths {
		lines := map[int]bool{}
		for _, l := range doc.LinesAt(p) {
			lines[l] = true
		}
		for _, q := range paths {
			if !q.HasPrefix(p) {
				continue
			}
			for _, l := range doc.LinesAt(q) {
				if !lines[l] {
					t.Errorf("line %d of %q is missing from ancestor %q", l, q, p)
				}
			}
		}
	}
}

func TestLinesFor(t *testing.T) {
	doc := Render(Canonicalize(mustParse(t, `{"a":{"b":1,"c":2},"d":3}`)))
	// {
	//   "a":
	//   {
	//     "b": 1,
	//     "c": 2
	//   },
	//   "d": 3
	// }
	got := doc.LinesFor(NewPathSet(Path{}.Key("d"), Path{}.Key("a").Key("c"), Path{}.Key("missing")))
	if diff := cmp.Diff([]int{4, 6}, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if !doc.Has(Path{}.Key("a").Key("b")) || doc.Has(Path{}.Key("b")) {
		t.Errorf("Has reported wrong membership")
	}
}
