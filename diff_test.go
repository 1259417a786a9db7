package smartdiff

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type TestCase struct {
	description string   // description of what test is checking
	src, dst    string   // express test cases as json strings
	left, right []string // expected differing locations as JSON pointers
}

func RunTestCases(t *testing.T, cases []TestCase, opts ...DiffOption) {
	var (
		dd  = New(opts...)
		ctx = context.Background()
	)

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			src := mustParse(t, c.src)
			dst := mustParse(t, c.dst)

			res, err := dd.Diff(ctx, src, dst)
			if err != nil {
				t.Fatalf("Diff error: %s", err)
			}

			if diff := cmp.Diff(c.left, res.Left.Strings(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("left locations mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.right, res.Right.Strings(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("right locations mismatch (-want +got):\n%s", diff)
			}

			equal, _ := Compare(src, dst)
			if res.Empty() != equal && Cardinality(src) == Cardinality(dst) && src.Kind() == dst.Kind() {
				t.Errorf("diff & compare disagree: empty diff %t, equal %t", res.Empty(), equal)
			}
		})
	}
}

func TestBasicDiffing(t *testing.T) {
	cases := []TestCase{
		{
			"reordered array",
			`[1,2,3]`,
			`[3,2,1]`,
			nil, nil,
		},
		{
			"reordered keys",
			`{"a":1,"b":{"c":[true,false]}}`,
			`{"b":{"c":[false,true]},"a":1}`,
			nil, nil,
		},
		{
			"scalar change object",
			`{"a":1,"b":true}`,
			`{"a":2,"b":true}`,
			[]string{"/a"}, []string{"/a"},
		},
		{
			"delete from object",
			`{"a":[false],"b":[2],"c":[3]}`,
			`{"a":[false],"c":[3]}`,
			[]string{"/b"}, nil,
		},
		{
			"insert into object",
			`{"a":[1]}`,
			`{"a":[1],"b":[2]}`,
			nil, []string{"/b"},
		},
		{
			"key change case",
			`{"a":[1],"b":[2]}`,
			`{"A":[1],"b":[2]}`,
			[]string{"/a"}, []string{"/A"},
		},
		{
			"kind change",
			`{"a":[0,1,2]}`,
			`{"a":{"foo":[0,1,2]}}`,
			[]string{"/a"}, []string{"/a"},
		},
		{
			"root kind change",
			`[]`,
			`{}`,
			[]string{""}, []string{""},
		},
		{
			"insert into array",
			`[1,2]`,
			`[1,2,3]`,
			nil, []string{"/2"},
		},
		{
			"positional change & insert",
			`[1,5]`,
			`[1,2,3]`,
			[]string{"/1"}, []string{"/1", "/2"},
		},
		{
			"escaped keys",
			`{"a/b":{"c~d":1}}`,
			`{"a/b":{"c~d":2}}`,
			[]string{"/a~1b/c~0d"}, []string{"/a~1b/c~0d"},
		},
	}

	RunTestCases(t, cases)
}

func TestJoinKeyDiffing(t *testing.T) {
	cases := []TestCase{
		{
			"records matched by id",
			`{"x":[{"id":1,"v":"a"},{"id":2,"v":"b"}]}`,
			`{"x":[{"id":2,"v":"b"},{"id":1,"v":"z"}]}`,
			[]string{"/x/0/v"}, []string{"/x/0/v"},
		},
		{
			"unmatched records flagged whole",
			`{"x":[{"id":1,"v":"a"},{"id":2,"v":"b"}]}`,
			`{"x":[{"id":2,"v":"b"},{"id":3,"v":"c"}]}`,
			[]string{"/x/0"}, []string{"/x/1"},
		},
		{
			"paired elements keep each side's index",
			`[{"a":"z","id":2},{"a":"y","id":1}]`,
			`[{"a":"x","id":2},{"a":"y","id":1}]`,
			[]string{"/1/a"}, []string{"/0/a"},
		},
	}

	RunTestCases(t, cases)
}

func TestDisableJoinKeys(t *testing.T) {
	cases := []TestCase{
		{
			"positional alignment",
			`[{"a":"z","id":2},{"a":"y","id":1}]`,
			`[{"a":"x","id":2},{"a":"y","id":1}]`,
			[]string{"/0/a", "/0/id", "/1/a", "/1/id"},
			[]string{"/0/a", "/0/id", "/1/a", "/1/id"},
		},
	}

	RunTestCases(t, cases, OptionDisableJoinKeys())
}

func TestPreferredKeysOption(t *testing.T) {
	cases := []TestCase{
		{
			"ref preferred over id",
			`[{"id":1,"ref":"a","v":1},{"id":2,"ref":"b","v":2}]`,
			`[{"id":2,"ref":"a","v":1},{"id":1,"ref":"b","v":2}]`,
			[]string{"/0/id", "/1/id"}, []string{"/0/id", "/1/id"},
		},
	}

	RunTestCases(t, cases, OptionPreferredKeys("ref"))
}

func TestDiffEqualityCoherence(t *testing.T) {
	pairs := [][2]string{
		{`{"a":[1,2,{"b":null}]}`, `{"a":[{"b":null},2,1]}`},
		{`{"a":[1,2,{"b":null}]}`, `{"a":[{"b":false},2,1]}`},
		{`[{"id":1,"t":[3,4]},{"id":2}]`, `[{"id":2},{"id":1,"t":[4,3]}]`},
		{`[{"id":1,"t":[3,4]},{"id":2}]`, `[{"id":2},{"id":3,"t":[4,3]}]`},
		{`[[1,2],[3]]`, `[[3],[2,1]]`},
		{`["a",1,true]`, `[true,"a",1.0]`},
		{`[{"id":12345678901234567}]`, `[{"id":12345678901234567.0}]`},
		{`[{"id":12345678901234567}]`, `[{"id":12345678901234568}]`},
		{`[{"id":9007199254740993,"v":1},{"id":9007199254740992,"v":2}]`, `[{"id":9007199254740992,"v":2},{"id":9007199254740993,"v":1}]`},
		{`[12345678901234568, 12345678901234567.0, 12345678901234567]`, `[12345678901234567, 12345678901234567.0, 12345678901234568]`},
		{`[{"n":1e400}]`, `[{"n":2e400}]`},
	}
	ctx := context.Background()
	for _, p := range pairs {
		a, b := mustParse(t, p[0]), mustParse(t, p[1])
		res, err := Diff(ctx, a, b)
		if err != nil {
			t.Fatal(err)
		}
		equal, _ := Compare(a, b)
		if res.Empty() != equal {
			t.Errorf("%s vs %s: empty diff %t, equal %t", p[0], p[1], res.Empty(), equal)
		}
	}
}

func TestDiffConcurrent(t *testing.T) {
	dd := New()
	a := mustParse(t, `{"x":[{"id":1,"v":"a"},{"id":2,"v":"b"}]}`)
	b := mustParse(t, `{"x":[{"id":2,"v":"b"},{"id":1,"v":"z"}]}`)
	expect := []string{"/x/0/v"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := dd.Report(context.Background(), a, b)
			if err != nil {
				t.Error(err)
				return
			}
			if diff := cmp.Diff(expect, r.Diff.Left.Strings()); diff != "" {
				t.Errorf("left locations mismatch (-want +got):\n%s", diff)
			}
			if r.Stats.LeftDiffs != 1 || r.Stats.RightDiffs != 1 {
				t.Errorf("unexpected stats: %+v", r.Stats)
			}
		}()
	}
	wg.Wait()
}

func TestDiffMaxDepth(t *testing.T) {
	doc := `{"a":{"b":{"c":1}}}`
	a, b := mustParse(t, doc), mustParse(t, doc)

	if _, err := Diff(context.Background(), a, b, OptionMaxDepth(2)); !errors.Is(err, ErrMaxDepth) {
		t.Errorf("expected ErrMaxDepth, got %v", err)
	}
	if _, err := Diff(context.Background(), a, b, OptionMaxDepth(3)); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestDiffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, b := mustParse(t, `{"a":[1]}`), mustParse(t, `{"a":[2]}`)
	if _, err := Diff(ctx, a, b); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDiffStats(t *testing.T) {
	a := mustParse(t, `{"a":100,"foo":[1,2,3],"baz":{"e":null,"g":"x"}}`)
	b := mustParse(t, `{"a":99,"foo":[1,2,3],"baz":{"e":"y","f":false}}`)

	st := &Stats{}
	if _, err := Diff(context.Background(), a, b, OptionSetStats(st)); err != nil {
		t.Fatal(err)
	}

	expect := &Stats{
		Left:       9,
		Right:      9,
		LeftDiffs:  3,
		RightDiffs: 3,
	}
	if diff := cmp.Diff(expect, st); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkDiff(b *testing.B) {
	srcData := `{
		"foo" : {
			"bar" : [1,2,3]
		},
		"baz" : [{"id":4,"v":"a"},{"id":5,"v":"b"},{"id":6,"v":"c"}],
		"bat" : false
	}`

	dstData := `{
		"baz" : [{"id":6,"v":"c"},{"id":4,"v":"z"},{"id":7,"v":"b"}],
		"bat" : true,
		"champ" : {
			"bar" : [1,2,3]
		}
	}`

	src, dst := mustParse(b, srcData), mustParse(b, dstData)
	ctx := context.Background()

	for n := 0; n < b.N; n++ {
		if _, err := Diff(ctx, src, dst); err != nil {
			b.Fatal(err)
		}
	}
}
