package smartdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// palette holds the colors used for terminal output. with colorTTY false
// every color prints plain text
type palette struct {
	neutral, insert, delete, update, ok *color.Color
}

func newPalette(colorTTY bool) palette {
	p := palette{
		neutral: color.New(color.FgWhite),
		insert:  color.New(color.FgGreen),
		delete:  color.New(color.FgRed),
		update:  color.New(color.FgBlue),
		ok:      color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.neutral, p.insert, p.delete, p.update, p.ok} {
		if colorTTY {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(r *Report, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, r, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w: the verdict, then each side's
// canonical rendering with differing lines marked. if colorTTY is true it will
// add
// red "-" for lines that differ on the left
// green "+" for lines that differ on the right
func FormatPretty(w io.Writer, r *Report, colorTTY bool) error {
	p := newPalette(colorTTY)

	status := p.delete
	if r.Equal {
		status = p.ok
	}
	if _, err := fmt.Fprintln(w, status.Sprint(r.Reason)); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, p.delete.Sprint("--- left")); err != nil {
		return err
	}
	if err := formatDocument(w, r.Left, r.LeftLines, "-", p.delete); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, p.insert.Sprint("+++ right")); err != nil {
		return err
	}
	return formatDocument(w, r.Right, r.RightLines, "+", p.insert)
}

// FormatDocument writes a rendered document to w, prefixing the given lines
// with mark and every other line with a blank gutter
func FormatDocument(w io.Writer, doc *Document, highlight []int, mark string, colorTTY bool) error {
	return formatDocument(w, doc, highlight, mark, newPalette(colorTTY).update)
}

func formatDocument(w io.Writer, doc *Document, highlight []int, mark string, c *color.Color) error {
	marked := make(map[int]bool, len(highlight))
	for _, l := range highlight {
		marked[l] = true
	}
	gutter := strings.Repeat(" ", len(mark))
	for i, line := range doc.Lines {
		var err error
		if marked[i] {
			_, err = fmt.Fprintln(w, c.Sprint(mark+" "+line))
		} else {
			_, err = fmt.Fprintln(w, gutter+" "+line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatLineDiff writes a unified, line-oriented diff of two rendered
// documents. Because both sides are canonical, reordered content lines up
// and only real changes show
func FormatLineDiff(w io.Writer, left, right *Document, colorTTY bool) error {
	p := newPalette(colorTTY)
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(docText(left), docText(right))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	for _, d := range diffs {
		var (
			prefix string
			c      = p.neutral
		)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", p.delete
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", p.insert
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprint(w, c.Sprint(prefix+line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func docText(d *Document) string {
	if len(d.Lines) == 0 {
		return ""
	}
	return d.Text() + "\n"
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, colorTTY bool) string {
	if ds == nil {
		return "<nil>"
	}
	p := newPalette(colorTTY)
	buf := &bytes.Buffer{}

	elsColor := p.insert
	change := ds.NodeChange()
	elementsWord := "elements"
	sign := "+"
	if change < 0 {
		elsColor = p.delete
		sign = ""
	} else if change == 0 {
		elsColor = p.neutral
		sign = ""
	}
	if change == 1 || change == -1 {
		elementsWord = "element"
	}
	buf.WriteString(elsColor.Sprintf("%s%d", sign, change))
	buf.WriteString(p.neutral.Sprintf(" %s.", elementsWord))

	buf.WriteString(" " + p.delete.Sprintf("%d left %s.", ds.LeftDiffs, plural(ds.LeftDiffs, "change", "changes")))
	buf.WriteString(" " + p.insert.Sprintf("%d right %s.", ds.RightDiffs, plural(ds.RightDiffs, "change", "changes")))

	if ds.LeftLines > 0 || ds.RightLines > 0 {
		buf.WriteString(" " + p.update.Sprintf("%d/%d %s highlighted.", ds.LeftLines, ds.RightLines, plural(ds.LeftLines+ds.RightLines, "line", "lines")))
	}

	buf.WriteRune('\n')
	return buf.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
