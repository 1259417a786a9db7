package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/qri-io/smartdiff"
)

func runCompare(cmd *cobra.Command, o *options, args []string) error {
	cfg, err := LoadConfig(cmd, o.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	rawLeft, rawRight, err := readInputs(cmd.InOrStdin(), o, args)
	if err != nil {
		return err
	}

	dec := smartdiff.Decoder{AllowYAML: cfg.AllowYAML}
	a, err := dec.Decode(smartdiff.SideLeft, rawLeft)
	if err != nil {
		return err
	}
	b, err := dec.Decode(smartdiff.SideRight, rawRight)
	if err != nil {
		return err
	}

	opts := append(cfg.DiffOptions(), smartdiff.OptionLogger(logger))
	r, err := smartdiff.CompareDocuments(cmd.Context(), a, b, opts...)
	if err != nil {
		return err
	}
	logger.Debug("compared documents",
		"equal", r.Equal,
		"leftDiffs", r.Stats.LeftDiffs,
		"rightDiffs", r.Stats.RightDiffs,
	)

	out := cmd.OutOrStdout()
	if err := writeReport(out, r, cfg, useColor(cfg.Color, out)); err != nil {
		return err
	}
	if !r.Equal {
		return errDifferent
	}
	return nil
}

// readInputs collects raw text for both sides. inline documents take their
// side, positional arguments fill the remaining sides in order
func readInputs(stdin io.Reader, o *options, args []string) (left, right []byte, err error) {
	sources := args
	stdinUsed := false
	read := func(name string) ([]byte, error) {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("standard input can only be read once")
			}
			stdinUsed = true
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, err
		}
		return maybeGunzip(data)
	}

	next := func(inline string) ([]byte, error) {
		if inline != "" {
			return []byte(inline), nil
		}
		if len(sources) == 0 {
			return nil, fmt.Errorf("two documents are required, got %d", len(args)+countInline(o))
		}
		name := sources[0]
		sources = sources[1:]
		return read(name)
	}

	if left, err = next(o.left); err != nil {
		return nil, nil, err
	}
	if right, err = next(o.right); err != nil {
		return nil, nil, err
	}
	if len(sources) > 0 {
		return nil, nil, fmt.Errorf("too many documents: unexpected argument %q", sources[0])
	}
	return left, right, nil
}

// maybeGunzip decompresses gzip streams, any other data is returned as is
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip stream: %w", err)
	}
	return out, nil
}

func countInline(o *options) int {
	n := 0
	if o.left != "" {
		n++
	}
	if o.right != "" {
		n++
	}
	return n
}

// useColor resolves a color mode against the output destination
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeReport(w io.Writer, r *smartdiff.Report, cfg *Config, colorTTY bool) error {
	switch cfg.Format {
	case formatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatLines:
		if _, err := fmt.Fprintln(w, r.Reason); err != nil {
			return err
		}
		return smartdiff.FormatLineDiff(w, r.Left, r.Right, colorTTY)
	}

	if err := smartdiff.FormatPretty(w, r, colorTTY); err != nil {
		return err
	}
	if cfg.Stats {
		stats := smartdiff.FormatPrettyStats(&r.Stats)
		if colorTTY {
			stats = smartdiff.FormatPrettyStatsColor(&r.Stats)
		}
		_, err := io.WriteString(w, stats)
		return err
	}
	return nil
}
