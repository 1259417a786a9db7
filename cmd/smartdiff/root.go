package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errDifferent signals that the compared documents are not equal. it's
// reported through the exit status rather than as a message
var errDifferent = errors.New("documents differ")

type options struct {
	configPath string
	left       string
	right      string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "smartdiff [flags] [LEFT] [RIGHT]",
		Short: "Compare JSON documents ignoring key & element order",
		Long: `smartdiff decides whether two JSON documents hold the same content,
regardless of object key order or array element order, and shows which
lines of each document's canonical rendering differ.

Lists of records are aligned by an inferred identifying field (codPrestazione,
id, uuid, code, key, or any field with distinct scalar values on both sides),
so reordered records are compared with their counterparts.

Inputs may be plain JSON or base64-encoded JSON. LEFT & RIGHT are file
paths, "-" reads standard input. --left & --right take documents inline.

Exit status is 0 when the documents are equal, 1 when they differ and 2 on
error.

Examples:
  # compare two files
  smartdiff before.json after.json

  # compare inline documents, printing a JSON report
  smartdiff --left '{"a":[1,2]}' --right '{"a":[2,1]}' --format json

  # read the left document from stdin
  curl -s https://example.com/data.json | smartdiff - expected.json`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, o, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "config file (default: ./.smartdiff.yaml if present)")
	f.StringVar(&o.left, "left", "", "left document, inline")
	f.StringVar(&o.right, "right", "", "right document, inline")
	f.StringSlice("preferred-keys", nil, "field names tried first when aligning lists of records")
	f.Int("max-depth", 0, "maximum document nesting depth, 0 for unlimited")
	f.String("color", colorAuto, "colorize output: auto, always or never")
	f.String("format", formatPretty, "output format: pretty, json or lines")
	f.String("log-level", "warn", "log level: debug, info, warn or error")
	f.Bool("allow-yaml", false, "accept YAML mappings & sequences as input")
	f.Bool("no-join-keys", false, "align every list by position")
	f.Bool("stats", false, "print diff statistics after a pretty report")

	return cmd
}
