package smartdiff

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Side names which of the two compared inputs a value came from
type Side string

const (
	// SideLeft is the first (source) input
	SideLeft = Side("left")
	// SideRight is the second (destination) input
	SideRight = Side("right")
)

// ErrEmptyInput is returned when an input holds nothing but whitespace
var ErrEmptyInput = errors.New("empty input")

// DecodeError reports that neither a direct parse nor a decode-then-parse of
// one side's raw input succeeded
type DecodeError struct {
	Side  Side
	Cause error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s input is neither valid JSON nor base64-encoded JSON: %s", e.Side, e.Cause)
}

// Unwrap exposes the underlying parser error
func (e *DecodeError) Unwrap() error { return e.Cause }

// Decoder turns raw document text into a tree. Raw text is first parsed as
// JSON. On failure it's treated as standard base64, decoded to UTF-8 text &
// parsed as JSON again
type Decoder struct {
	// AllowYAML adds a last attempt that parses raw text as a YAML mapping
	// or sequence
	AllowYAML bool
}

// Decode parses raw input for one side using the default Decoder
func Decode(side Side, raw []byte) (Value, error) {
	return Decoder{}.Decode(side, raw)
}

// Decode parses raw input for one side
func (d Decoder) Decode(side Side, raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", side, ErrEmptyInput)
	}

	if v, err := parseJSON(raw); err == nil {
		return v, nil
	}

	v, cause := parseBase64JSON(raw)
	if cause == nil {
		return v, nil
	}

	if d.AllowYAML {
		if v, err := parseYAML(raw); err == nil {
			return v, nil
		}
	}
	return nil, &DecodeError{Side: side, Cause: cause}
}

// parseJSON decodes exactly one JSON value, keeping number literals intact
func parseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return FromInterface(v)
}

// parseBase64JSON decodes strict standard base64. the stdlib decoder skips
// line breaks, they are rejected here like any other non-alphabet byte
func parseBase64JSON(raw []byte) (Value, error) {
	if i := bytes.IndexAny(raw, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("decoding base64: illegal line break at input byte %d", i)
	}
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
	n, err := base64.StdEncoding.Decode(decoded, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	decoded = decoded[:n]
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("decoded base64 is not valid UTF-8 text")
	}
	v, err := parseJSON(bytes.TrimSpace(decoded))
	if err != nil {
		return nil, fmt.Errorf("parsing decoded base64: %w", err)
	}
	return v, nil
}

// parseYAML accepts only documents whose root is a container, any bare word
// is valid YAML so scalars would hide typos
func parseYAML(raw []byte) (Value, error) {
	var v interface{}
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	val, err := FromInterface(v)
	if err != nil {
		return nil, err
	}
	if isScalar(val) {
		return nil, fmt.Errorf("yaml root must be a mapping or sequence, got %s", val.Kind())
	}
	return val, nil
}
