// Package hydrate turns loosely typed JSON metadata, such as block.json
// files, into typed structs.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/goliatone/go-global-styles/layering"
)

// Source names the payload being decoded.
type Source struct {
	Name string
	Path string
}

func (s Source) String() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Path != "":
		return s.Path
	default:
		return "<unnamed>"
	}
}

// Stages reported by Error.
const (
	StageParse     = "parse"
	StageNormalize = "normalize"
	StageDecode    = "decode"
	StageValidate  = "validate"
)

// Error reports the stage at which a payload failed.
type Error struct {
	Source Source
	Stage  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hydrate: %s %s: %v", e.Stage, e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Normalizer rewrites a payload in place before it is decoded. It only sees
// a copy, never the caller's map.
type Normalizer func(Source, map[string]any) error

// Validator checks a decoded value and may fill defaults.
type Validator[T any] func(Source, *T) error

// Decoder decodes payloads into T. The zero value decodes without
// normalizers or validators and ignores unknown fields.
type Decoder[T any] struct {
	Normalizers []Normalizer
	Validators  []Validator[T]
	// Strict rejects fields T does not declare.
	Strict bool
}

// Parse decodes raw JSON. Comments and trailing commas are accepted.
func (d Decoder[T]) Parse(src Source, raw []byte) (T, error) {
	var payload map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(raw), &payload); err != nil {
		var zero T
		return zero, &Error{Source: src, Stage: StageParse, Err: err}
	}
	return d.Decode(src, payload)
}

// Decode runs the normalizers over a copy of payload, decodes the result
// and runs the validators in order.
func (d Decoder[T]) Decode(src Source, payload map[string]any) (T, error) {
	var out T
	if payload == nil {
		return out, &Error{Source: src, Stage: StageParse, Err: fmt.Errorf("payload is nil")}
	}

	working := layering.Clone(payload)
	for _, normalize := range d.Normalizers {
		if normalize == nil {
			continue
		}
		if err := normalize(src, working); err != nil {
			return out, &Error{Source: src, Stage: StageNormalize, Err: err}
		}
	}

	if err := d.decodeInto(working, &out); err != nil {
		var zero T
		return zero, &Error{Source: src, Stage: StageDecode, Err: err}
	}

	for _, validate := range d.Validators {
		if validate == nil {
			continue
		}
		if err := validate(src, &out); err != nil {
			var zero T
			return zero, &Error{Source: src, Stage: StageValidate, Err: err}
		}
	}
	return out, nil
}

func (d Decoder[T]) decodeInto(payload map[string]any, out *T) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	if d.Strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(out)
}
