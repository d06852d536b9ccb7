package globalstyles

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-global-styles/layering"
)

// Trace captures provenance information for a setting lookup: every
// candidate location consulted, in lookup order.
type Trace struct {
	Path   string       `json:"path"`
	Block  string       `json:"block,omitempty"`
	Source Source       `json:"source"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how a single candidate contributed to a traced path.
type Provenance struct {
	Tier     string `json:"tier"`
	Path     string `json:"path"`
	Value    any    `json:"value,omitempty"`
	Found    bool   `json:"found"`
	Selected bool   `json:"selected,omitempty"`
}

// Winner returns the provenance entry that produced the resolved value.
func (t Trace) Winner() (Provenance, bool) {
	for _, layer := range t.Layers {
		if layer.Selected {
			return layer, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

// TraceSetting resolves a non-aggregate setting like Setting and records the
// block and root candidates it consulted.
func (r *Resolver) TraceSetting(t Tiers, path Path, block string, source Source) (any, Trace, error) {
	trace := Trace{Path: path.String(), Block: block, Source: source}
	doc, err := t.tier(source)
	if err != nil {
		return nil, trace, resolveError("trace", path, block, source, err)
	}
	if err := r.checkPath(path); err != nil {
		return nil, trace, resolveError("trace", path, block, source, err)
	}

	candidates := make([][]string, 0, 2)
	if block != "" {
		candidates = append(candidates, settingPath(block, path))
	}
	candidates = append(candidates, settingPath("", path))

	var result any
	for _, candidate := range candidates {
		value, found := layering.Get(doc, candidate)
		entry := Provenance{
			Tier:  source.String(),
			Path:  strings.Join(candidate, "."),
			Value: value,
			Found: found && value != nil,
		}
		if entry.Found && result == nil {
			result = value
			entry.Selected = true
		}
		trace.Layers = append(trace.Layers, entry)
	}
	return result, trace, nil
}

// TraceSetting traces a setting with the default resolver.
func (t Tiers) TraceSetting(path Path, block string, source Source) (any, Trace, error) {
	return defaultResolver.TraceSetting(t, path, block, source)
}
