package hydrate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type blockMeta struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Supports map[string]any `json:"supports"`
}

func TestDecodeRunsStagesInOrder(t *testing.T) {
	var stages []string
	decoder := Decoder[blockMeta]{
		Normalizers: []Normalizer{func(_ Source, payload map[string]any) error {
			stages = append(stages, StageNormalize)
			if _, ok := payload["supports"]; !ok {
				payload["supports"] = map[string]any{}
			}
			return nil
		}},
		Validators: []Validator[blockMeta]{func(src Source, meta *blockMeta) error {
			stages = append(stages, StageValidate)
			if meta.Title == "" {
				meta.Title = src.String()
			}
			return nil
		}},
	}

	got, err := decoder.Decode(Source{Name: "core/group"}, map[string]any{"name": "core/group"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := blockMeta{Name: "core/group", Title: "core/group", Supports: map[string]any{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
	if strings.Join(stages, ",") != "normalize,validate" {
		t.Fatalf("unexpected stage order %v", stages)
	}
}

func TestNormalizersSeeACopy(t *testing.T) {
	payload := map[string]any{
		"name":     "core/quote",
		"supports": map[string]any{"color": map[string]any{"link": true}},
	}
	decoder := Decoder[blockMeta]{Normalizers: []Normalizer{func(_ Source, p map[string]any) error {
		p["title"] = "changed"
		p["supports"].(map[string]any)["color"] = false
		return nil
	}}}
	if _, err := decoder.Decode(Source{}, payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := payload["title"]; ok {
		t.Fatalf("caller payload mutated: %v", payload)
	}
	if _, ok := payload["supports"].(map[string]any)["color"].(map[string]any); !ok {
		t.Fatalf("nested caller payload mutated: %v", payload)
	}
}

func TestParseAcceptsComments(t *testing.T) {
	raw := []byte(`{
		// block metadata
		"name": "core/paragraph",
		"supports": { "color": { "link": true }, },
	}`)
	got, err := Decoder[blockMeta]{}.Parse(Source{Path: "paragraph/block.json"}, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Name != "core/paragraph" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	color, ok := got.Supports["color"].(map[string]any)
	if !ok || color["link"] != true {
		t.Fatalf("unexpected supports %#v", got.Supports)
	}
}

func TestDecodeErrorStages(t *testing.T) {
	missingName := errors.New("missing name")
	decoder := Decoder[blockMeta]{
		Strict: true,
		Validators: []Validator[blockMeta]{func(_ Source, meta *blockMeta) error {
			if meta.Name == "" {
				return missingName
			}
			return nil
		}},
	}

	tests := []struct {
		name    string
		payload map[string]any
		stage   string
	}{
		{"nil payload", nil, StageParse},
		{"unknown field", map[string]any{"name": "x", "bogus": 1}, StageDecode},
		{"validator", map[string]any{"title": "x"}, StageValidate},
	}
	for _, tt := range tests {
		_, err := decoder.Decode(Source{}, tt.payload)
		var hydrateErr *Error
		if !errors.As(err, &hydrateErr) || hydrateErr.Stage != tt.stage {
			t.Errorf("%s: expected %s error, got %v", tt.name, tt.stage, err)
		}
	}

	if _, err := decoder.Decode(Source{}, map[string]any{"title": "x"}); !errors.Is(err, missingName) {
		t.Fatalf("expected validator error to unwrap, got %v", err)
	}
	_, err := decoder.Parse(Source{Name: "broken"}, []byte("{"))
	if err == nil || !strings.HasPrefix(err.Error(), "hydrate: parse broken:") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
