package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const themeJSON = `{
	// comments are allowed in theme files
	"settings": {
		"color": {
			"text": true,
			"link": false,
			"palette": {
				"theme": [{ "slug": "primary", "color": "#0000ff", "name": "Primary" }]
			}
		},
		"blocks": {
			"core/paragraph": { "color": { "link": true } }
		}
	},
	"styles": {
		"css": ".theme { margin: 0; }",
		"color": { "text": "var:preset|color|primary" }
	}
}`

type fixture struct {
	dir   string
	theme string
	user  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	theme := filepath.Join(dir, "twentytwentyfour.jsonc")
	if err := os.WriteFile(theme, []byte(themeJSON), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	return fixture{dir: dir, theme: theme, user: filepath.Join(dir, "user.json")}
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--theme", f.theme, "--user", f.user}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (f fixture) mustRun(t *testing.T, args ...string) any {
	t.Helper()
	out, err := f.run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	var value any
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("%s: decode %q: %v", strings.Join(args, " "), out, err)
	}
	return value
}

func TestSettingCommand(t *testing.T) {
	f := newFixture(t)

	if got := f.mustRun(t, "setting", "color.text"); got != true {
		t.Fatalf("expected root text setting, got %v", got)
	}
	if got := f.mustRun(t, "setting", "color.link", "--block", "core/paragraph"); got != true {
		t.Fatalf("expected block link setting, got %v", got)
	}
	if got := f.mustRun(t, "setting", "color.link", "--block", "core/group"); got != false {
		t.Fatalf("expected fallback to the root link setting, got %v", got)
	}
	if got := f.mustRun(t, "setting", "color.text", "--source", "user"); got != nil {
		t.Fatalf("expected empty user tier, got %v", got)
	}

	all, ok := f.mustRun(t, "setting").(map[string]any)
	if !ok {
		t.Fatalf("expected aggregate object")
	}
	color, _ := all["color"].(map[string]any)
	if color["link"] != false || color["text"] != true {
		t.Fatalf("unexpected aggregate %v", all)
	}

	traced, ok := f.mustRun(t, "setting", "color.link", "--block", "core/group", "--trace").(map[string]any)
	if !ok || traced["value"] != false || traced["trace"] == nil {
		t.Fatalf("unexpected trace output %v", traced)
	}

	if _, err := f.run(t, "setting", "--source", "theme"); err == nil {
		t.Fatalf("expected unsupported source error")
	}
}

func TestSetResetCommands(t *testing.T) {
	f := newFixture(t)

	if got := f.mustRun(t, "can-reset"); got != false {
		t.Fatalf("expected nothing to reset, got %v", got)
	}
	if _, err := f.run(t, "set", "color.text", "false"); err != nil {
		t.Fatalf("set setting: %v", err)
	}
	if _, err := f.run(t, "set", "--style", "color.background", "#0000ff"); err != nil {
		t.Fatalf("set style: %v", err)
	}

	raw, err := os.ReadFile(f.user)
	if err != nil {
		t.Fatalf("read user file: %v", err)
	}
	if !strings.Contains(string(raw), "var:preset|color|primary") {
		t.Fatalf("expected preset reference in user file, got %s", raw)
	}

	if got := f.mustRun(t, "setting", "color.text"); got != false {
		t.Fatalf("expected user override, got %v", got)
	}
	if got := f.mustRun(t, "style", "color.background"); got != "#0000ff" {
		t.Fatalf("expected decoded preset, got %v", got)
	}
	if got := f.mustRun(t, "can-reset"); got != true {
		t.Fatalf("expected customisations to reset")
	}

	reset, _ := f.mustRun(t, "reset").(map[string]any)
	if reset["reset"] != true {
		t.Fatalf("unexpected reset output %v", reset)
	}
	if got := f.mustRun(t, "can-reset"); got != false {
		t.Fatalf("expected clean user tier after reset")
	}
	if got := f.mustRun(t, "setting", "color.text"); got != true {
		t.Fatalf("expected base value after reset, got %v", got)
	}
}

func TestSetWithoutUserFile(t *testing.T) {
	f := newFixture(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--theme", f.theme, "set", "color.text", "false"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected write without a user file to fail")
	}
}

func TestStyleCommand(t *testing.T) {
	f := newFixture(t)

	if got := f.mustRun(t, "style", "color.text"); got != "#0000ff" {
		t.Fatalf("expected decoded preset, got %v", got)
	}
	if got := f.mustRun(t, "style", "color.text", "--source", "base"); got != "#0000ff" {
		t.Fatalf("expected base style, got %v", got)
	}

	if _, err := f.run(t, "set", "--style", "css", ""); err != nil {
		t.Fatalf("clear css: %v", err)
	}
	if got := f.mustRun(t, "style", "css"); got != "" {
		t.Fatalf("expected empty user css to win, got %v", got)
	}

	css, _ := f.mustRun(t, "style", "--custom-css").(map[string]any)
	value, _ := css["value"].(string)
	if !strings.Contains(value, ".theme { margin: 0; }") || css["original"] != "" {
		t.Fatalf("expected wrapped theme css, got %v", css)
	}

	if _, err := f.run(t, "set", "--style", "css", "p { color: red; }"); err != nil {
		t.Fatalf("write css: %v", err)
	}
	css, _ = f.mustRun(t, "style", "--custom-css").(map[string]any)
	if css["value"] != "p { color: red; }" || css["original"] != ".theme { margin: 0; }" {
		t.Fatalf("expected user css with original theme css, got %v", css)
	}
}

func TestPanelsCommand(t *testing.T) {
	f := newFixture(t)
	blocksDir := filepath.Join("..", "..", "blocks", "testdata", "blocks")

	got := f.mustRun(t, "panels", "--blocks", blocksDir, "--block", "core/group")
	want := []any{"background", "blockGap", "borderColor", "borderRadius", "color", "linkColor", "margin", "padding"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("panels mismatch (-want +got):\n%s", diff)
	}

	grouped, _ := f.mustRun(t, "panels", "--blocks", blocksDir, "--block", "core/group", "--groups").(map[string]any)
	if diff := cmp.Diff([]any{"color", "dimensions"}, grouped["groups"]); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]any{}, f.mustRun(t, "panels", "--block", "unknown/block")); diff != "" {
		t.Fatalf("expected no panels for unknown block (-want +got):\n%s", diff)
	}
}

func TestDumpCommand(t *testing.T) {
	f := newFixture(t)

	merged, _ := f.mustRun(t, "dump").(map[string]any)
	if merged["settings"] == nil || merged["styles"] == nil {
		t.Fatalf("expected merged document, got %v", merged)
	}

	fields, _ := f.mustRun(t, "dump", "--fields", "--source", "base").([]any)
	var paths []string
	for _, field := range fields {
		paths = append(paths, field.(map[string]any)["path"].(string))
	}
	joined := strings.Join(paths, ",")
	if !strings.Contains(joined, "settings.color.text") || !strings.Contains(joined, "styles.css") {
		t.Fatalf("unexpected field paths %v", paths)
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		raw  string
		want any
	}{
		{raw: "true", want: true},
		{raw: "12", want: float64(12)},
		{raw: `{"a":1}`, want: map[string]any{"a": float64(1)}},
		{raw: "#ff0000", want: "#ff0000"},
		{raw: "", want: ""},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, parseValue(tc.raw)); diff != "" {
			t.Fatalf("parseValue(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}
