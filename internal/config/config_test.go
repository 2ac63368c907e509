package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/tinyvue/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "greeting.yaml", `
template: "<h3>{{ state.title }}</h3>"
data:
  count: 0
setup:
  state:
    title: hello
    tags: [a, b]
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if c.Name != "greeting" {
		t.Errorf("Name = %q, want greeting", c.Name)
	}
	if c.Selector != DefaultSelector {
		t.Errorf("Selector = %q, want %q", c.Selector, DefaultSelector)
	}
	if c.Path() != path || c.Dir() != filepath.Dir(path) {
		t.Errorf("Path/Dir = %q/%q", c.Path(), c.Dir())
	}

	wantSetup := map[string]any{
		"state": map[string]any{"title": "hello", "tags": []any{"a", "b"}},
	}
	if diff := cmp.Diff(wantSetup, c.Setup); diff != "" {
		t.Errorf("Setup mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"count": 0}, c.Data); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{"invalid yaml", "template: [unclosed\n", "E002"},
		{"unknown key", "template: x\nextra: 1\n", "E002"},
		{"empty file", "", "E002"},
		{"missing template", "name: x\ndata: {a: 1}\n", "E002"},
		{"wrong data type", "template: x\ndata:\n  - 1\n", "E002"},
		{"complex selector", "template: x\nselector: div .a\n", "E002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", tt.content))
			if code := errorCode(err); code != tt.wantCode {
				t.Errorf("code = %q (%v), want %q", code, err, tt.wantCode)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if code := errorCode(err); code != "E001" {
		t.Errorf("missing file: code = %q, want E001", code)
	}
}

func TestLoadErrorHasLocation(t *testing.T) {
	path := writeFile(t, "c.yaml", "template: x\ndata:\n  - 1\n")
	_, err := Load(path)

	var e *errors.Error
	if !stderrors.As(err, &e) || e.Location == nil {
		t.Fatalf("expected located error, got %v", err)
	}
	if e.Location.Line != 3 {
		t.Errorf("Line = %d, want 3", e.Location.Line)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte("name: n\nselector: main\ntemplate: hi\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Name != "n" || c.Selector != "main" || c.Path() != "" || c.Dir() != "." {
		t.Errorf("unexpected component %+v", c)
	}
	if _, err := Parse([]byte("[1, 2]")); errorCode(err) != "E002" {
		t.Errorf("Parse([1, 2]) = %v", err)
	}
}

func TestStateFuncsCopy(t *testing.T) {
	c, err := Parse([]byte("template: x\nsetup:\n  state:\n    title: a\n    list: [1]\n"))
	if err != nil {
		t.Fatal(err)
	}

	first := c.SetupFunc()()
	first["state"].(map[string]any)["title"] = "changed"
	first["state"].(map[string]any)["list"].([]any)[0] = 2

	second := c.SetupFunc()()
	if diff := cmp.Diff(c.Setup, second); diff != "" {
		t.Errorf("copy shares state with the component (-want +got):\n%s", diff)
	}
	if got := c.DataFunc()(); got == nil || len(got) != 0 {
		t.Errorf("DataFunc() = %v, want empty map", got)
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		arg       string
		wantPath  string
		wantValue any
		wantErr   bool
	}{
		{arg: "title=y", wantPath: "title", wantValue: "y"},
		{arg: "state.title=hello world", wantPath: "state.title", wantValue: "hello world"},
		{arg: "count=3", wantPath: "count", wantValue: 3},
		{arg: "on=true", wantPath: "on", wantValue: true},
		{arg: "eq=a=b", wantPath: "eq", wantValue: "a=b"},
		{arg: "empty=", wantPath: "empty", wantValue: ""},
		{arg: "obj={a: 1}", wantPath: "obj", wantValue: map[string]any{"a": 1}},
		{arg: "noequals", wantErr: true},
		{arg: "=v", wantErr: true},
		{arg: "bad=[1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			path, value, err := ParseAssignment(tt.arg)
			if tt.wantErr {
				if errorCode(err) != "E004" {
					t.Fatalf("err = %v, want E004", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
			if diff := cmp.Diff(tt.wantValue, value); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
