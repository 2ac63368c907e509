package app

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantPaths []string
		wantErr   string
	}{
		{name: "literal only", src: "<p>hi</p>"},
		{name: "one placeholder", src: "<h3>{{ state.title }}</h3>", wantPaths: []string{"state.title"}},
		{name: "tight braces", src: "{{a}}{{b}}", wantPaths: []string{"a", "b"}},
		{name: "unterminated", src: "<p>{{ a </p>", wantErr: "unterminated placeholder"},
		{name: "empty", src: "x{{  }}", wantErr: "empty placeholder"},
		{name: "nested", src: "{{ a {{ b }}", wantErr: "nested placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.src)
			if tt.wantErr != "" {
				var te *TemplateError
				if !errors.As(err, &te) || te.Reason != tt.wantErr {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantPaths, tmpl.Paths()); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTemplateErrorOffset(t *testing.T) {
	_, err := Compile("{{ a }} and {{ b")
	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v", err)
	}
	if te.Offset != 12 {
		t.Errorf("Offset = %d, want 12", te.Offset)
	}
}

func TestFormatValue(t *testing.T) {
	if formatValue(nil) != "" || formatValue("s") != "s" || formatValue(3.5) != "3.5" {
		t.Error("unexpected formatting")
	}
}
