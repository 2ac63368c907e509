package app

import (
	"errors"
	"testing"

	"github.com/vango-dev/tinyvue/pkg/host"
)

func mountState(t *testing.T, tmpl string, setup map[string]any) (*App, *host.Element) {
	t.Helper()
	doc := host.NewDocument()
	el := doc.Append("div", "app", tmpl)
	a := quietRenderer(doc).CreateApp(Options{
		Setup: func() map[string]any { return setup },
	})
	if err := a.Mount("#app"); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return a, el
}

func TestProxyPath(t *testing.T) {
	a, _ := mountState(t, "{{ user.profile.name }}", map[string]any{
		"user": map[string]any{
			"profile": map[string]any{"name": "ada"},
			"age":     36,
		},
	})
	p := a.Proxy()

	tests := []struct {
		path string
		want any
	}{
		{"user.profile.name", "ada"},
		{"user.age", 36},
		{"user.age.years", nil},
		{"user.missing.x", nil},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := p.Path(tt.path); got != tt.want {
				t.Errorf("Path(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestProxySetPath(t *testing.T) {
	a, el := mountState(t, "{{ user.profile.name }}", map[string]any{
		"user": map[string]any{"profile": map[string]any{"name": "ada"}},
	})
	p := a.Proxy()

	if err := p.SetPath("user.profile.name", "grace"); err != nil {
		t.Fatalf("SetPath: %v", err)
	}
	if el.InnerHTML() != "grace" {
		t.Errorf("InnerHTML = %q, want grace", el.InnerHTML())
	}

	if err := p.SetPath("user.nope.name", "x"); !errors.Is(err, ErrPath) {
		t.Errorf("unresolved path: got %v", err)
	}
	if err := p.SetPath("top", 1); err != nil {
		t.Errorf("top-level SetPath: %v", err)
	}
	if p.Get("top") != 1 {
		t.Errorf("top = %v", p.Get("top"))
	}
}

func TestProxyRecordIdentity(t *testing.T) {
	a, _ := mountState(t, "x", map[string]any{
		"state": map[string]any{"title": "x"},
		"n":     1,
	})
	p := a.Proxy()

	if p.Record("state") == nil || p.Record("state") != p.Record("state") {
		t.Error("Record did not return a stable record")
	}
	if p.Record("n") != nil || p.Record("missing") != nil {
		t.Error("Record returned a record for a non-map value")
	}
}
