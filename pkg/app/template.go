package app

import (
	"fmt"
	"strings"

	"github.com/vango-dev/tinyvue/pkg/vdom"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Template is compiled container markup. Literal text is emitted as is;
// each {{ path }} placeholder is resolved through Proxy.Path and escaped.
type Template struct {
	parts []templatePart
}

type templatePart struct {
	literal string
	path    string
}

// Compile parses src. Blank markup yields ErrNoRender.
func Compile(src string) (*Template, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrNoRender
	}

	t := &Template{}
	offset := 0
	rest := src
	for {
		i := strings.Index(rest, openDelim)
		if i < 0 {
			if rest != "" {
				t.parts = append(t.parts, templatePart{literal: rest})
			}
			return t, nil
		}
		if i > 0 {
			t.parts = append(t.parts, templatePart{literal: rest[:i]})
		}

		body := rest[i+len(openDelim):]
		j := strings.Index(body, closeDelim)
		if j < 0 {
			return nil, &TemplateError{Offset: offset + i, Reason: "unterminated placeholder"}
		}
		path := strings.TrimSpace(body[:j])
		if path == "" {
			return nil, &TemplateError{Offset: offset + i, Reason: "empty placeholder"}
		}
		if strings.Contains(path, openDelim) {
			return nil, &TemplateError{Offset: offset + i, Reason: "nested placeholder"}
		}
		t.parts = append(t.parts, templatePart{path: path})

		consumed := i + len(openDelim) + j + len(closeDelim)
		offset += consumed
		rest = rest[consumed:]
	}
}

// Paths returns the placeholder paths in order of appearance.
func (t *Template) Paths() []string {
	var paths []string
	for _, part := range t.parts {
		if part.path != "" {
			paths = append(paths, part.path)
		}
	}
	return paths
}

// Render builds the view for p.
func (t *Template) Render(p *Proxy) *vdom.VNode {
	children := make([]any, 0, len(t.parts))
	for _, part := range t.parts {
		if part.path == "" {
			children = append(children, vdom.Raw(part.literal))
			continue
		}
		children = append(children, vdom.Text(formatValue(p.Path(part.path))))
	}
	return vdom.Fragment(children...)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
