package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tinyvue/internal/errors"
)

const (
	// DefaultSelector is the mount selector used when a component names none.
	DefaultSelector = "#app"

	// DefaultAddr is the default preview server address.
	DefaultAddr = ":3000"
)

// Component is a component file.
type Component struct {
	// Name identifies the component in logs and metrics.
	Name string `yaml:"name"`

	// Selector is where the component mounts (default: "#app").
	Selector string `yaml:"selector,omitempty"`

	// Template is the container markup, with {{ path }} placeholders.
	Template string `yaml:"template"`

	// Data is the component's data state.
	Data map[string]any `yaml:"data,omitempty"`

	// Setup is the setup state. Its keys shadow Data.
	Setup map[string]any `yaml:"setup,omitempty"`

	// path stores the file the component was loaded from.
	path string
}

// Load reads a component file.
func Load(path string) (*Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E001").
				WithDetail("No component file at " + path).
				WithSuggestion("Check the path, or run 'tinyvue render' with a .yaml component file")
		}
		return nil, errors.New("E001").Wrap(err)
	}

	c, err := parse(data)
	if err != nil {
		return nil, errors.New("E002").
			Wrap(err).
			WithLocationFromError(path, err).
			WithSuggestion("A component file has name, template, data and setup keys")
	}
	c.path = path
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes a component from YAML.
func Parse(data []byte) (*Component, error) {
	c, err := parse(data)
	if err != nil {
		return nil, errors.New("E002").Wrap(err)
	}
	if c.Name == "" {
		c.Name = "component"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parse(data []byte) (*Component, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	c := &Component{}
	if err := dec.Decode(c); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, stderrors.New("empty component file")
		}
		return nil, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Component) applyDefaults() {
	if c.Selector == "" {
		c.Selector = DefaultSelector
	}
}

// Validate checks the component for errors.
func (c *Component) Validate() error {
	if strings.TrimSpace(c.Template) == "" {
		return errors.New("E002").
			WithDetail("The component has no template.").
			WithSuggestion("Add a template key with the markup to render")
	}
	if !strings.HasPrefix(c.Selector, "#") && strings.ContainsAny(c.Selector, " .[>:") {
		return errors.New("E002").
			WithDetail("Unsupported selector " + c.Selector + ".").
			WithSuggestion("Use an id selector such as #app, or a bare tag name")
	}
	return nil
}

// Path returns the file the component was loaded from.
func (c *Component) Path() string {
	return c.path
}

// Dir returns the directory containing the component file.
func (c *Component) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// DataFunc returns a function producing a fresh copy of Data on each call,
// so remounts start from the file's state.
func (c *Component) DataFunc() func() map[string]any {
	return func() map[string]any { return copyMap(c.Data) }
}

// SetupFunc is DataFunc for Setup.
func (c *Component) SetupFunc() func() map[string]any {
	return func() map[string]any { return copyMap(c.Setup) }
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	}
	return v
}

// ParseAssignment splits a "path=value" argument. The value is decoded as a
// YAML scalar or flow collection, so "3" is an int, "true" a bool and
// "{a: 1}" a map. An empty value is the empty string.
func ParseAssignment(arg string) (path string, value any, err error) {
	path, raw, ok := strings.Cut(arg, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return "", nil, errors.New("E004").
			WithDetail("Expected path=value, got " + arg + ".").
			WithSuggestion("Use --set state.title=hello")
	}

	if raw == "" {
		return path, "", nil
	}
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return "", nil, errors.New("E004").Wrap(err)
	}
	return path, value, nil
}
