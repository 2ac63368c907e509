package host

import (
	"strings"
	"sync"
)

// Document is an in-memory Host: a flat list of elements addressable by
// "#id" or by tag name. It is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	elements []*Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Append adds an element with the given tag, id and initial markup.
func (d *Document) Append(tag, id, innerHTML string) *Element {
	el := &Element{tag: tag, id: id, html: innerHTML}
	d.mu.Lock()
	d.elements = append(d.elements, el)
	d.mu.Unlock()
	return el
}

// AppendFor adds a mount target that selector will match: a div with the
// id for "#id" selectors, otherwise an element with the selector as tag.
func (d *Document) AppendFor(selector, innerHTML string) *Element {
	selector = strings.TrimSpace(selector)
	if id, ok := strings.CutPrefix(selector, "#"); ok && id != "" {
		return d.Append("div", id, innerHTML)
	}
	return d.Append(selector, "", innerHTML)
}

// Element returns the first element matching selector.
// Supported selectors are "#id" and a bare tag name.
func (d *Document) Element(selector string) (*Element, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, el := range d.elements {
		if el.matches(selector) {
			return el, true
		}
	}
	return nil, false
}

// QuerySelector implements Host.
func (d *Document) QuerySelector(selector string) (Container, bool) {
	el, ok := d.Element(selector)
	if !ok {
		return nil, false
	}
	return el, true
}

// Element is a mount target inside a Document.
type Element struct {
	tag string
	id  string

	mu        sync.RWMutex
	html      string
	history   []string
	listeners []func(html string)
}

func (e *Element) matches(selector string) bool {
	if strings.HasPrefix(selector, "#") {
		return e.id != "" && selector[1:] == e.id
	}
	return strings.EqualFold(selector, e.tag)
}

// ID returns the element id.
func (e *Element) ID() string {
	return e.id
}

// Tag returns the element tag name.
func (e *Element) Tag() string {
	return e.tag
}

// InnerHTML implements Container.
func (e *Element) InnerHTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.html
}

// Replace implements Container. Listeners run synchronously after the
// content has been swapped.
func (e *Element) Replace(html string) {
	e.mu.Lock()
	e.html = html
	e.history = append(e.history, html)
	listeners := make([]func(string), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(html)
	}
}

// History returns every markup the element received through Replace, oldest
// first.
func (e *Element) History() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// OnReplace registers fn to be called after every Replace.
func (e *Element) OnReplace(fn func(html string)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// OuterHTML returns the element with its current content.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	b.WriteString("<" + e.tag)
	if e.id != "" {
		b.WriteString(` id="` + e.id + `"`)
	}
	b.WriteString(">")
	b.WriteString(e.InnerHTML())
	b.WriteString("</" + e.tag + ">")
	return b.String()
}
