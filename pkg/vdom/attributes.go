package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Title sets the title attribute.
func Title(title string) Attr { return attr("title", title) }

// Hidden sets the boolean hidden attribute.
func Hidden(hidden bool) Attr { return attr("hidden", hidden) }

// AttrKV creates an arbitrary attribute.
func AttrKV(key string, value any) Attr { return attr(key, value) }
