// Package vdom provides the node type render functions return.
//
// A VNode is a plain description of an element, a text run, raw markup or a
// fragment. tinyvue never diffs nodes: every render produces a fresh tree
// which is serialized and replaces the mount target's contents wholesale.
//
// # Element API
//
// Elements are created with variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H3(Text(title)),
//	    P("plain strings become text nodes"),
//	)
package vdom
