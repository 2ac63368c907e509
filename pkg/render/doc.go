// Package render serializes vdom nodes to HTML.
//
// Mounting in tinyvue is full-replace: every time a render computation runs,
// its node is rendered to a string here and the mount target's contents are
// swapped for it. Text and attribute values are escaped; Raw nodes are
// written verbatim.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(vdom.H3(vdom.Text(title)))
package render
