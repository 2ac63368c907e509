// Package app mounts reactive components onto a host.
//
// A component is a data map, an optional setup map and a render function.
// Mounting observes both maps and wraps rendering in a tracked computation,
// so every write through the Proxy re-renders the component and replaces
// the container's markup:
//
//	doc := host.NewDocument()
//	doc.Append("div", "app", "")
//
//	a := app.CreateRenderer(doc).CreateApp(app.Options{
//	    Setup: func() map[string]any {
//	        return map[string]any{"state": map[string]any{"title": "x"}}
//	    },
//	    Render: func(p *app.Proxy) *vdom.VNode {
//	        return vdom.H3(vdom.Textf("%v", p.Path("state.title")))
//	    },
//	})
//	_ = a.Mount("#app")          // <h3>x</h3>
//	a.Proxy().Record("state").Set("title", "y") // <h3>y</h3>
//
// When Options.Render is nil the container's own markup is compiled as a
// template with {{ path }} placeholders.
//
// An App is not safe for concurrent use. See internal/preview for the
// locking discipline used when an app is shared between goroutines.
package app
