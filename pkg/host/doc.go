// Package host defines the platform a tinyvue app mounts onto, and an
// in-memory implementation of it.
//
// A Host resolves selectors to Containers. A Container exposes its current
// markup (used as the template when an app has no render function) and
// accepts full replacements of that markup on every render.
//
//	doc := host.NewDocument()
//	doc.Append("div", "app", "<h3>{{ title }}</h3>")
//	el, _ := doc.Element("#app")
//	el.OnReplace(func(html string) { fmt.Println(html) })
package host
