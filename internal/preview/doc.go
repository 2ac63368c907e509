// Package preview serves a mounted component over HTTP.
//
// The page at / shows the current render. Browsers connect to
// /_tinyvue/live and receive every later render as a JSON message:
//
//	{"type":"render","html":"<h3>y</h3>"}
//
// State is read with GET /state and written with PUT /state/{path}, where
// path is a key or a dotted path into nested state and the body is a JSON
// value. POST /update forces a render. GET /metrics exposes Prometheus
// metrics for the component's runtime and the live clients.
//
// An app is not safe for concurrent use, so every handler touching it holds
// the server's mutex for the whole interaction. Renders, and therefore
// broadcasts, only happen while that mutex is held.
package preview
