// Package metrics exports tinyvue activity to Prometheus.
//
// Collector implements reactive.Observer, so plugging it into a runtime is
// enough to count allocated cells, triggers, computation runs and cycles:
//
//	m := metrics.New(metrics.WithRegistry(reg))
//	r := app.CreateRenderer(doc, app.WithRuntimeOptions(reactive.WithObserver(m)))
//
// The preview server additionally reports live clients and broadcasts
// through the Record* methods.
//
// Metrics collected:
//   - tinyvue_cells_allocated_total
//   - tinyvue_triggers_total
//   - tinyvue_replays_total
//   - tinyvue_computation_runs_total{status}
//   - tinyvue_computation_duration_seconds
//   - tinyvue_cycles_total
//   - tinyvue_live_clients
//   - tinyvue_broadcasts_total
package metrics
