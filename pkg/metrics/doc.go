// Package metrics provides Prometheus instrumentation for lazyflow sequences.
//
// # Overview
//
// A Registry groups the collectors that describe sequence traversals. Every
// traversal of an instrumented sequence (see seq.Sequence.Instrument) counts
// as one cursor lifetime: it starts when a terminal operation creates the
// cursor and ends when the cursor is closed.
//
// # Quick Start
//
//	registry := metrics.NewRegistry(prometheus.NewRegistry())
//	naturals := seq.Naturals().Instrument(registry, "naturals")
//	first, _ := naturals.Take(ctx, 10)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Configuration
//
// NewRegistryWithConfig honours Config.Enabled: a disabled config yields a
// nil *Registry, and a nil registry records nothing, so instrumented code does
// not need to branch on whether metrics are on. Config.Validate rejects a
// constant label named "sequence" and unsorted DurationBuckets;
// NewRegistryWithConfig panics on such a config.
//
// # Available Metrics
//
//   - lazyflow_sequence_traversals_total: traversals started
//   - lazyflow_sequence_elements_total: elements yielded
//   - lazyflow_sequence_errors_total: traversals that ended with an error
//   - lazyflow_sequence_active_traversals: traversals in progress
//   - lazyflow_sequence_traversal_duration_seconds: cursor lifetime
//
// All metrics carry a "sequence" label with the name given to Instrument.
package metrics
