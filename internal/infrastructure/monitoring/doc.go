/*
Package monitoring provides Prometheus metrics for roster loads.

# Overview

Each load counts fetches by outcome, parsed and skipped moves, placeholder
hitbox images, and moves whose row had fewer cells than the layout expects. A
steady climb in the last one usually means the wiki template changed.

# Usage

	metrics := monitoring.NewMetrics()
	metrics.RecordFetch("ok", time.Since(start))
	metrics.RecordMoveSkipped("Ryu", "no name")

	fmt.Println(metrics.Snapshot().MovesParsed)

Collectors are registered on a private registry by default so several loaders
(and tests) can coexist; use NewMetricsWith to register on a shared one.
*/
package monitoring
