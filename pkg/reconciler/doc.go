// Package reconciler drives release transitions for a deploy run.
//
// The deploy flow hands it an ordered target list: the parent release first
// (unless the run is scoped to one subchart), then every detached subchart.
// Each target moves Pending -> Applying -> Succeeded|Failed independently;
// subcharts additionally carry an Enabled classification that selects
// between install-or-upgrade and remove-with-purge.
//
// Execution is sequential and never fail-fast: one target's failure is
// recorded and the loop proceeds. The executor runs targets through an
// errgroup with a concurrency limit of one, so bounded concurrency is a
// scheduling change rather than a logic change.
package reconciler
