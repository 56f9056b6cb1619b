// Package helm is a thin client for the external Helm release engine.
//
// The deployer never links Helm in-process: every release operation shells
// out to the helm binary through a narrow Engine interface, so the rest of
// the codebase (and its tests) only ever see release names, chart
// directories, override files, and status listings.
//
// The package also owns the two pieces of Helm-specific text handling the
// deploy flow depends on:
//
//   - SplitOverrideArgs partitions raw helm arguments into override-bearing
//     flags (consumed by the dry-run merge) and pass-through flags (forwarded
//     to every upgrade call).
//   - ExtractComputedValues cuts the merged values document out of a
//     "--dry-run --debug" trace, delimited by the COMPUTED VALUES and HOOKS
//     banners.
//
// The exec-backed engine throttles successive helm invocations: the engine
// backend serializes release operations poorly under load, and a deploy run
// may issue dozens of calls back to back.
package helm
