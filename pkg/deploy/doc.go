// Package deploy orchestrates an umbrella chart rollout.
//
// A deploy run fetches the parent chart into a fresh workspace, asks the
// release engine for the fully merged values document via a dry run, splits
// that document into a global override plus one override per subchart, and
// then reconciles the parent and every subchart as independent releases.
// Subcharts toggled off in the merged values are removed rather than
// installed. Undeploy walks the deployed listing and purges the parent and
// every release named under it.
package deploy
