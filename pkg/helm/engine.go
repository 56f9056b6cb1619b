package helm

import (
	"context"
	"io"
)

// Release statuses as reported by the engine's listing.
const (
	StatusDeployed        = "DEPLOYED"
	StatusFailed          = "FAILED"
	StatusDeleted         = "DELETED"
	StatusSuperseded      = "SUPERSEDED"
	StatusPendingInstall  = "PENDING_INSTALL"
	StatusPendingUpgrade  = "PENDING_UPGRADE"
	StatusPendingRollback = "PENDING_ROLLBACK"
)

// knownStatuses is the set of status tokens the listing parser recognizes.
var knownStatuses = map[string]struct{}{
	StatusDeployed:        {},
	StatusFailed:          {},
	StatusDeleted:         {},
	StatusSuperseded:      {},
	StatusPendingInstall:  {},
	StatusPendingUpgrade:  {},
	StatusPendingRollback: {},
}

// Release is one entry of the engine's release listing.
type Release struct {
	Name      string `json:"name" yaml:"name"`
	Revision  string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Chart     string `json:"chart,omitempty" yaml:"chart,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// ApplyRequest describes one install-or-upgrade release operation.
type ApplyRequest struct {
	// Release is the target release name.
	Release string

	// ChartDir is the unpacked chart directory to apply.
	ChartDir string

	// ValueFiles are override documents applied in increasing priority.
	ValueFiles []string

	// ExtraArgs are pass-through flags forwarded verbatim.
	ExtraArgs []string
}

// Engine abstracts the external release engine.
// All blocking operations take a context; log receives the engine's raw
// output for the per-target log files.
type Engine interface {
	// ComputedValues renders the chart non-mutatingly with the given flags
	// and returns the fully merged values document.
	ComputedValues(ctx context.Context, release, chartDir string, flags []string) ([]byte, error)

	// Apply installs the release if absent or upgrades it in place.
	Apply(ctx context.Context, req ApplyRequest, log io.Writer) error

	// Destroy removes a release and purges its history.
	Destroy(ctx context.Context, release string, log io.Writer) error

	// Releases returns the current release listing.
	Releases(ctx context.Context) ([]Release, error)
}
