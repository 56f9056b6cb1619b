package reconciler

// Kind classifies a reconcile target.
type Kind string

const (
	// KindParent is the umbrella release itself.
	KindParent Kind = "parent"

	// KindSubchart is one independently deployable subchart release.
	KindSubchart Kind = "subchart"
)

// State is a target's position in the reconcile lifecycle.
type State string

const (
	StatePending   State = "Pending"
	StateApplying  State = "Applying"
	StateSucceeded State = "Succeeded"
	StateFailed    State = "Failed"
)

// Action names the transition taken for a target.
type Action string

const (
	// ActionApply installs the release if absent or upgrades it in place.
	ActionApply Action = "apply"

	// ActionRemove deletes every matching deployed release, purging history.
	ActionRemove Action = "remove"
)

// Target is one release transition to reconcile.
type Target struct {
	// Name is the logical target name (the subchart name, or the release
	// name for the parent).
	Name string

	// Release is the release name the engine operates on.
	Release string

	// Kind distinguishes the parent from subcharts.
	Kind Kind

	// ChartDir is the unpacked chart to apply.
	ChartDir string

	// ValueFiles are override documents in increasing priority.
	ValueFiles []string

	// ExtraArgs are pass-through flags forwarded to apply operations.
	ExtraArgs []string

	// Enabled selects install-or-upgrade vs removal for subcharts.
	// The parent is always applied.
	Enabled bool
}

// action returns the transition this target takes.
func (t Target) action() Action {
	if t.Kind == KindParent || t.Enabled {
		return ActionApply
	}
	return ActionRemove
}

// Result is the recorded outcome of one target's transition.
type Result struct {
	Target  string `json:"target" yaml:"target"`
	Release string `json:"release" yaml:"release"`
	Action  Action `json:"action" yaml:"action"`
	State   State  `json:"state" yaml:"state"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`

	// Err is the underlying failure, nil for succeeded targets.
	Err error `json:"-" yaml:"-"`
}
