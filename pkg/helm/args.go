package helm

import "strings"

// overrideFlagNames are the flag names whose values feed the dry-run merge.
// Everything else is forwarded unchanged to every release operation, which
// receives override files instead of raw values and must not see the same
// keys twice.
var overrideFlagNames = map[string]struct{}{
	"-f":           {},
	"--values":     {},
	"--set":        {},
	"--set-string": {},
}

// SplitOverrideArgs partitions helm arguments into override-bearing flags and
// pass-through flags.
//
// Override-bearing flags keep their original relative order: the engine
// resolves same-key conflicts with right-most-wins precedence, so reordering
// here would silently change the merge result. Matching anchors on whole
// argument tokens, so "-f" never matches "--force" and "--set" never matches
// "--set-string". Both "--set k=v" and "--set=k=v" forms are recognized.
//
// The function is purely functional; args is not modified.
func SplitOverrideArgs(args []string) (overrides, passthrough []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if _, ok := overrideFlagNames[arg]; ok {
			if i+1 < len(args) {
				overrides = append(overrides, arg, args[i+1])
				i++
			} else {
				// Trailing flag with no value; let the engine reject it.
				overrides = append(overrides, arg)
			}
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if _, ok := overrideFlagNames[name]; ok {
				overrides = append(overrides, arg)
				continue
			}
		}

		passthrough = append(passthrough, arg)
	}
	return overrides, passthrough
}
