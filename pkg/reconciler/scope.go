package reconciler

import (
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ResolveScope splits a composite release identifier.
//
// A release argument of the form <base>-<subchart> scopes the run to that
// one subchart when the subchart exists in the working set. When several
// subchart names are suffixes of the argument, the longest (most specific)
// wins. When none match, the whole argument is the release name and the run
// covers the parent plus every subchart.
func ResolveScope(release string, subcharts []string) (base, scoped string) {
	for _, name := range subcharts {
		if strings.HasSuffix(release, "-"+name) && len(name) > len(scoped) {
			scoped = name
		}
	}
	if scoped != "" {
		return strings.TrimSuffix(release, "-"+scoped), scoped
	}

	if i := strings.LastIndexByte(release, '-'); i > 0 {
		if closest := closestSubchart(release[i+1:], subcharts); closest != "" {
			slog.Debug("release suffix matches no subchart, running full deploy",
				"release", release, "suffix", release[i+1:], "closest_subchart", closest)
		}
	}
	return release, ""
}

// closestSubchart returns the known subchart nearest to s by edit distance,
// or empty when nothing is plausibly close.
func closestSubchart(s string, subcharts []string) string {
	best := ""
	bestDist := 3 // anything further is noise, not a typo
	for _, name := range subcharts {
		if d := levenshtein.ComputeDistance(s, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
