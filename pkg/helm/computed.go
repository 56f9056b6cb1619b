package helm

import (
	"bufio"
	"bytes"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
)

// Banner lines delimiting the merged values section of a dry-run trace.
const (
	computedValuesBanner = "COMPUTED VALUES:"
	hooksBanner          = "HOOKS:"
)

// ExtractComputedValues returns the merged values document embedded in a
// "--dry-run --debug" trace: the lines strictly between the COMPUTED VALUES
// banner and the HOOKS banner, both banners excluded.
//
// The extracted bytes are returned verbatim. The trace may interleave
// engine-generated comments and block styles, and downstream partitioning
// must reproduce them byte-for-byte.
func ExtractComputedValues(trace []byte) ([]byte, error) {
	var out bytes.Buffer
	inSection := false
	sawBanner := false

	scanner := bufio.NewScanner(bytes.NewReader(trace))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case !inSection && line == computedValuesBanner:
			inSection = true
			sawBanner = true
		case inSection && line == hooksBanner:
			inSection = false
		case inSection:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeRenderFailed, "failed to scan dry-run trace", err)
	}

	if !sawBanner {
		return nil, oomerrors.New(oomerrors.ErrCodeRenderFailed, "dry-run trace contains no computed values section")
	}

	return out.Bytes(), nil
}
