// Package fetcher resolves a chart reference into an unpacked chart
// directory inside the run workspace.
//
// Supported reference forms: a local chart directory, a local .tgz archive,
// an http(s) URL to a .tgz archive, and an oci:// registry reference.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
)

// OCIScheme prefixes registry chart references.
const OCIScheme = "oci://"

const downloadTimeout = 2 * time.Minute

// Fetch resolves ref and unpacks the chart into dest, which must be an
// existing empty directory. On return dest contains the chart contents
// directly (Chart.yaml at dest root).
func Fetch(ctx context.Context, ref, dest string) error {
	slog.Debug("fetching chart", "reference", ref, "dest", dest)

	switch {
	case strings.HasPrefix(ref, OCIScheme):
		return fetchOCI(ctx, ref, dest)

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return fetchURL(ctx, ref, dest)

	default:
		return fetchLocal(ref, dest)
	}
}

// fetchLocal copies a chart directory or extracts a local archive.
func fetchLocal(ref, dest string) error {
	info, err := os.Stat(ref)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("chart reference %s not found", ref), err)
	}

	if info.IsDir() {
		if _, statErr := os.Stat(filepath.Join(ref, "Chart.yaml")); statErr != nil {
			return oomerrors.New(oomerrors.ErrCodeFetchFailed,
				fmt.Sprintf("%s is not a chart directory (no Chart.yaml)", ref))
		}
		if err := os.CopyFS(dest, os.DirFS(ref)); err != nil {
			return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
				fmt.Sprintf("failed to copy chart directory %s", ref), err)
		}
		return nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to open chart archive %s", ref), err)
	}
	defer f.Close()

	if err := extractChartArchive(f, dest); err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to extract chart archive %s", ref), err)
	}
	return nil
}

// fetchURL downloads a chart archive over HTTP and extracts it.
func fetchURL(ctx context.Context, ref, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed, "invalid chart URL", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to download chart from %s", ref), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oomerrors.New(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("chart download from %s returned status %d", ref, resp.StatusCode))
	}

	if err := extractChartArchive(resp.Body, dest); err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to extract chart downloaded from %s", ref), err)
	}
	return nil
}
