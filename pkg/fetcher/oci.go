package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
)

// HelmChartMediaType is the layer media type helm uses for chart content.
const HelmChartMediaType = "application/vnd.cncf.helm.chart.content.v1.tar+gzip"

// fetchOCI pulls a chart artifact from an OCI registry and extracts its
// content layer into dest.
func fetchOCI(ctx context.Context, ref, dest string) error {
	raw := strings.TrimPrefix(ref, OCIScheme)

	if _, err := reference.ParseDockerRef(raw); err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("invalid OCI chart reference %s", ref), err)
	}

	repo, err := remote.NewRepository(raw)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to resolve OCI repository for %s", ref), err)
	}

	tag := repo.Reference.Reference
	if tag == "" {
		tag = "latest"
	}

	store := memory.New()
	desc, err := oras.Copy(ctx, repo, tag, store, tag, oras.DefaultCopyOptions)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to pull %s", ref), err)
	}
	slog.Debug("pulled OCI artifact", "reference", ref, "digest", desc.Digest.String(), "media_type", desc.MediaType)

	layer, err := chartLayer(ctx, store, desc)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("pulled artifact %s contains no chart layer", ref), err)
	}

	rc, err := store.Fetch(ctx, layer)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed, "failed to read chart layer", err)
	}
	defer rc.Close()

	if err := extractChartArchive(rc, dest); err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeFetchFailed,
			fmt.Sprintf("failed to extract chart pulled from %s", ref), err)
	}
	return nil
}

// chartLayer locates the chart content layer in the pulled manifest.
func chartLayer(ctx context.Context, store content.Fetcher, manifestDesc ocispec.Descriptor) (ocispec.Descriptor, error) {
	manifestBytes, err := content.FetchAll(ctx, store, manifestDesc)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	var manifest ocispec.Manifest
	if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("failed to decode manifest: %w", err)
	}

	for _, layer := range manifest.Layers {
		if layer.MediaType == HelmChartMediaType {
			return layer, nil
		}
	}

	// Some registries repackage charts as generic gzip layers.
	for _, layer := range manifest.Layers {
		if strings.HasSuffix(layer.MediaType, "tar+gzip") || strings.HasSuffix(layer.MediaType, "tar.gzip") {
			return layer, nil
		}
	}

	return ocispec.Descriptor{}, fmt.Errorf("manifest has no tar+gzip layer among %d layers", len(manifest.Layers))
}
