package mergers

import (
	"fmt"
	"strings"

	"resolvo/internal/localfs"
	"resolvo/internal/logger"
	"resolvo/internal/merge"
	"resolvo/internal/model"
	"resolvo/internal/resolve"

	"go.uber.org/zap"
)

// ThreeWayMerger merges the triplet line-wise and writes the result to the
// resolved location. Overlapping edits stay in the file between conflict
// markers for the user to settle; that still counts as a completed merge.
type ThreeWayMerger struct{}

func NewThreeWayMerger() *ThreeWayMerger {
	return &ThreeWayMerger{}
}

func (m *ThreeWayMerger) MergeContent(c *model.Conflict, t resolve.ContentTriplet, localPath, resolvedPath string) error {
	merged, clean := merge.Merge(t.Base, t.Local, t.Server)
	if !clean {
		logger.Log.Warn("content merge left conflict markers",
			zap.Int64("conflict", c.ID),
			zap.String("path", resolvedPath))
	}

	dst := resolvedPath
	if dst == "" {
		dst = localPath
	}

	if err := localfs.AtomicWrite(dst, strings.NewReader(merged)); err != nil {
		return fmt.Errorf("failed to write merge result: %w", err)
	}

	// When the merged name moved the file, the old location must not keep a
	// stale copy around.
	if dst != localPath {
		if err := localfs.RemoveIfExists(localPath); err != nil {
			return err
		}
	}

	return nil
}
