// Package apply materializes server get-operations in the local working
// copy. FORCE mode overwrites local content unconditionally; MERGE mode
// leaves differing local content in place, since the resolved bytes are
// already on disk when the server asks for a merge download.
package apply

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resolvo/internal/ledger"
	"resolvo/internal/localfs"
	"resolvo/internal/model"
	"resolvo/internal/vcs"
)

type Mode string

const (
	ModeMerge Mode = "MERGE"
	ModeForce Mode = "FORCE"
)

// Execute applies ops one at a time and collects per-item failures instead
// of stopping at the first. Every returned error names the local path it
// belongs to.
func Execute(ctx context.Context, client vcs.Client, ws *model.Workspace, ops []model.GetOperation, mode Mode, led *ledger.Ledger) []error {
	var errs []error
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := applyOne(ctx, client, ws, op, mode, led); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

func applyOne(ctx context.Context, client vcs.Client, ws *model.Workspace, op model.GetOperation, mode Mode, led *ledger.Ledger) error {
	if op.IsDelete() {
		return removeItem(ws, op, led)
	}

	target := targetPath(ws, op)
	if target == "" {
		return fmt.Errorf("no local path for server item %s", op.ServerPath)
	}

	// A pending rename lands first so content goes to the final location.
	if op.SourceLocalPath != "" && op.SourceLocalPath != target {
		if _, err := os.Stat(op.SourceLocalPath); err == nil {
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("%s: %w", target, err)
			}
			if err := os.Rename(op.SourceLocalPath, target); err != nil {
				return fmt.Errorf("%s: %w", target, err)
			}
		}
	}

	if op.ItemType == model.ItemFolder {
		return applyFolder(target, led)
	}

	return applyFile(ctx, client, op, target, mode, led)
}

func applyFolder(target string, led *ledger.Ledger) error {
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	led.Add(ledger.GroupCreated, target)
	return nil
}

func applyFile(ctx context.Context, client vcs.Client, op model.GetOperation, target string, mode Mode, led *ledger.Ledger) error {
	content, err := client.GetContent(ctx, op.ItemID, op.Version)
	if err != nil {
		return fmt.Errorf("unable to get content for item %s: %w", target, err)
	}

	existing, exists, err := readIfExists(target)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	if mode == ModeMerge && exists && existing != content {
		led.Add(ledger.GroupMerged, target)
		return nil
	}

	if exists {
		if err := localfs.MakeWritable(target); err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
	}

	if err := localfs.AtomicWrite(target, strings.NewReader(content)); err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	if exists {
		led.Add(ledger.GroupUpdated, target)
	} else {
		led.Add(ledger.GroupCreated, target)
	}

	return nil
}

func removeItem(ws *model.Workspace, op model.GetOperation, led *ledger.Ledger) error {
	path := op.SourceLocalPath
	if path == "" {
		path = op.TargetLocalPath
	}
	if path == "" && op.ServerPath != "" {
		path, _ = ws.FindLocalPath(op.ServerPath)
	}
	if path == "" {
		return fmt.Errorf("no local path for deleted server item %s", op.ServerPath)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	led.Add(ledger.GroupRemoved, path)
	return nil
}

func targetPath(ws *model.Workspace, op model.GetOperation) string {
	if op.TargetLocalPath != "" {
		return op.TargetLocalPath
	}

	if op.ServerPath != "" {
		if p, ok := ws.FindLocalPath(op.ServerPath); ok {
			return p
		}
	}

	return ""
}

func readIfExists(path string) (string, bool, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return string(b), true, nil
}
