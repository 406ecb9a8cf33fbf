// Package resolve is the reconciliation core: it classifies detected
// conflicts, drives name and content merging, submits resolutions to the
// owning server and keeps the local working copy and the session ledger
// consistent with the outcome.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"resolvo/internal/apply"
	"resolvo/internal/ledger"
	"resolvo/internal/logger"
	"resolvo/internal/model"
	"resolvo/internal/vcs"

	"go.uber.org/zap"
)

// Workspace is the server-side context a conflict is resolved against.
type Workspace struct {
	Info   *model.Workspace
	Client vcs.Client
}

// WorkspaceConflicts groups the conflicts detected in one workspace, the
// shape the Resolver is constructed from.
type WorkspaceConflicts struct {
	Workspace Workspace
	Conflicts []*model.Conflict
}

type entry struct {
	conflict  *model.Conflict
	workspace Workspace
}

// Resolver owns the conflict-to-workspace table for one resolution session.
// The table is built once at construction; entries leave it only through
// successful resolution. Its remaining key set is the pending-conflicts view.
type Resolver struct {
	mu      sync.Mutex
	pending map[int64]entry

	names   NameMerger
	content ContentMerger
	files   LocalFiles
	ledger  *ledger.Ledger
}

func New(groups []WorkspaceConflicts, names NameMerger, content ContentMerger, files LocalFiles, led *ledger.Ledger) *Resolver {
	pending := make(map[int64]entry)
	for _, g := range groups {
		for _, c := range g.Conflicts {
			assertf(c.ID != 0, "conflict without a server id (path %q)", c.LocalPath())
			_, dup := pending[c.ID]
			assertf(!dup, "conflict %d registered twice", c.ID)
			pending[c.ID] = entry{conflict: c, workspace: g.Workspace}
		}
	}

	return &Resolver{
		pending: pending,
		names:   names,
		content: content,
		files:   files,
		ledger:  led,
	}
}

// Conflicts returns the still-pending conflicts, unordered.
func (r *Resolver) Conflicts() []*model.Conflict {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Conflict, 0, len(r.pending))
	for _, e := range r.pending {
		out = append(out, e.conflict)
	}

	return out
}

// ConflictsByWorkspace groups the pending conflicts by workspace name, the
// unit independent resolution runs may parallelize over.
func (r *Resolver) ConflictsByWorkspace() map[string][]*model.Conflict {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]*model.Conflict)
	for _, e := range r.pending {
		name := e.workspace.Info.Name
		out[name] = append(out[name], e.conflict)
	}

	return out
}

func (r *Resolver) Lookup(id int64) (*model.Conflict, bool) {
	e, ok := r.lookup(id)
	if !ok {
		return nil, false
	}

	return e.conflict, true
}

// WorkspaceFor returns the workspace handle a pending conflict belongs to.
func (r *Resolver) WorkspaceFor(id int64) (Workspace, bool) {
	e, ok := r.lookup(id)
	return e.workspace, ok
}

// AcceptMerge resolves a conflict by merging both sides' names and content.
// The conflict must satisfy CanMerge. Returns nil without any side effects
// when the name merge is declined.
func (r *Resolver) AcceptMerge(ctx context.Context, c *model.Conflict) error {
	assertf(CanMerge(c), "conflict %d is not mergeable", c.ID)

	e, ok := r.lookup(c.ID)
	assertf(ok, "no workspace registered for conflict %d", c.ID)
	ws := e.workspace

	localPath := c.LocalPath()

	var triplet ContentTriplet
	if IsContentConflict(c) {
		var err error
		triplet, err = r.buildTriplet(ctx, ws, c, localPath)
		if err != nil {
			return err
		}
	}

	resolvedPath := c.TargetLocalPath
	if IsNameConflict(c) {
		serverPath, ok, err := r.names.MergeName(ws.Info, c)
		if err != nil {
			return fmt.Errorf("failed to merge name for %s: %w", localPath, err)
		}
		if !ok {
			// Declined. Nothing has been touched yet, so this is a clean abort.
			logger.Log.Debug("name merge declined", zap.Int64("conflict", c.ID))
			return nil
		}

		p, found := ws.Info.FindLocalPath(serverPath)
		assertf(found, "merged server path %s has no local mapping in workspace %s", serverPath, ws.Info.Name)
		resolvedPath = p
	}

	if IsContentConflict(c) {
		assertf(c.ItemType == model.ItemFile, "folder conflict %d cannot carry a content change", c.ID)

		if !r.files.RefreshAndFind(localPath) {
			return fmt.Errorf("file %q is missing", localPath)
		}
		if err := r.files.ClearReadOnly(localPath); err != nil {
			return fmt.Errorf("failed to make %s writable: %w", localPath, err)
		}
		if err := r.content.MergeContent(c, triplet, localPath, resolvedPath); err != nil {
			return fmt.Errorf("failed to merge content for %s: %w", localPath, err)
		}
	}

	return r.conflictResolved(ctx, c, model.AcceptMerge, resolvedPath)
}

// AcceptYours keeps the local version. The server sends no download
// operations for this resolution, so the outcome is recorded into the
// skipped ledger group directly.
func (r *Resolver) AcceptYours(ctx context.Context, c *model.Conflict) error {
	if err := r.conflictResolved(ctx, c, model.AcceptYours, ""); err != nil {
		return err
	}

	r.ledger.Add(ledger.GroupSkipped, c.LocalPath())
	return nil
}

// AcceptTheirs takes the server version; the returned operations drive all
// ledger updates.
func (r *Resolver) AcceptTheirs(ctx context.Context, c *model.Conflict) error {
	return r.conflictResolved(ctx, c, model.AcceptTheirs, "")
}

// Skip records the conflict as skipped without resolving it. The conflict
// stays pending.
func (r *Resolver) Skip(c *model.Conflict) {
	r.ledger.Add(ledger.GroupSkipped, c.LocalPath())
}

// conflictResolved submits the resolution and materializes the server's
// answer. Once the submission succeeds the conflict is settled server-side
// and leaves the pending table regardless of how the local apply goes; a
// failed apply surfaces as an error against an already-resolved conflict.
func (r *Resolver) conflictResolved(ctx context.Context, c *model.Conflict, res model.Resolution, newLocalPath string) error {
	assertf(!c.Resolved, "conflict %d is already resolved", c.ID)

	e, ok := r.lookup(c.ID)
	assertf(ok, "no workspace registered for conflict %d", c.ID)
	ws := e.workspace

	req := model.ResolveRequest{
		ConflictID:   c.ID,
		Resolution:   res,
		LockLevel:    model.LockLevelUnchanged,
		ChangeID:     model.NoChangeID,
		NewLocalPath: newLocalPath,
	}

	resp, err := ws.Client.Resolve(ctx, ws.Info.Name, ws.Info.Owner, req)
	if err != nil {
		return fmt.Errorf("failed to resolve conflict %d: %w", c.ID, err)
	}

	r.remove(c.ID)
	c.Resolved = true

	logger.Log.Info("conflict resolved",
		zap.Int64("conflict", c.ID),
		zap.String("resolution", string(res)),
		zap.String("workspace", ws.Info.Name),
		zap.Int("result_ops", len(resp.ResultOps)),
		zap.Int("undo_ops", len(resp.UndoOps)))

	mode := apply.ModeMerge
	if res == model.AcceptTheirs {
		mode = apply.ModeForce
	}

	if len(resp.ResultOps) > 0 {
		if errs := apply.Execute(ctx, ws.Client, ws.Info, resp.ResultOps, mode, r.ledger); len(errs) > 0 {
			return fmt.Errorf("failed to apply resolution for conflict %d: %w", c.ID, errors.Join(errs...))
		}
	}

	// Undo operations revert speculative local state and must always win,
	// whatever the resolution was.
	if len(resp.UndoOps) > 0 {
		if errs := apply.Execute(ctx, ws.Client, ws.Info, resp.UndoOps, apply.ModeForce, r.ledger); len(errs) > 0 {
			return fmt.Errorf("failed to undo local changes for conflict %d: %w", c.ID, errors.Join(errs...))
		}
	}

	// With no operations at all the local tree never hears about the
	// resolution, so a pure rename records its outcome here.
	if len(resp.ResultOps) == 0 && len(resp.UndoOps) == 0 && newLocalPath != "" {
		r.ledger.Add(ledger.GroupMerged, newLocalPath)
	}

	return nil
}

func (r *Resolver) lookup(id int64) (entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pending[id]
	return e, ok
}

func (r *Resolver) remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, id)
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
