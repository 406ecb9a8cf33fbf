package daemon

import (
	"context"
	"fmt"
	"time"

	"resolvo/internal/ledger"
	"resolvo/internal/logger"
	"resolvo/internal/model"
	"resolvo/internal/resolve"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one resolution run: a fresh conflict query across every
// registered workspace, a resolver over the result and the ledger the run
// writes into. Sessions live in daemon memory only; rebuilding one discards
// the previous ledger and pending view.
type Session struct {
	ID        string
	StartedAt time.Time
	Resolver  *resolve.Resolver
	Ledger    *ledger.Ledger
}

func NewSession(ctx context.Context, workspaces []resolve.Workspace, names resolve.NameMerger, content resolve.ContentMerger, files resolve.LocalFiles) (*Session, error) {
	led := ledger.New()

	groups := make([]resolve.WorkspaceConflicts, 0, len(workspaces))
	total := 0
	for _, ws := range workspaces {
		conflicts, err := ws.Client.QueryConflicts(ctx, ws.Info.Name, ws.Info.Owner)
		if err != nil {
			return nil, fmt.Errorf("failed to query conflicts for workspace %s: %w", ws.Info.Name, err)
		}

		ptrs := make([]*model.Conflict, 0, len(conflicts))
		for i := range conflicts {
			ptrs = append(ptrs, &conflicts[i])
		}

		pending := resolve.UnresolvedConflicts(ptrs)
		groups = append(groups, resolve.WorkspaceConflicts{Workspace: ws, Conflicts: pending})
		total += len(pending)
	}

	s := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Resolver:  resolve.New(groups, names, content, files, led),
		Ledger:    led,
	}

	logger.Log.Info("resolution session started",
		zap.String("session", s.ID),
		zap.Int("workspaces", len(workspaces)),
		zap.Int("conflicts", total))

	return s, nil
}
