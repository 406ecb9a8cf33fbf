// Package mergers provides the non-interactive name and content merge
// collaborators the daemon injects into the resolution core.
package mergers

import (
	"fmt"

	"resolvo/internal/logger"
	"resolvo/internal/model"

	"go.uber.org/zap"
)

type NamePolicy string

const (
	NameKeepLocal  NamePolicy = "local"
	NameKeepServer NamePolicy = "server"
	NameAbort      NamePolicy = "abort"
)

// PolicyNameMerger settles competing names by configured policy instead of
// asking a user. The abort policy declines every name merge, which makes
// the core leave such conflicts untouched.
type PolicyNameMerger struct {
	policy NamePolicy
}

func NewPolicyNameMerger(policy string) (*PolicyNameMerger, error) {
	switch NamePolicy(policy) {
	case NameKeepLocal, NameKeepServer, NameAbort:
		return &PolicyNameMerger{policy: NamePolicy(policy)}, nil
	default:
		return nil, fmt.Errorf("unknown name_merge policy %q", policy)
	}
}

func (m *PolicyNameMerger) MergeName(ws *model.Workspace, c *model.Conflict) (string, bool, error) {
	var chosen string
	switch m.policy {
	case NameKeepLocal:
		chosen = c.YourServerPath
	case NameKeepServer:
		chosen = c.TheirServerPath
	case NameAbort:
		return "", false, nil
	}

	if chosen == "" {
		// The conflict does not carry a name for the preferred side, so
		// there is nothing to decide with. Treat it as declined.
		logger.Log.Debug("name merge has no candidate path",
			zap.Int64("conflict", c.ID),
			zap.String("policy", string(m.policy)))
		return "", false, nil
	}

	logger.Log.Debug("name merge decided",
		zap.Int64("conflict", c.ID),
		zap.String("workspace", ws.Name),
		zap.String("path", chosen))

	return chosen, true, nil
}
