package resolve

import (
	"context"
	"fmt"

	"resolvo/internal/model"
	"resolvo/internal/progress"
)

// buildTriplet gathers ancestor, current local and latest server content for
// a content conflict. The fetch runs under a cancellable progress scope; a
// snapshot that does not exist at its state comes back as "".
func (r *Resolver) buildTriplet(ctx context.Context, ws Workspace, c *model.Conflict, localPath string) (ContentTriplet, error) {
	var t ContentTriplet

	err := progress.Run(ctx, "loading conflict content", func(ctx context.Context) error {
		base, err := ws.Client.GetContent(ctx, c.BaseItemID, c.BaseVersion)
		if err != nil {
			return fmt.Errorf("unable to get content for item %s: %w", localPath, err)
		}

		// The file may not be indexed yet, so force discovery before reading.
		local := ""
		if r.files.RefreshAndFind(localPath) {
			local, err = r.files.Read(localPath)
			if err != nil {
				return fmt.Errorf("unable to get content for item %s: %w", localPath, err)
			}
		}

		server, err := ws.Client.GetContent(ctx, c.TargetItemID, c.TargetVersion)
		if err != nil {
			return fmt.Errorf("unable to get content for item %s: %w", localPath, err)
		}

		t = ContentTriplet{Base: base, Local: local, Server: server}
		return nil
	})

	return t, err
}
