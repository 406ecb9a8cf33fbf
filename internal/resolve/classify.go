package resolve

import "resolvo/internal/model"

// CanMerge reports whether a conflict is eligible for automatic merging.
// Callers must filter with it before offering merge as a resolution; the
// accept path treats a non-mergeable conflict as a programming error.
func CanMerge(c *model.Conflict) bool {
	// Without a source item there is no prior location to merge from.
	if c.SourceLocalPath == "" {
		return false
	}

	ns := isNamespaceConflict(c)

	// Both sides touched the item.
	if !ns &&
		c.YourChange.ContainsAny(model.ChangeRename, model.ChangeEdit) &&
		c.BaseChange.ContainsAny(model.ChangeRename, model.ChangeEdit) {
		return true
	}

	// Merge-type content conflict on a file: local pending edits, a forced
	// conflict, or version drift since the last materialized state all make
	// a content merge worthwhile even when the masks above are quiet.
	if c.ItemType != model.ItemFolder && !ns &&
		c.Type == model.ConflictMerge && c.BaseChange.Contains(model.ChangeEdit) {
		if c.YourLocalChange.Contains(model.ChangeEdit) ||
			c.Forced ||
			c.TargetLocalVersion != c.BaseVersion ||
			c.YourLocalVersion != c.YourVersion {
			return true
		}
	}

	return false
}

// Namespace conflicts are competing path assignments; they only arise for
// get and checkin conflicts.
func isNamespaceConflict(c *model.Conflict) bool {
	return (c.Type == model.ConflictGet || c.Type == model.ConflictCheckin) && c.NameClash
}

func IsNameConflict(c *model.Conflict) bool {
	return c.YourChange.Contains(model.ChangeRename) || c.BaseChange.Contains(model.ChangeRename)
}

func IsContentConflict(c *model.Conflict) bool {
	return c.YourChange.Contains(model.ChangeEdit) || c.BaseChange.Contains(model.ChangeEdit)
}

// UnresolvedConflicts filters out conflicts the server already considers
// settled. An unresolved conflict without a server id means the detection
// phase broke its contract, which must fail loudly rather than slip through.
func UnresolvedConflicts(conflicts []*model.Conflict) []*model.Conflict {
	out := make([]*model.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		if c.Resolved {
			continue
		}

		assertf(c.ID != 0, "unresolved conflict without a server id (path %q)", c.LocalPath())
		out = append(out, c)
	}

	return out
}
