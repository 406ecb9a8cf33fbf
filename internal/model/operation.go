package model

type Resolution string

const (
	AcceptMerge  Resolution = "merge"
	AcceptYours  Resolution = "yours"
	AcceptTheirs Resolution = "theirs"
)

const (
	// LockLevelUnchanged tells the server to leave the item's lock as is.
	LockLevelUnchanged = "unchanged"

	// NoChangeID marks a resolution that is not tied to an explicit changeset.
	NoChangeID = -2
)

// GetOperation is one server instruction to bring a local item to a
// versioned state. Version 0 means the item no longer exists at the
// resolved state and the local copy must be removed.
type GetOperation struct {
	ItemID          int64    `json:"item_id"`
	ItemType        ItemType `json:"item_type"`
	ServerPath      string   `json:"server_path"`
	SourceLocalPath string   `json:"source_local_path"`
	TargetLocalPath string   `json:"target_local_path"`
	Version         int      `json:"version"`
}

func (op *GetOperation) IsDelete() bool {
	return op.Version == 0
}

type ResolveRequest struct {
	ConflictID   int64      `json:"conflict_id"`
	Resolution   Resolution `json:"resolution"`
	LockLevel    string     `json:"lock_level"`
	ChangeID     int        `json:"change_id"`
	NewLocalPath string     `json:"new_local_path,omitempty"`
}

// ResolveResponse carries the operations the server wants applied after it
// accepted a resolution: ResultOps reach the resolved state, UndoOps revert
// speculative local state left over from the conflicting change.
type ResolveResponse struct {
	ResultOps []GetOperation `json:"result_ops"`
	UndoOps   []GetOperation `json:"undo_ops"`
}
