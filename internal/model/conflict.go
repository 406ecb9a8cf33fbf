package model

type ConflictType string

const (
	ConflictMerge   ConflictType = "merge"
	ConflictGet     ConflictType = "get"
	ConflictCheckin ConflictType = "checkin"
)

type ItemType string

const (
	ItemFile   ItemType = "file"
	ItemFolder ItemType = "folder"
)

// Conflict is one detected collision between local pending changes and the
// server state of a single item. Records come from the detection phase on
// the server; this side never creates them.
//
// BaseVersion/YourVersion are the versions the change vectors were computed
// against, TargetVersion is the latest committed version of the target item,
// and TargetLocalVersion/YourLocalVersion are the versions the local working
// copy last materialized. The gap between the two pairs is how a stale
// working copy is detected even when the change masks are empty.
type Conflict struct {
	ID       int64        `json:"id"`
	Type     ConflictType `json:"type"`
	ItemType ItemType     `json:"item_type"`

	SourceLocalPath string `json:"source_local_path"`
	TargetLocalPath string `json:"target_local_path"`
	YourServerPath  string `json:"your_server_path"`
	TheirServerPath string `json:"their_server_path"`

	NameClash bool `json:"name_clash"`
	Resolved  bool `json:"resolved"`
	Forced    bool `json:"forced"`

	BaseChange      ChangeSet `json:"base_change"`
	YourChange      ChangeSet `json:"your_change"`
	YourLocalChange ChangeSet `json:"your_local_change"`

	BaseVersion        int `json:"base_version"`
	TargetVersion      int `json:"target_version"`
	YourVersion        int `json:"your_version"`
	YourLocalVersion   int `json:"your_local_version"`
	TargetLocalVersion int `json:"target_local_version"`

	BaseItemID   int64 `json:"base_item_id"`
	TargetItemID int64 `json:"target_item_id"`
}

// LocalPath is the path the conflict is reported under: the pre-rename
// source location when one exists, the target location otherwise. At least
// one of the two is always set.
func (c *Conflict) LocalPath() string {
	if c.SourceLocalPath != "" {
		return c.SourceLocalPath
	}

	return c.TargetLocalPath
}
