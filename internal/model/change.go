package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Change uint16

const (
	ChangeAdd Change = 1 << iota
	ChangeEdit
	ChangeEncoding
	ChangeRename
	ChangeDelete
	ChangeUndelete
	ChangeBranch
	ChangeMerge
	ChangeLock
)

// Wire order is fixed so String output is deterministic.
var changeOrder = []Change{
	ChangeAdd, ChangeEdit, ChangeEncoding, ChangeRename, ChangeDelete,
	ChangeUndelete, ChangeBranch, ChangeMerge, ChangeLock,
}

var changeNames = map[Change]string{
	ChangeAdd:      "add",
	ChangeEdit:     "edit",
	ChangeEncoding: "encoding",
	ChangeRename:   "rename",
	ChangeDelete:   "delete",
	ChangeUndelete: "undelete",
	ChangeBranch:   "branch",
	ChangeMerge:    "merge",
	ChangeLock:     "lock",
}

// ChangeSet is a bitmask of Change values. The server transmits change
// vectors as space-separated names ("edit rename"); they are parsed into a
// ChangeSet exactly once when the conflict record is decoded, so predicates
// never touch the string form again.
type ChangeSet uint16

func ParseChangeSet(s string) (ChangeSet, error) {
	var cs ChangeSet
	for _, name := range strings.Fields(s) {
		found := false
		for ch, n := range changeNames {
			if n == strings.ToLower(name) {
				cs |= ChangeSet(ch)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown change kind %q", name)
		}
	}

	return cs, nil
}

func (cs ChangeSet) Contains(ch Change) bool {
	return cs&ChangeSet(ch) != 0
}

func (cs ChangeSet) ContainsAny(chs ...Change) bool {
	for _, ch := range chs {
		if cs.Contains(ch) {
			return true
		}
	}

	return false
}

func (cs ChangeSet) String() string {
	names := make([]string, 0, len(changeOrder))
	for _, ch := range changeOrder {
		if cs.Contains(ch) {
			names = append(names, changeNames[ch])
		}
	}

	return strings.Join(names, " ")
}

func (cs ChangeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.String())
}

func (cs *ChangeSet) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseChangeSet(s)
	if err != nil {
		return err
	}

	*cs = parsed
	return nil
}
