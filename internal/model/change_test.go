package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeSet(t *testing.T) {
	cs, err := ParseChangeSet("edit rename")
	require.NoError(t, err)

	assert.True(t, cs.Contains(ChangeEdit))
	assert.True(t, cs.Contains(ChangeRename))
	assert.False(t, cs.Contains(ChangeDelete))
	assert.True(t, cs.ContainsAny(ChangeDelete, ChangeRename))
	assert.False(t, cs.ContainsAny(ChangeAdd, ChangeLock))
}

func TestParseChangeSet_CaseInsensitive(t *testing.T) {
	cs, err := ParseChangeSet("Edit RENAME")
	require.NoError(t, err)

	assert.True(t, cs.Contains(ChangeEdit))
	assert.True(t, cs.Contains(ChangeRename))
}

func TestParseChangeSet_Empty(t *testing.T) {
	cs, err := ParseChangeSet("")
	require.NoError(t, err)
	assert.Equal(t, ChangeSet(0), cs)
	assert.Equal(t, "", cs.String())
}

func TestParseChangeSet_Unknown(t *testing.T) {
	_, err := ParseChangeSet("edit explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown change kind "explode"`)
}

func TestChangeSetString_WireOrder(t *testing.T) {
	// The string form is deterministic regardless of input order.
	cs, err := ParseChangeSet("rename add edit")
	require.NoError(t, err)
	assert.Equal(t, "add edit rename", cs.String())
}

func TestConflictJSON_ChangeMasks(t *testing.T) {
	raw := `{
		"id": 41,
		"type": "merge",
		"item_type": "file",
		"source_local_path": "/ws/a.txt",
		"base_change": "edit",
		"your_change": "edit rename"
	}`

	var c Conflict
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, int64(41), c.ID)
	assert.Equal(t, ConflictMerge, c.Type)
	assert.True(t, c.BaseChange.Contains(ChangeEdit))
	assert.True(t, c.YourChange.Contains(ChangeRename))
	assert.False(t, c.YourLocalChange.Contains(ChangeEdit))

	// And back out as the same wire form.
	b, err := json.Marshal(c.YourChange)
	require.NoError(t, err)
	assert.JSONEq(t, `"edit rename"`, string(b))
}
