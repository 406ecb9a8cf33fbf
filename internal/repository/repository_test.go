package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resolvo/internal/db"
	"resolvo/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Init(filepath.Join(t.TempDir(), "test.db")))
}

func TestWorkspaceRepository(t *testing.T) {
	initTestDB(t)
	repo := NewWorkspaceRepository()

	ws, err := repo.Add(model.Workspace{
		Name:      "dev",
		Owner:     "alice",
		ServerURL: "http://vcs.local",
		Mappings: []model.Mapping{
			{ServerPath: "$/proj", LocalPath: "/ws/proj"},
			{ServerPath: "$/docs", LocalPath: "/ws/docs"},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, ws.ID)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "dev", all[0].Name)
	assert.Len(t, all[0].Mappings, 2)

	got, err := repo.GetByName("dev")
	require.NoError(t, err)
	assert.Equal(t, ws.ID, got.ID)
	assert.Len(t, got.Mappings, 2)

	_, err = repo.GetByName("nope")
	require.Error(t, err)

	require.NoError(t, repo.Delete(ws.ID))

	all, err = repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// The mappings go with the workspace.
	var count int64
	require.NoError(t, db.DB.Model(&model.Mapping{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWorkspaceRepository_DuplicateName(t *testing.T) {
	initTestDB(t)
	repo := NewWorkspaceRepository()

	_, err := repo.Add(model.Workspace{Name: "dev", Owner: "a", ServerURL: "http://x"})
	require.NoError(t, err)

	_, err = repo.Add(model.Workspace{Name: "dev", Owner: "b", ServerURL: "http://y"})
	require.Error(t, err)
}

func TestHistoryRepository(t *testing.T) {
	initTestDB(t)
	repo := NewHistoryRepository()

	require.NoError(t, repo.Save(1, "dev", "/ws/a.txt", model.AcceptMerge, model.OutcomeResolved, nil))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Save(2, "dev", "/ws/b.txt", model.AcceptTheirs, model.OutcomeResolved, nil))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Save(3, "dev", "/ws/c.txt", model.AcceptMerge, model.OutcomeFailed, errors.New("merge failed")))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Save(4, "dev", "/ws/d.txt", "", model.OutcomeSkipped, nil))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Resolved)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Skipped)

	recent, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(4), recent[0].ConflictID)
	assert.Equal(t, int64(3), recent[1].ConflictID)
	assert.Equal(t, "merge failed", recent[1].ErrMsg)
}
