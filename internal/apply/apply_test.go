package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resolvo/internal/apply"
	"resolvo/internal/ledger"
	"resolvo/internal/mock"
	"resolvo/internal/model"
)

func workspaceAt(root string) *model.Workspace {
	return &model.Workspace{
		Name:     "dev",
		Mappings: []model.Mapping{{ServerPath: "$/proj", LocalPath: root}},
	}
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func TestExecute_ForceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	target := filepath.Join(root, "new.txt")
	client := mock.NewMockClient(ctrl)
	led := ledger.New()

	client.EXPECT().GetContent(gomock.Any(), int64(1), 2).Return("v2", nil)

	ops := []model.GetOperation{
		{ItemID: 1, ItemType: model.ItemFile, TargetLocalPath: target, Version: 2},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
	assert.Equal(t, []string{target}, led.Group(ledger.GroupCreated))
}

func TestExecute_ForceOverwritesReadOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	target := filepath.Join(root, "locked.txt")
	writeFile(t, target, "old", 0444)

	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(1), 3).Return("new", nil)

	ops := []model.GetOperation{
		{ItemID: 1, ItemType: model.ItemFile, TargetLocalPath: target, Version: 3},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
	assert.Equal(t, []string{target}, led.Group(ledger.GroupUpdated))
}

func TestExecute_MergeKeepsDifferingLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	target := filepath.Join(root, "a.txt")
	writeFile(t, target, "merged locally", 0644)

	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(1), 5).Return("server version", nil)

	ops := []model.GetOperation{
		{ItemID: 1, ItemType: model.ItemFile, TargetLocalPath: target, Version: 5},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeMerge, led)
	require.Empty(t, errs)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "merged locally", string(b))
	assert.Equal(t, []string{target}, led.Group(ledger.GroupMerged))
	assert.Empty(t, led.Group(ledger.GroupUpdated))
}

func TestExecute_MergeWritesWhenLocalMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	target := filepath.Join(root, "a.txt")

	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(1), 5).Return("server version", nil)

	ops := []model.GetOperation{
		{ItemID: 1, ItemType: model.ItemFile, TargetLocalPath: target, Version: 5},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeMerge, led)
	require.Empty(t, errs)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "server version", string(b))
	assert.Equal(t, []string{target}, led.Group(ledger.GroupCreated))
}

func TestExecute_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	gone := filepath.Join(root, "gone.txt")
	writeFile(t, gone, "bye", 0644)

	client := mock.NewMockClient(ctrl)
	led := ledger.New()

	ops := []model.GetOperation{
		{ItemID: 9, ItemType: model.ItemFile, SourceLocalPath: gone, Version: 0},
		// Already absent locally, nothing to do.
		{ItemID: 10, ItemType: model.ItemFile, SourceLocalPath: filepath.Join(root, "never.txt"), Version: 0},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)

	assert.NoFileExists(t, gone)
	assert.Equal(t, []string{gone}, led.Group(ledger.GroupRemoved))
}

func TestExecute_DeleteFolderRecursively(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	dir := filepath.Join(root, "dir")
	writeFile(t, filepath.Join(dir, "inner.txt"), "x", 0644)

	client := mock.NewMockClient(ctrl)
	led := ledger.New()

	ops := []model.GetOperation{
		{ItemID: 9, ItemType: model.ItemFolder, SourceLocalPath: dir, Version: 0},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)

	assert.NoDirExists(t, dir)
	assert.Equal(t, []string{dir}, led.Group(ledger.GroupRemoved))
}

func TestExecute_RenameBeforeContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	old := filepath.Join(root, "old.txt")
	target := filepath.Join(root, "sub", "new.txt")
	writeFile(t, old, "v1", 0644)

	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(5), 7).Return("v2", nil)

	ops := []model.GetOperation{
		{ItemID: 5, ItemType: model.ItemFile, SourceLocalPath: old, TargetLocalPath: target, Version: 7},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)

	assert.NoFileExists(t, old)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
	assert.Equal(t, []string{target}, led.Group(ledger.GroupUpdated))
}

func TestExecute_RenameMergeKeepsMovedContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	old := filepath.Join(root, "old.txt")
	target := filepath.Join(root, "new.txt")
	writeFile(t, old, "merged locally", 0644)

	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(5), 7).Return("server version", nil)

	ops := []model.GetOperation{
		{ItemID: 5, ItemType: model.ItemFile, SourceLocalPath: old, TargetLocalPath: target, Version: 7},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeMerge, led)
	require.Empty(t, errs)

	// The move happened but the differing local bytes survived the merge.
	assert.NoFileExists(t, old)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "merged locally", string(b))
	assert.Equal(t, []string{target}, led.Group(ledger.GroupMerged))
}

func TestExecute_Folder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	dir := filepath.Join(root, "newdir")

	client := mock.NewMockClient(ctrl)
	led := ledger.New()

	ops := []model.GetOperation{
		{ItemID: 3, ItemType: model.ItemFolder, TargetLocalPath: dir, Version: 1},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)
	assert.DirExists(t, dir)
	assert.Equal(t, []string{dir}, led.Group(ledger.GroupCreated))

	// Applying again over the existing directory records nothing new.
	led2 := ledger.New()
	errs = apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led2)
	require.Empty(t, errs)
	assert.Empty(t, led2.Group(ledger.GroupCreated))
}

func TestExecute_ServerPathFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(6), 2).Return("mapped", nil)

	ops := []model.GetOperation{
		{ItemID: 6, ItemType: model.ItemFile, ServerPath: "$/proj/sub/f.txt", Version: 2},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Empty(t, errs)

	b, err := os.ReadFile(filepath.Join(root, "sub", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "mapped", string(b))
}

func TestExecute_CollectsErrorsAndContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	target := filepath.Join(root, "ok.txt")
	client := mock.NewMockClient(ctrl)
	led := ledger.New()
	client.EXPECT().GetContent(gomock.Any(), int64(2), 1).Return("fine", nil)

	ops := []model.GetOperation{
		{ItemID: 1, ItemType: model.ItemFile, ServerPath: "$/other/f.txt", Version: 2},
		{ItemID: 2, ItemType: model.ItemFile, TargetLocalPath: target, Version: 1},
	}
	errs := apply.Execute(context.Background(), client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no local path for server item")

	assert.FileExists(t, target)
}

func TestExecute_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	client := mock.NewMockClient(ctrl)
	led := ledger.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ops := []model.GetOperation{
		{ItemID: 1, ItemType: model.ItemFile, TargetLocalPath: filepath.Join(root, "a.txt"), Version: 2},
	}
	errs := apply.Execute(ctx, client, workspaceAt(root), ops, apply.ModeForce, led)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
	assert.NoFileExists(t, filepath.Join(root, "a.txt"))
}
