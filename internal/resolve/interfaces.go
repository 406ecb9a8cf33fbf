package resolve

import "resolvo/internal/model"

// ContentTriplet is the three content snapshots a content merge works from.
// Each side defaults to "" when there is nothing at that state.
type ContentTriplet struct {
	Base   string
	Local  string
	Server string
}

// NameMerger decides the surviving server path when both sides renamed an
// item. ok=false means the merge was declined; the caller must then abort
// with no side effects at all.
type NameMerger interface {
	MergeName(ws *model.Workspace, c *model.Conflict) (serverPath string, ok bool, err error)
}

// ContentMerger combines the triplet and writes the result to the local
// file, which lives at localPath now and must end up at resolvedPath.
type ContentMerger interface {
	MergeContent(c *model.Conflict, t ContentTriplet, localPath, resolvedPath string) error
}

// LocalFiles is the working-copy view the resolution flow needs.
type LocalFiles interface {
	// RefreshAndFind forces a fresh look at the path, bypassing any cached
	// state, and reports whether a regular file exists there.
	RefreshAndFind(path string) bool
	Read(path string) (string, error)
	ClearReadOnly(path string) error
}
