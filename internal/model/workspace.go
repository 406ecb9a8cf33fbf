package model

import (
	"path/filepath"
	"strings"

	"gorm.io/gorm"
)

// Workspace binds a set of server paths to local directories on one server.
// The resolution core reads it, never mutates it.
type Workspace struct {
	gorm.Model
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Owner     string    `gorm:"not null" json:"owner"`
	ServerURL string    `gorm:"not null" json:"server_url"`
	Mappings  []Mapping `json:"mappings"`
}

// Mapping pairs a server path root ("$/project") with a local directory.
type Mapping struct {
	gorm.Model
	WorkspaceID uint   `json:"-"`
	ServerPath  string `gorm:"not null" json:"server_path"`
	LocalPath   string `gorm:"not null" json:"local_path"`
}

// FindLocalPath translates a server path into a local one using the longest
// matching mapping root. Returns false when no mapping covers the path.
func (w *Workspace) FindLocalPath(serverPath string) (string, bool) {
	best := -1
	for i, m := range w.Mappings {
		if !serverPathHasPrefix(serverPath, m.ServerPath) {
			continue
		}
		if best < 0 || len(m.ServerPath) > len(w.Mappings[best].ServerPath) {
			best = i
		}
	}

	if best < 0 {
		return "", false
	}

	m := w.Mappings[best]
	rel := strings.TrimPrefix(strings.TrimPrefix(serverPath, m.ServerPath), "/")
	if rel == "" {
		return m.LocalPath, true
	}

	return filepath.Join(m.LocalPath, filepath.FromSlash(rel)), true
}

// FindServerPath is the inverse translation, again by longest local root.
func (w *Workspace) FindServerPath(localPath string) (string, bool) {
	best := -1
	for i, m := range w.Mappings {
		if !localPathHasPrefix(localPath, m.LocalPath) {
			continue
		}
		if best < 0 || len(m.LocalPath) > len(w.Mappings[best].LocalPath) {
			best = i
		}
	}

	if best < 0 {
		return "", false
	}

	m := w.Mappings[best]
	rel := strings.TrimPrefix(localPath, m.LocalPath)
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if rel == "" {
		return m.ServerPath, true
	}

	return m.ServerPath + "/" + rel, true
}

// Prefix checks are segment-aware: "$/proj" covers "$/proj/a" but not
// "$/project".
func serverPathHasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func localPathHasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator))
}
