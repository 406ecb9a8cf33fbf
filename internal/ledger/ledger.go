// Package ledger classifies the local paths touched during a resolution
// session into named outcome groups. It is append-only for the session's
// lifetime and tolerates the same path being recorded into a group more
// than once.
package ledger

import (
	"slices"
	"sync"
)

const (
	GroupSkipped = "SKIPPED"
	GroupMerged  = "MERGED"
	GroupCreated = "CREATED"
	GroupUpdated = "UPDATED"
	GroupRemoved = "REMOVED"
)

type Ledger struct {
	mu     sync.Mutex
	groups map[string]map[string]struct{}
}

func New() *Ledger {
	return &Ledger{groups: make(map[string]map[string]struct{})}
}

func (l *Ledger) Add(group, path string) {
	if path == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.groups[group]
	if !ok {
		g = make(map[string]struct{})
		l.groups[group] = g
	}
	g[path] = struct{}{}
}

// Group returns a sorted copy of one group's paths.
func (l *Ledger) Group(group string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return sortedPaths(l.groups[group])
}

// Snapshot returns sorted copies of every non-empty group.
func (l *Ledger) Snapshot() map[string][]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string][]string, len(l.groups))
	for name, g := range l.groups {
		if len(g) == 0 {
			continue
		}
		out[name] = sortedPaths(g)
	}

	return out
}

func sortedPaths(g map[string]struct{}) []string {
	paths := make([]string, 0, len(g))
	for p := range g {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	return paths
}
