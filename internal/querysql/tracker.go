package querysql

import (
	"sort"

	"github.com/roach88/calsearch/internal/mapping"
)

// JoinTracker records which optional join groups a clause references.
// Flags are monotonic: once set they are never cleared.
type JoinTracker struct {
	used map[mapping.JoinGroup]bool
}

// NewJoinTracker creates an empty tracker.
func NewJoinTracker() *JoinTracker {
	return &JoinTracker{used: make(map[mapping.JoinGroup]bool)}
}

// Mark records that group is used. GroupNone is ignored.
func (t *JoinTracker) Mark(group mapping.JoinGroup) {
	if group == mapping.GroupNone {
		return
	}
	t.used[group] = true
}

// Uses reports whether group has been marked.
func (t *JoinTracker) Uses(group mapping.JoinGroup) bool {
	return t.used[group]
}

// Groups returns the marked groups in sorted order.
func (t *JoinTracker) Groups() []mapping.JoinGroup {
	groups := make([]mapping.JoinGroup, 0, len(t.used))
	for g := range t.used {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	return groups
}

// merge marks every group of other.
func (t *JoinTracker) merge(other *JoinTracker) {
	for g := range other.used {
		t.used[g] = true
	}
}
