package domain

import "strings"

// GroupStatus is the lifecycle state of one compiler invocation.
type GroupStatus string

const (
	// GroupStatusPending indicates the group is waiting for a worker.
	GroupStatusPending GroupStatus = "pending"
	// GroupStatusRunning indicates the compiler is running.
	GroupStatusRunning GroupStatus = "running"
	// GroupStatusCompleted indicates the compiler returned output.
	GroupStatusCompleted GroupStatus = "completed"
	// GroupStatusFailed indicates the compiler reported an error.
	GroupStatusFailed GroupStatus = "failed"
	// GroupStatusCached indicates an unchanged fingerprint reused earlier output.
	GroupStatusCached GroupStatus = "cached"
	// GroupStatusSkipped indicates the group was not run because the context ended.
	GroupStatusSkipped GroupStatus = "skipped"
)

// IsTerminal checks if a status is a terminal state.
func (s GroupStatus) IsTerminal() bool {
	switch s {
	case GroupStatusCompleted, GroupStatusFailed, GroupStatusCached, GroupStatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeGroupStatus converts a string to a GroupStatus, defaulting to pending if unknown.
func NormalizeGroupStatus(s string) GroupStatus {
	switch st := GroupStatus(strings.ToLower(s)); st {
	case GroupStatusRunning, GroupStatusCompleted, GroupStatusFailed, GroupStatusCached, GroupStatusSkipped:
		return st
	default:
		return GroupStatusPending
	}
}
