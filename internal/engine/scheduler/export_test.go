package scheduler

import (
	"maps"

	"go.trai.ch/soldeps/internal/core/domain"
)

// GetGroupStatusMap returns a copy of the internal group status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetGroupStatusMap() map[string]domain.GroupStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.groupStatus)
}

// Status exposes getStatus for tests.
func (s *Scheduler) Status(id string) domain.GroupStatus {
	return s.getStatus(id)
}
