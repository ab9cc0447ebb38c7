package app

import (
	"slices"
	"sync"
)

// AdminSettings is the process-wide administrator configuration: a fixed
// allow-list and a notification switch that admins can flip at runtime.
type AdminSettings struct {
	mu                   sync.RWMutex
	adminIDs             []int64
	notificationsEnabled bool
}

func NewAdminSettings(adminIDs []int64, notificationsEnabled bool) *AdminSettings {
	return &AdminSettings{
		adminIDs:             slices.Clone(adminIDs),
		notificationsEnabled: notificationsEnabled,
	}
}

func (s *AdminSettings) IsAdmin(userID int64) bool {
	return slices.Contains(s.adminIDs, userID)
}

// AdminIDs returns a copy of the allow-list.
func (s *AdminSettings) AdminIDs() []int64 {
	return slices.Clone(s.adminIDs)
}

func (s *AdminSettings) NotificationsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationsEnabled
}

// ToggleNotifications flips the switch and returns the new state.
func (s *AdminSettings) ToggleNotifications() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationsEnabled = !s.notificationsEnabled
	return s.notificationsEnabled
}
