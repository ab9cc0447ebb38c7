package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"technohunter_bot/internal/domain/application"
	"technohunter_bot/internal/domain/form"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = errors.New("performing user is not authorized as an admin")

const DefaultListLimit = 10

// Stats is the aggregate shown to administrators.
type Stats struct {
	Total       int
	Company     int
	Participant int
	Last24h     int
}

// ComputeStats counts records per branch and those received within the
// 24 hours before now.
func ComputeStats(records []*application.Record, now time.Time) Stats {
	var st Stats
	cutoff := now.Add(-24 * time.Hour)
	for _, rec := range records {
		st.Total++
		switch rec.Type {
		case form.BranchCompany:
			st.Company++
		case form.BranchParticipant:
			st.Participant++
		}
		if rec.SubmittedAt.After(cutoff) {
			st.Last24h++
		}
	}
	return st
}

type AdminService struct {
	repo      application.Repository
	settings  *AdminSettings
	listLimit int
	now       func() time.Time
}

func NewAdminService(repo application.Repository, settings *AdminSettings, listLimit int) *AdminService {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &AdminService{
		repo:      repo,
		settings:  settings,
		listLimit: listLimit,
		now:       time.Now,
	}
}

func (s *AdminService) authorize(performingAdminID int64) error {
	if !s.settings.IsAdmin(performingAdminID) {
		return ErrAdminNotAuthorized
	}
	return nil
}

// CollectStats computes statistics without an authorization check; it is
// meant for internal jobs such as the daily digest.
func (s *AdminService) CollectStats(ctx context.Context) (Stats, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return ComputeStats(records, s.now()), nil
}

func (s *AdminService) Stats(ctx context.Context, performingAdminID int64) (Stats, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return Stats{}, err
	}
	return s.CollectStats(ctx)
}

// Recent returns the latest applications in insertion order.
func (s *AdminService) Recent(ctx context.Context, performingAdminID int64) ([]*application.Record, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecent(ctx, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent applications: %w", err)
	}
	return records, nil
}

func (s *AdminService) View(ctx context.Context, performingAdminID int64, id string) (*application.Record, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get application %s: %w", id, err)
	}
	return rec, nil
}

// ToggleNotifications flips admin notifications and returns the new state.
func (s *AdminService) ToggleNotifications(performingAdminID int64) (bool, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return false, err
	}
	return s.settings.ToggleNotifications(), nil
}

var exportHeader = []string{"id", "type", "name", "email", "phone", "submittedAt"}

// ExportCSV renders all applications as CSV and returns the row count.
func (s *AdminService) ExportCSV(ctx context.Context, performingAdminID int64) ([]byte, int, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, 0, err
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, 0, err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			string(rec.Type),
			rec.DisplayName(),
			rec.ContactEmail(),
			rec.ContactPhone(),
			rec.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), len(records), nil
}

// IsAdmin reports whether userID is on the allow-list.
func (s *AdminService) IsAdmin(userID int64) bool {
	return s.settings.IsAdmin(userID)
}

// NotificationsEnabled reports the current switch state for status screens.
func (s *AdminService) NotificationsEnabled() bool {
	return s.settings.NotificationsEnabled()
}
