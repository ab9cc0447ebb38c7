package app

import (
	"context"
	"fmt"
	"time"

	"technohunter_bot/internal/domain/application"
	"technohunter_bot/internal/domain/form"
	"technohunter_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// IntakeService turns mini-app payloads into stored application records.
type IntakeService struct {
	repo     application.Repository
	notifier ApplicationNotifier
	catalog  *form.Catalog
	logger   *logrus.Entry
	now      func() time.Time
}

func NewIntakeService(repo application.Repository, notifier ApplicationNotifier, catalog *form.Catalog, logger *logrus.Entry) *IntakeService {
	return &IntakeService{
		repo:     repo,
		notifier: notifier,
		catalog:  catalog,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit parses the payload, stores the record and notifies administrators,
// in that order. Parse failures wrap form.ErrInvalidEnvelope. Notification
// failures are logged by the notifier and never fail the submission.
func (s *IntakeService) Submit(ctx context.Context, userID int64, payload string) (*application.Record, error) {
	logCtx := s.logger.WithField("sender_id", userID)

	env, err := form.ParseEnvelope(payload)
	if err != nil {
		metrics.RecordRejectedEnvelope()
		logCtx.WithError(err).WithField("raw_payload", payload).Warn("Rejected mini-app payload")
		return nil, err
	}

	def, err := s.catalog.Lookup(env.ApplicationType)
	if err != nil {
		metrics.RecordRejectedEnvelope()
		logCtx.WithError(err).WithField("raw_payload", payload).Warn("Rejected mini-app payload for unavailable branch")
		return nil, fmt.Errorf("%w: %v", form.ErrInvalidEnvelope, err)
	}
	if problems := def.Validate(env.Fields); len(problems) > 0 {
		// The mini-app already gated every step; store what arrived and leave a trace.
		logCtx.WithField("field_errors", problems).Warn("Payload does not pass form rules, storing as received")
	}

	rec := &application.Record{
		UserID:      userID,
		Type:        env.ApplicationType,
		SubmittedAt: s.now(),
		Data:        env.Fields,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		logCtx.WithError(err).Error("Failed to store application")
		return nil, fmt.Errorf("failed to store application: %w", err)
	}
	metrics.RecordApplication(string(rec.Type))
	logCtx.WithFields(logrus.Fields{
		"application_id": rec.ID,
		"type":           rec.Type,
	}).Info("Application stored")

	s.notifier.NotifyNewApplication(ctx, rec)
	return rec, nil
}
