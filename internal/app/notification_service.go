// internal/app/notification_service.go
package app

import (
	"context"
	"fmt"
	"sync"

	"technohunter_bot/internal/domain/application"
	domainTelegram "technohunter_bot/internal/domain/telegram"
	"technohunter_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// DeliveryResult is the outcome of one notification to one administrator.
type DeliveryResult struct {
	AdminID int64
	Err     error
}

// ApplicationNotifier announces stored applications to administrators.
type ApplicationNotifier interface {
	NotifyNewApplication(ctx context.Context, rec *application.Record) []DeliveryResult
}

// NotificationService delivers messages to every administrator independently.
type NotificationService struct {
	settings       *AdminSettings
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
}

func NewNotificationService(settings *AdminSettings, tc domainTelegram.Client, logger *logrus.Entry) *NotificationService {
	return &NotificationService{
		settings:       settings,
		telegramClient: tc,
		logger:         logger,
	}
}

// NotifyNewApplication sends the full application summary to all admins.
// It returns nil without sending anything while notifications are disabled.
func (s *NotificationService) NotifyNewApplication(ctx context.Context, rec *application.Record) []DeliveryResult {
	logCtx := s.logger.WithField("application_id", rec.ID)
	if !s.settings.NotificationsEnabled() {
		logCtx.Info("Notifications disabled, skipping admin fan-out")
		return nil
	}
	return s.broadcast(ctx, FormatApplicationDetails(rec), logCtx)
}

// SendDigest sends the statistics block to all admins.
func (s *NotificationService) SendDigest(ctx context.Context, stats Stats) []DeliveryResult {
	logCtx := s.logger.WithField("job", "daily_digest")
	if !s.settings.NotificationsEnabled() {
		logCtx.Info("Notifications disabled, skipping digest")
		return nil
	}
	text := "🗓 <b>Ежедневная сводка</b>\n\n" + FormatStats(stats)
	return s.broadcast(ctx, text, logCtx)
}

// broadcast sends text to every admin concurrently and waits for all
// attempts. A failure for one admin is logged and never affects the others.
func (s *NotificationService) broadcast(ctx context.Context, text string, logCtx *logrus.Entry) []DeliveryResult {
	adminIDs := s.settings.AdminIDs()
	results := make([]DeliveryResult, len(adminIDs))

	var wg sync.WaitGroup
	for i, adminID := range adminIDs {
		i, adminID := i, adminID
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = DeliveryResult{AdminID: adminID, Err: s.deliver(ctx, adminID, text)}
		}()
	}
	wg.Wait()

	for _, r := range results {
		metrics.RecordDelivery(r.Err)
		if r.Err != nil {
			logCtx.WithField("admin_id", r.AdminID).WithError(r.Err).Error("Failed to notify admin")
			continue
		}
		logCtx.WithField("admin_id", r.AdminID).Info("Admin notified")
	}
	return results
}

func (s *NotificationService) deliver(ctx context.Context, adminID int64, text string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while sending to admin %d: %v", adminID, p)
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.telegramClient.SendMessage(adminID, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
}
