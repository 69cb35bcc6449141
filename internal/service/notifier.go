package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"safewatch-data/internal/domain"
	"safewatch-data/internal/repository"
)

// FallNotifier records notification intent for a detected fall. Delivery
// is a notification_logs row only; no push/SMS/email leaves this service.
type FallNotifier struct {
	devices repository.DevicesRepository
	falls   repository.FallsRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewFallNotifier creates the notifier.
func NewFallNotifier(devices repository.DevicesRepository, falls repository.FallsRepository, logger *zap.Logger) *FallNotifier {
	return &FallNotifier{
		devices: devices,
		falls:   falls,
		logger:  logger,
		now:     time.Now,
	}
}

// Notify writes one notification log row for the fall, addressed to the
// device's emergency contact ("unknown" when the device is unregistered
// or has no contact on file). Best-effort: the fall event is already
// durable, so every failure here is logged and swallowed. Returns whether
// the notification record was written.
func (n *FallNotifier) Notify(ctx context.Context, fallEventID, deviceID string) bool {
	recipient := domain.NotificationRecipientUnknown

	device, err := n.devices.GetDevice(ctx, deviceID)
	if err != nil {
		n.logger.Warn("notifier: device lookup failed",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	} else if device != nil && device.EmergencyContact != "" {
		recipient = device.EmergencyContact
	}

	err = n.falls.InsertNotificationLog(ctx, &domain.NotificationLog{
		FallEventID: fallEventID,
		Channel:     domain.NotificationChannelPush,
		Recipient:   recipient,
		Status:      domain.NotificationStatusSent,
		Timestamp:   n.now(),
	})
	if err != nil {
		n.logger.Warn("notifier: failed to record notification",
			zap.String("fall_event_id", fallEventID),
			zap.Error(err),
		)
		return false
	}

	n.logger.Info("fall notification recorded",
		zap.String("fall_event_id", fallEventID),
		zap.String("recipient", recipient),
	)
	return true
}
