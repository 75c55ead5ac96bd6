package notification

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// StateChange is one actuator state update to announce.
type StateChange struct {
	DeviceID string
	State    domain.State
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan StateChange
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	log     *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan StateChange, size*16),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
		log:     log,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log := wp.log.With(zap.Int("worker", id))
	log.Debug("notification worker started")
	for {
		select {
		case change := <-wp.jobs:
			wp.notifySubscribers(ctx, change)
		case <-ctx.Done():
			log.Debug("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues a state change without blocking. It reports false when the
// queue is full and the change was dropped.
func (wp *WorkerPool) Dispatch(change StateChange) bool {
	select {
	case wp.jobs <- change:
		return true
	default:
		wp.log.Warn("notification queue full, dropping state change", zap.String("device", change.DeviceID))
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan StateChange {
	return wp.jobs
}

// notifySubscribers sends the change to every subscription following the device.
func (wp *WorkerPool) notifySubscribers(ctx context.Context, change StateChange) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_device_mapping sdm ON sdm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sdm.device_id = ?", change.DeviceID).
		Find(&subscriptions).Error
	if err != nil {
		wp.log.Error("fetching subscriptions failed", zap.String("device", change.DeviceID), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := change.DeviceID
	var device model.Device
	if err := wp.db.WithContext(ctx).
		Select("category").
		First(&device, "id = ?", change.DeviceID).Error; err != nil {
		wp.log.Warn("fetching device label failed", zap.String("device", change.DeviceID), zap.Error(err))
	} else if device.Category != "" {
		label = device.Category
	}

	message := fmt.Sprintf("%s is now %s", label, Describe(change.State))
	wp.log.Info("sending state notifications",
		zap.String("device", change.DeviceID),
		zap.Int("subscriptions", len(subscriptions)))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// Describe renders a state for humans.
func Describe(s domain.State) string {
	switch {
	case !s.On:
		return "off"
	case s.Level == nil:
		return "on"
	default:
		return "on at " + strconv.FormatFloat(*s.Level, 'f', -1, 64)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Error("sending notification failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		wp.log.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.WithContext(ctx).Select("Devices").Delete(&sub).Error; err != nil {
			wp.log.Error("deleting expired subscription failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
