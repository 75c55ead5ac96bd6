package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarthouse-backend/internal/model"
)

// SaveSubscription creates or replaces a push subscription together with the
// set of actuators it follows.
func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription, deviceIDs []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Omit("Devices").Create(sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		var devices []*model.Device
		if len(deviceIDs) > 0 {
			if err := tx.Where("id IN ?", deviceIDs).Find(&devices).Error; err != nil {
				return fmt.Errorf("failed to fetch subscribed devices: %w", err)
			}
		}

		if err := tx.Model(sub).Association("Devices").Replace(&devices); err != nil {
			return fmt.Errorf("failed to replace subscribed devices: %w", err)
		}
		return nil
	})
	if err != nil {
		return s.writeFailed("save subscription", sub.Endpoint, err)
	}
	return nil
}

// GetSubscription returns the subscription with its followed devices.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Preload("Devices").First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription and its device mapping.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := model.PushSubscription{Endpoint: endpoint}
		if err := tx.Model(&sub).Association("Devices").Clear(); err != nil {
			return fmt.Errorf("failed to clear subscribed devices: %w", err)
		}
		if err := tx.Delete(&sub).Error; err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return s.writeFailed("delete subscription", endpoint, err)
	}
	return nil
}
