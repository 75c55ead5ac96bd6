package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/model"
)

// GetLatestReading returns the newest reading of the sensor, or nil when it
// has none.
func (s *gormStore) GetLatestReading(ctx context.Context, sensorID string) (*domain.Measurement, error) {
	var row model.Measurement
	err := s.db.WithContext(ctx).
		Where("device = ?", sensorID).
		Order("ts DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest reading for %s: %w", sensorID, err)
	}
	m := toMeasurement(row)
	return &m, nil
}

// GetAllReadings returns up to limit readings, newest first. A negative limit
// returns every reading.
func (s *gormStore) GetAllReadings(ctx context.Context, sensorID string, limit int) ([]domain.Measurement, error) {
	if limit == 0 {
		return []domain.Measurement{}, nil
	}
	q := s.db.WithContext(ctx).Where("device = ?", sensorID).Order("ts DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.Measurement
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch readings for %s: %w", sensorID, err)
	}

	readings := make([]domain.Measurement, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, toMeasurement(row))
	}
	return readings, nil
}

// AddMeasurement stores one reading. The caller validates that the sensor
// exists.
func (s *gormStore) AddMeasurement(ctx context.Context, sensorID string, ts time.Time, value float64, unit string) error {
	row := model.Measurement{
		DeviceID:  sensorID,
		Value:     value,
		Timestamp: ts.UTC(),
		Unit:      unit,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return s.writeFailed("add measurement", sensorID, err)
	}
	return nil
}

// RemoveOldestReading deletes the reading with the smallest timestamp and
// reports whether a row was removed.
func (s *gormStore) RemoveOldestReading(ctx context.Context, sensorID string) (bool, error) {
	db := s.db.WithContext(ctx)
	oldest := db.Model(&model.Measurement{}).
		Select("id").
		Where("device = ?", sensorID).
		Order("ts ASC").
		Limit(1)

	res := db.Where("id = (?)", oldest).Delete(&model.Measurement{})
	if res.Error != nil {
		return false, s.writeFailed("remove oldest reading", sensorID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetActuatorState reads the persisted state. A missing row reads as off.
func (s *gormStore) GetActuatorState(ctx context.Context, actuatorID string) (domain.State, error) {
	var row model.State
	err := s.db.WithContext(ctx).Where("device = ?", actuatorID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Off(), nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("failed to fetch state for %s: %w", actuatorID, err)
	}
	return domain.StateFromStored(row.Value), nil
}

// UpdateActuatorState persists the state, inserting the row if the actuator
// has none yet.
func (s *gormStore) UpdateActuatorState(ctx context.Context, actuatorID string, state domain.State) error {
	row := model.State{DeviceID: actuatorID, Value: state.Stored()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device"}},
		DoUpdates: clause.AssignmentColumns([]string{"state"}),
	}).Create(&row).Error
	if err != nil {
		return s.writeFailed("update actuator state", actuatorID, err)
	}
	return nil
}
