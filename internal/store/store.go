package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/model"
)

// Units that select readings for the statistics queries.
const (
	UnitCelsius  = "°C"
	UnitHumidity = "%"
)

// Store defines the interface for all database operations.
type Store interface {
	LoadSmartHouseDeep(ctx context.Context) (*domain.SmartHouse, error)

	GetLatestReading(ctx context.Context, sensorID string) (*domain.Measurement, error)
	GetAllReadings(ctx context.Context, sensorID string, limit int) ([]domain.Measurement, error)
	AddMeasurement(ctx context.Context, sensorID string, ts time.Time, value float64, unit string) error
	RemoveOldestReading(ctx context.Context, sensorID string) (bool, error)

	GetActuatorState(ctx context.Context, actuatorID string) (domain.State, error)
	UpdateActuatorState(ctx context.Context, actuatorID string, state domain.State) error

	CalcAvgTemperaturesInRoom(ctx context.Context, room string, from, until *time.Time) (map[string]float64, error)
	CalcHoursWithHumidityAbove(ctx context.Context, room string, date time.Time) ([]int, error)

	SaveSubscription(ctx context.Context, sub *model.PushSubscription, deviceIDs []string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, log *zap.Logger) Store {
	return &gormStore{db: db, log: log}
}

// DB exposes the underlying connection for background workers.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// writeFailed logs a store error at the repository boundary and converts it
// into ErrWriteFailed. key is the device id or subscription endpoint.
func (s *gormStore) writeFailed(op, key string, err error) error {
	s.log.Error("store write failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err))
	return fmt.Errorf("%w: %s %s: %w", ErrWriteFailed, op, key, err)
}

func toMeasurement(row model.Measurement) domain.Measurement {
	return domain.Measurement{
		Value:     row.Value,
		Unit:      row.Unit,
		Timestamp: row.Timestamp.UTC(),
	}
}
