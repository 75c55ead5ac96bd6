package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/model"
)

// LoadSmartHouseDeep rebuilds the whole house from the rooms, devices and
// states tables. Floors come out sorted by level, rooms and devices by id.
func (s *gormStore) LoadSmartHouseDeep(ctx context.Context) (*domain.SmartHouse, error) {
	db := s.db.WithContext(ctx)
	house := domain.NewSmartHouse()

	// Step 1: floors
	var levels []int
	if err := db.Model(&model.Room{}).Distinct("floor").Order("floor").Pluck("floor", &levels).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch floor levels: %w", err)
	}
	floors := make(map[int]*domain.Floor, len(levels))
	for _, level := range levels {
		floors[level] = house.RegisterFloor(level)
	}

	// Step 2: rooms
	var roomRows []model.Room
	if err := db.Order("id").Find(&roomRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	rooms := make(map[int64]*domain.Room, len(roomRows))
	for _, row := range roomRows {
		floor, ok := floors[row.Floor]
		if !ok {
			// Only possible if rooms changed between the two queries.
			return nil, fmt.Errorf("room %d references floor %d which was not loaded", row.ID, row.Floor)
		}
		room := house.RegisterRoom(floor, row.Size, row.Name)
		room.ID = row.ID
		rooms[row.ID] = room
	}

	// Step 3: devices
	var deviceRows []model.Device
	if err := db.Order("id").Find(&deviceRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}
	var actuatorIDs []string
	for _, row := range deviceRows {
		room, ok := rooms[row.RoomID]
		if !ok {
			return nil, fmt.Errorf("%w: device %s, room %d", ErrOrphanDevice, row.ID, row.RoomID)
		}
		device, err := deviceFromRow(row)
		if err != nil {
			return nil, err
		}
		house.RegisterDevice(room, device)
		if device.IsActuator() {
			actuatorIDs = append(actuatorIDs, device.ID)
		}
	}

	// Step 4: actuator states
	if len(actuatorIDs) > 0 {
		var stateRows []model.State
		if err := db.Where("device IN ?", actuatorIDs).Find(&stateRows).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch actuator states: %w", err)
		}
		for _, row := range stateRows {
			device, _ := house.Device(row.DeviceID)
			actuator, _ := device.AsActuator()
			actuator.State = domain.StateFromStored(row.Value)
		}
	}

	s.log.Info("smart house loaded",
		zap.Int("floors", len(house.GetFloors())),
		zap.Int("rooms", len(house.GetRooms())),
		zap.Int("devices", len(house.GetDevices())))
	return house, nil
}

func deviceFromRow(row model.Device) (*domain.Device, error) {
	unit := ""
	if row.Unit != nil {
		unit = *row.Unit
	}
	switch row.Kind {
	case model.KindSensor:
		return domain.NewSensor(row.ID, row.Model, row.Supplier, row.Category, unit), nil
	case model.KindActuator:
		if row.Unit != nil {
			return domain.NewActuatorWithSensor(row.ID, row.Model, row.Supplier, row.Category, unit), nil
		}
		return domain.NewActuator(row.ID, row.Model, row.Supplier, row.Category), nil
	default:
		return nil, fmt.Errorf("%w: %q for device %s", ErrUnknownDeviceKind, row.Kind, row.ID)
	}
}
