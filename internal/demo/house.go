// Package demo writes the demo smart house into an empty database.
package demo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smarthouse-backend/internal/model"
)

func unit(u string) *string { return &u }

func level(v float64) *float64 { return &v }

// Rooms of the demo house, in id order.
var Rooms = []model.Room{
	{ID: 1, Floor: 1, Name: "Entrance", Size: 13.5},
	{ID: 2, Floor: 1, Name: "Guest Room 1", Size: 8},
	{ID: 3, Floor: 1, Name: "Bathroom 1", Size: 6.3},
	{ID: 4, Floor: 1, Name: "Living Room / Kitchen", Size: 39.75},
	{ID: 5, Floor: 1, Name: "Garage", Size: 19},
	{ID: 6, Floor: 2, Name: "Master Bedroom", Size: 17},
	{ID: 7, Floor: 2, Name: "Dressing Room", Size: 4},
	{ID: 8, Floor: 2, Name: "Guest Room 3", Size: 10},
	{ID: 9, Floor: 2, Name: "Office", Size: 11.75},
	{ID: 10, Floor: 2, Name: "Bathroom 2", Size: 9.25},
	{ID: 11, Floor: 2, Name: "Guest Room 2", Size: 8},
	{ID: 12, Floor: 2, Name: "Hallway", Size: 10},
}

// Devices of the demo house.
var Devices = []model.Device{
	{ID: "4d5f1ac6-906a-4fd1-b4bf-3a0671e4c4f1", RoomID: 1, Kind: model.KindActuator, Category: "Smart Lock", Model: "Guardian Lock 7000", Supplier: "MythicalTech"},
	{ID: "a2f8690f-2b3a-43cd-90b8-9deea98b42a7", RoomID: 1, Kind: model.KindSensor, Category: "Electricity Meter", Unit: unit("kWh"), Model: "Volt Watch Elite", Supplier: "MysticEnergy Innovations"},
	{ID: "8a43b2d7-e8d3-4f3d-b832-7dbf37bf629e", RoomID: 4, Kind: model.KindSensor, Category: "CO2 Sensor", Unit: unit("g/m^2"), Model: "Smoke Warden 1000", Supplier: "ElysianTech"},
	{ID: "5e13cabc-5c58-4bb3-82a2-3039e4480a6d", RoomID: 4, Kind: model.KindActuator, Category: "Heat Pump", Unit: unit("°C"), Model: "Thermo Smart 6000", Supplier: "ElysianTech"},
	{ID: "cd5be4e8-0e6b-4cb5-a21f-819d06cf5fc5", RoomID: 4, Kind: model.KindSensor, Category: "Motion Sensor", Model: "MoveZ Detect 69", Supplier: "NebulaGuard Innovations"},
	{ID: "3d87e5c0-8716-4b0b-9c67-087eaaed7b45", RoomID: 3, Kind: model.KindSensor, Category: "Humidity Sensor", Unit: unit("%"), Model: "Aqua Alert 800", Supplier: "AetherCorp"},
	{ID: "8d4e4c98-21a9-4d1e-bf18-523285ad90f6", RoomID: 2, Kind: model.KindActuator, Category: "Smart Oven", Model: "Pheonix HEAT 333", Supplier: "AetherCorp"},
	{ID: "9a54c1ec-0cb5-45a7-b20d-2a7349f1b132", RoomID: 5, Kind: model.KindActuator, Category: "Automatic Garage Door", Model: "Guardian Lock 9000", Supplier: "MythicalTech"},
	{ID: "c1e8fa9c-4b8d-487a-a1a5-2b148ee9d2d1", RoomID: 6, Kind: model.KindActuator, Category: "Smart Oven", Model: "Ember Heat 3000", Supplier: "IgnisTech Solutions"},
	{ID: "4d8b1d62-7921-4917-9b70-bbd31f6e2e8e", RoomID: 6, Kind: model.KindSensor, Category: "Temperature Sensor", Unit: unit("°C"), Model: "SmartTemp 42", Supplier: "AetherCorp"},
	{ID: "7c6e35e1-2d8b-4d81-a586-5d01a03bb02c", RoomID: 8, Kind: model.KindSensor, Category: "Air Quality Sensor", Unit: unit("g/m^2"), Model: "AeroGuard Pro", Supplier: "CelestialSense Technologies"},
	{ID: "1a66c3d6-22b2-446e-bf5c-eb5b9d1a8c79", RoomID: 9, Kind: model.KindActuator, Category: "Smart Plug", Model: "FlowState X", Supplier: "MysticEnergy Innovations"},
	{ID: "9e5b8274-4e77-4e4e-80d2-b40d648ea02a", RoomID: 10, Kind: model.KindActuator, Category: "Dehumidifier", Model: "Hydra Dry 8000", Supplier: "ArcaneTech Solutions"},
	{ID: "6b1c5f6b-37f6-4e3d-9145-1cfbe2f1fc28", RoomID: 11, Kind: model.KindActuator, Category: "Light Bulp", Model: "Lumina Glow 4000", Supplier: "Elysian Tech"},
}

// States holds the initial actuator states: the lock is on and the heat
// pump runs at 21.5, everything else is off.
var States = []model.State{
	{DeviceID: "4d5f1ac6-906a-4fd1-b4bf-3a0671e4c4f1", Value: level(1.0)},
	{DeviceID: "5e13cabc-5c58-4bb3-82a2-3039e4480a6d", Value: level(21.5)},
	{DeviceID: "8d4e4c98-21a9-4d1e-bf18-523285ad90f6"},
	{DeviceID: "9a54c1ec-0cb5-45a7-b20d-2a7349f1b132"},
	{DeviceID: "c1e8fa9c-4b8d-487a-a1a5-2b148ee9d2d1"},
	{DeviceID: "1a66c3d6-22b2-446e-bf5c-eb5b9d1a8c79"},
	{DeviceID: "9e5b8274-4e77-4e4e-80d2-b40d648ea02a"},
	{DeviceID: "6b1c5f6b-37f6-4e3d-9145-1cfbe2f1fc28"},
}

// Seed writes the demo house when the rooms table is empty and reports
// whether anything was written.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Room{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count rooms: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := append([]model.Room(nil), Rooms...)
		if err := tx.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to insert rooms: %w", err)
		}
		devices := append([]model.Device(nil), Devices...)
		if err := tx.Create(&devices).Error; err != nil {
			return fmt.Errorf("failed to insert devices: %w", err)
		}
		states := append([]model.State(nil), States...)
		if err := tx.Create(&states).Error; err != nil {
			return fmt.Errorf("failed to insert states: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
