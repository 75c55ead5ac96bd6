package domain

import "time"

// Floor is one level of the house.
type Floor struct {
	Level int
	Rooms []*Room
}

// Room belongs to one floor and owns devices.
type Room struct {
	ID      int64
	Floor   *Floor
	Name    string
	Size    float64
	Devices []*Device
}

// Measurement is one timestamped reading of a sensing device.
type Measurement struct {
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
}

// SmartHouse is the aggregate root.
type SmartHouse struct {
	floors []*Floor
	nextID int64
}

func NewSmartHouse() *SmartHouse {
	return &SmartHouse{}
}

// RegisterFloor adds a floor with the given level.
func (h *SmartHouse) RegisterFloor(level int) *Floor {
	f := &Floor{Level: level}
	h.floors = append(h.floors, f)
	return f
}

// RegisterRoom adds a room to the floor. The room gets the next sequential
// id; callers that know the persisted id overwrite it.
func (h *SmartHouse) RegisterRoom(floor *Floor, size float64, name string) *Room {
	h.nextID++
	r := &Room{ID: h.nextID, Floor: floor, Name: name, Size: size}
	floor.Rooms = append(floor.Rooms, r)
	return r
}

// RegisterDevice places the device in the room.
func (h *SmartHouse) RegisterDevice(room *Room, device *Device) *Device {
	device.Room = room
	room.Devices = append(room.Devices, device)
	return device
}

func (h *SmartHouse) GetFloors() []*Floor {
	return h.floors
}

func (h *SmartHouse) GetRooms() []*Room {
	var rooms []*Room
	for _, f := range h.floors {
		rooms = append(rooms, f.Rooms...)
	}
	return rooms
}

func (h *SmartHouse) GetDevices() []*Device {
	var devices []*Device
	for _, r := range h.GetRooms() {
		devices = append(devices, r.Devices...)
	}
	return devices
}

// GetArea sums the size of all rooms.
func (h *SmartHouse) GetArea() float64 {
	var area float64
	for _, r := range h.GetRooms() {
		area += r.Size
	}
	return area
}

func (h *SmartHouse) Floor(level int) (*Floor, bool) {
	for _, f := range h.floors {
		if f.Level == level {
			return f, true
		}
	}
	return nil, false
}

func (h *SmartHouse) Room(id int64) (*Room, bool) {
	for _, r := range h.GetRooms() {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

func (h *SmartHouse) Device(id string) (*Device, bool) {
	for _, d := range h.GetDevices() {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}
