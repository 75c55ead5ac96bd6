package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smarthouse-backend/internal/domain"
)

// HouseResponse summarises the whole house.
type HouseResponse struct {
	NoRooms           int     `json:"no_rooms"`
	NoFloors          int     `json:"no_floors"`
	RegisteredDevices int     `json:"registered_devices"`
	Area              float64 `json:"area"`
}

// FloorResponse describes one floor.
type FloorResponse struct {
	FID     int            `json:"fid"`
	NoRooms int            `json:"no_rooms"`
	Rooms   []RoomResponse `json:"rooms,omitempty"`
}

// RoomResponse describes one room.
type RoomResponse struct {
	RID     int64            `json:"rid"`
	FID     int              `json:"fid"`
	Name    string           `json:"name"`
	Size    float64          `json:"size"`
	Devices []DeviceResponse `json:"devices"`
}

// DeviceResponse describes one device.
type DeviceResponse struct {
	ID         string            `json:"id"`
	ModelName  string            `json:"model_name"`
	Supplier   string            `json:"supplier"`
	DeviceType string            `json:"device_type"`
	Kind       domain.DeviceKind `json:"kind"`
	RID        int64             `json:"rid"`
	Unit       *string           `json:"unit,omitempty"`
}

func newDeviceResponse(d *domain.Device) DeviceResponse {
	resp := DeviceResponse{
		ID:         d.ID,
		ModelName:  d.ModelName,
		Supplier:   d.Supplier,
		DeviceType: d.Category,
		Kind:       d.Kind(),
	}
	if d.Room != nil {
		resp.RID = d.Room.ID
	}
	if sensor, ok := d.AsSensor(); ok {
		unit := sensor.Unit
		resp.Unit = &unit
	}
	return resp
}

func newRoomResponse(r *domain.Room) RoomResponse {
	devices := make([]DeviceResponse, 0, len(r.Devices))
	for _, d := range r.Devices {
		devices = append(devices, newDeviceResponse(d))
	}
	return RoomResponse{RID: r.ID, FID: r.Floor.Level, Name: r.Name, Size: r.Size, Devices: devices}
}

// Hello is a liveness check.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": c.DefaultQuery("name", "world")})
}

// GetSmartHouse handles GET /smarthouse.
func (h *Handler) GetSmartHouse(c *gin.Context) {
	c.JSON(http.StatusOK, HouseResponse{
		NoRooms:           len(h.house.GetRooms()),
		NoFloors:          len(h.house.GetFloors()),
		RegisteredDevices: len(h.house.GetDevices()),
		Area:              h.house.GetArea(),
	})
}

// GetFloors handles GET /smarthouse/floor.
func (h *Handler) GetFloors(c *gin.Context) {
	floors := h.house.GetFloors()
	response := make([]FloorResponse, 0, len(floors))
	for _, f := range floors {
		response = append(response, FloorResponse{FID: f.Level, NoRooms: len(f.Rooms)})
	}
	c.JSON(http.StatusOK, response)
}

// GetFloor handles GET /smarthouse/floor/:fid.
func (h *Handler) GetFloor(c *gin.Context) {
	floor, ok := h.floor(c)
	if !ok {
		return
	}
	rooms := make([]RoomResponse, 0, len(floor.Rooms))
	for _, r := range floor.Rooms {
		rooms = append(rooms, newRoomResponse(r))
	}
	c.JSON(http.StatusOK, FloorResponse{FID: floor.Level, NoRooms: len(floor.Rooms), Rooms: rooms})
}

// GetRooms handles GET /smarthouse/floor/:fid/room.
func (h *Handler) GetRooms(c *gin.Context) {
	floor, ok := h.floor(c)
	if !ok {
		return
	}
	rooms := make([]RoomResponse, 0, len(floor.Rooms))
	for _, r := range floor.Rooms {
		rooms = append(rooms, newRoomResponse(r))
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /smarthouse/floor/:fid/room/:rid.
func (h *Handler) GetRoom(c *gin.Context) {
	room, ok := h.room(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// GetDevices handles GET /smarthouse/device.
func (h *Handler) GetDevices(c *gin.Context) {
	devices := h.house.GetDevices()
	response := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		response = append(response, newDeviceResponse(d))
	}
	c.JSON(http.StatusOK, response)
}

// GetDevice handles GET /smarthouse/device/:uuid.
func (h *Handler) GetDevice(c *gin.Context) {
	device, ok := h.house.Device(deviceID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}
	c.JSON(http.StatusOK, newDeviceResponse(device))
}

// floor resolves :fid, writing the error response when it cannot.
func (h *Handler) floor(c *gin.Context) (*domain.Floor, bool) {
	level, err := strconv.Atoi(c.Param("fid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid floor id"})
		return nil, false
	}
	floor, ok := h.house.Floor(level)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "floor not found"})
		return nil, false
	}
	return floor, true
}

// room resolves :fid and :rid. A room on another floor is not found.
func (h *Handler) room(c *gin.Context) (*domain.Room, bool) {
	floor, ok := h.floor(c)
	if !ok {
		return nil, false
	}
	rid, err := strconv.ParseInt(c.Param("rid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return nil, false
	}
	room, ok := h.house.Room(rid)
	if !ok || room.Floor != floor {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return nil, false
	}
	return room, true
}
