package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartHouse_Structure(t *testing.T) {
	h := NewSmartHouse()
	ground := h.RegisterFloor(1)
	first := h.RegisterFloor(2)

	entrance := h.RegisterRoom(ground, 13.5, "Entrance")
	living := h.RegisterRoom(ground, 39.75, "Living Room / Kitchen")
	office := h.RegisterRoom(first, 11.75, "Office")

	h.RegisterDevice(entrance, NewActuator("lock", "Guardian Lock 7000", "MythicalTech", "Smart Lock"))
	h.RegisterDevice(living, NewActuatorWithSensor("pump", "Thermo Smart 6000", "ElysianTech", "Heat Pump", "°C"))
	h.RegisterDevice(office, NewSensor("temp", "SmartTemp 42", "AetherCorp", "Temperature Sensor", "°C"))

	assert.Len(t, h.GetFloors(), 2)
	assert.Len(t, h.GetRooms(), 3)
	assert.Len(t, h.GetDevices(), 3)
	assert.InDelta(t, 65.0, h.GetArea(), 1e-9)

	assert.Equal(t, int64(1), entrance.ID)
	assert.Equal(t, int64(3), office.ID)

	d, ok := h.Device("pump")
	require.True(t, ok)
	assert.Same(t, living, d.Room)
	assert.Equal(t, KindActuatorWithSensor, d.Kind())

	f, ok := h.Floor(2)
	require.True(t, ok)
	assert.Same(t, first, f)
	_, ok = h.Floor(3)
	assert.False(t, ok)

	r, ok := h.Room(2)
	require.True(t, ok)
	assert.Equal(t, "Living Room / Kitchen", r.Name)
	_, ok = h.Device("missing")
	assert.False(t, ok)
}

func TestDevice_Capabilities(t *testing.T) {
	s := NewSensor("s", "m", "sup", "Humidity Sensor", "%")
	a := NewActuator("a", "m", "sup", "Light Bulb")

	part, ok := s.AsSensor()
	require.True(t, ok)
	assert.Equal(t, "%", part.Unit)
	_, ok = s.AsActuator()
	assert.False(t, ok)
	assert.Equal(t, KindSensor, s.Kind())

	_, ok = a.AsSensor()
	assert.False(t, ok)
	act, ok := a.AsActuator()
	require.True(t, ok)
	assert.False(t, act.IsActive())

	act.TurnOnAt(0.5)
	assert.True(t, act.IsActive())
	require.NotNil(t, act.State.Level)
	assert.Equal(t, 0.5, *act.State.Level)

	act.TurnOn()
	assert.True(t, act.IsActive())
	assert.Nil(t, act.State.Level)

	act.TurnOff()
	assert.False(t, act.IsActive())
}

func TestState_StoredRoundTrip(t *testing.T) {
	assert.Nil(t, Off().Stored())
	assert.Equal(t, 1.0, *On().Stored())
	assert.Equal(t, 0.5, *OnAt(0.5).Stored())

	assert.Equal(t, Off(), StateFromStored(nil))

	one := 1.0
	assert.Equal(t, On(), StateFromStored(&one))

	half := 0.5
	st := StateFromStored(&half)
	assert.True(t, st.On)
	require.NotNil(t, st.Level)
	assert.Equal(t, 0.5, *st.Level)
}
