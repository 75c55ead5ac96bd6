package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/notification"
)

// StateResponse is the wire form of an actuator state. State mirrors the
// stored value: null when off, 1 when on without a level, else the level.
type StateResponse struct {
	ID    string   `json:"id"`
	On    bool     `json:"on"`
	Level *float64 `json:"level"`
	State *float64 `json:"state"`
}

func newStateResponse(id string, s domain.State) StateResponse {
	return StateResponse{ID: id, On: s.On, Level: s.Level, State: s.Stored()}
}

type putStateRequest struct {
	State json.RawMessage `json:"state"`
}

var errInvalidState = errors.New("state must be a boolean, a number or null")

// decodeState accepts true, false, null or a level.
func decodeState(raw json.RawMessage) (domain.State, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return domain.State{}, errors.New("state is required")
	}
	if bytes.Equal(raw, []byte("null")) {
		return domain.Off(), nil
	}

	var on bool
	if err := json.Unmarshal(raw, &on); err == nil {
		if on {
			return domain.On(), nil
		}
		return domain.Off(), nil
	}
	var level float64
	if err := json.Unmarshal(raw, &level); err == nil {
		return domain.OnAt(level), nil
	}
	return domain.State{}, errInvalidState
}

func (h *Handler) actuator(c *gin.Context) (*domain.Device, bool) {
	device, ok := h.house.Device(deviceID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "actuator not found"})
		return nil, false
	}
	if !device.IsActuator() {
		c.JSON(http.StatusNotFound, gin.H{"error": "device is not an actuator"})
		return nil, false
	}
	return device, true
}

// GetActuatorState handles GET /smarthouse/actuator/:uuid/current.
func (h *Handler) GetActuatorState(c *gin.Context) {
	device, ok := h.actuator(c)
	if !ok {
		return
	}

	state, err := h.store.GetActuatorState(c.Request.Context(), device.ID)
	if err != nil {
		h.internalError(c, "fetching actuator state failed", err)
		return
	}
	c.JSON(http.StatusOK, newStateResponse(device.ID, state))
}

// PutActuatorState handles PUT /smarthouse/actuator/:uuid/current.
func (h *Handler) PutActuatorState(c *gin.Context) {
	device, ok := h.actuator(c)
	if !ok {
		return
	}

	var req putStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	state, err := decodeState(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A level of exactly 1 is stored as plain on.
	state = domain.StateFromStored(state.Stored())

	if err := h.store.UpdateActuatorState(c.Request.Context(), device.ID, state); err != nil {
		h.internalError(c, "updating actuator state failed", err)
		return
	}

	if h.notifier != nil && !h.notifier.Dispatch(notification.StateChange{DeviceID: device.ID, State: state}) {
		h.log.Warn("state change not announced", zap.String("device", device.ID))
	}
	c.JSON(http.StatusOK, newStateResponse(device.ID, state))
}
