package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/parse"
	"smarthouse-backend/internal/store"
)

type postReadingRequest struct {
	Value     *float64 `json:"value" binding:"required"`
	Unit      string   `json:"unit"`
	Timestamp string   `json:"timestamp"`
}

// sensor resolves :uuid to a device with a sensor part. Unknown devices and
// devices that cannot measure are both reported as not found.
func (h *Handler) sensor(c *gin.Context) (*domain.Device, *domain.SensorPart, bool) {
	device, ok := h.house.Device(deviceID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
		return nil, nil, false
	}
	part, ok := device.AsSensor()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "device is not a sensor"})
		return nil, nil, false
	}
	return device, part, true
}

// GetCurrentReading handles GET /smarthouse/sensor/:uuid/current.
func (h *Handler) GetCurrentReading(c *gin.Context) {
	device, _, ok := h.sensor(c)
	if !ok {
		return
	}

	reading, err := h.store.GetLatestReading(c.Request.Context(), device.ID)
	if err != nil {
		h.internalError(c, "fetching latest reading failed", err)
		return
	}
	if reading == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sensor has no readings"})
		return
	}
	c.JSON(http.StatusOK, reading)
}

// PostReading handles POST /smarthouse/sensor/:uuid/current.
func (h *Handler) PostReading(c *gin.Context) {
	device, part, ok := h.sensor(c)
	if !ok {
		return
	}

	var req postReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := parse.ParseTimestamp(req.Timestamp, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ts = parsed
	}
	unit := req.Unit
	if unit == "" {
		unit = part.Unit
	}

	if err := h.store.AddMeasurement(c.Request.Context(), device.ID, ts, *req.Value, unit); err != nil {
		h.internalError(c, "storing reading failed", err)
		return
	}
	c.JSON(http.StatusCreated, domain.Measurement{Value: *req.Value, Unit: unit, Timestamp: ts})
}

// GetReadings handles GET /smarthouse/sensor/:uuid/values?limit=n.
func (h *Handler) GetReadings(c *gin.Context) {
	device, _, ok := h.sensor(c)
	if !ok {
		return
	}

	limit := -1 // all readings
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	readings, err := h.store.GetAllReadings(c.Request.Context(), device.ID, limit)
	if err != nil {
		h.internalError(c, "fetching readings failed", err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// DeleteOldestReading handles DELETE /smarthouse/sensor/:uuid/oldest.
func (h *Handler) DeleteOldestReading(c *gin.Context) {
	device, _, ok := h.sensor(c)
	if !ok {
		return
	}

	removed, err := h.store.RemoveOldestReading(c.Request.Context(), device.ID)
	if err != nil {
		h.internalError(c, "removing oldest reading failed", err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "sensor has no readings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// internalError logs err and answers 500. Write failures carry their own
// message.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.log.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	if errors.Is(err, store.ErrWriteFailed) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
