package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smarthouse-backend/internal/parse"
)

// GetRoomTemperature handles
// GET /smarthouse/floor/:fid/room/:rid/temperature?from=&until=.
// Both bounds are optional dates and inclusive.
func (h *Handler) GetRoomTemperature(c *gin.Context) {
	room, ok := h.room(c)
	if !ok {
		return
	}

	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	until, ok := optionalDate(c, "until")
	if !ok {
		return
	}

	avgs, err := h.store.CalcAvgTemperaturesInRoom(c.Request.Context(), room.Name, from, until)
	if err != nil {
		h.internalError(c, "computing temperature averages failed", err)
		return
	}
	c.JSON(http.StatusOK, avgs)
}

// GetRoomHumidity handles GET /smarthouse/floor/:fid/room/:rid/humidity?date=.
func (h *Handler) GetRoomHumidity(c *gin.Context) {
	room, ok := h.room(c)
	if !ok {
		return
	}

	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	day, err := parse.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date: " + err.Error()})
		return
	}

	hours, err := h.store.CalcHoursWithHumidityAbove(c.Request.Context(), room.Name, day)
	if err != nil {
		h.internalError(c, "computing humidity hours failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format(parse.DateLayout), "hours": hours})
}

// optionalDate reads a date query parameter. An absent parameter is nil.
func optionalDate(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	day, err := parse.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + ": " + err.Error()})
		return nil, false
	}
	return &day, true
}
