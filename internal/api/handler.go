package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/notification"
	"smarthouse-backend/internal/store"
)

// Notifier receives actuator state changes to announce.
type Notifier interface {
	Dispatch(change notification.StateChange) bool
}

// Handler holds shared dependencies for API handlers.
//
// house is the structure loaded at startup and is never mutated by a
// handler, so it is shared across request goroutines without locking.
// Readings and actuator state always go through store.
type Handler struct {
	store    store.Store
	house    *domain.SmartHouse
	webpush  *webpush.Options
	notifier Notifier
	log      *zap.Logger
}

// NewHandler creates a new API handler. notifier may be nil.
func NewHandler(s store.Store, house *domain.SmartHouse, webpushOptions *webpush.Options, notifier Notifier, log *zap.Logger) *Handler {
	return &Handler{
		store:    s,
		house:    house,
		webpush:  webpushOptions,
		notifier: notifier,
		log:      log,
	}
}

// deviceID returns the :uuid path parameter, canonicalised when it is a UUID.
func deviceID(c *gin.Context) string {
	return canonicalID(c.Param("uuid"))
}

// canonicalID lowercases UUIDs in any of the accepted spellings. Other ids
// pass through unchanged.
func canonicalID(raw string) string {
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return raw
}
