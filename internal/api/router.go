package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"smarthouse-backend/config"
	"smarthouse-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// Structural responses only change on restart, so they are safe to cache.
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			r.Static("/static", cfg.StaticDir)
		}
	}
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/static/index.html")
	})
	r.GET("/hello", Hello)

	api := r.Group("/smarthouse")
	api.Use(rateLimiter)
	{
		api.GET("", caching, handler.GetSmartHouse)
		api.GET("/floor", caching, handler.GetFloors)
		api.GET("/floor/:fid", caching, handler.GetFloor)
		api.GET("/floor/:fid/room", caching, handler.GetRooms)
		api.GET("/floor/:fid/room/:rid", caching, handler.GetRoom)
		api.GET("/floor/:fid/room/:rid/temperature", handler.GetRoomTemperature)
		api.GET("/floor/:fid/room/:rid/humidity", handler.GetRoomHumidity)
		api.GET("/device", caching, handler.GetDevices)
		api.GET("/device/:uuid", caching, handler.GetDevice)

		api.GET("/sensor/:uuid/current", handler.GetCurrentReading)
		api.POST("/sensor/:uuid/current", handler.PostReading)
		api.GET("/sensor/:uuid/values", handler.GetReadings)
		api.DELETE("/sensor/:uuid/oldest", handler.DeleteOldestReading)

		api.GET("/actuator/:uuid/current", handler.GetActuatorState)
		api.PUT("/actuator/:uuid/current", handler.PutActuatorState)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
