package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSubscriptionRouter() *gin.Engine {
	r := gin.Default()
	handler := NewHandler(nil, nil, nil, nil, zap.NewNop())
	r.PUT("/smarthouse/subscriptions", handler.PutSubscription)
	return r
}

func TestPutSubscription(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/smarthouse/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestSubscriptionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)
	endpoint := "https://push.example.com/send/abc%3D%3D"
	query := "/smarthouse/subscriptions?endpoint=" + endpoint

	w := do(router, http.MethodGet, query, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := `{"endpoint":"` + endpoint + `","p256dh":"key","auth":"secret","subscribed_devices":["` + lockID + `"]}`
	w = do(router, http.MethodPut, "/smarthouse/subscriptions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(router, http.MethodGet, query, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subscribed_devices":["`+lockID+`"]}`, w.Body.String())

	w = do(router, http.MethodDelete, "/smarthouse/subscriptions", `{"endpoint":"`+endpoint+`"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, query, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutSubscription_RejectsSensors(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"endpoint":"https://push.example.com/x","p256dh":"key","auth":"secret","subscribed_devices":["` + tempID + `"]}`
	w := do(router, http.MethodPut, "/smarthouse/subscriptions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVAPIDPublicKey_NotConfigured(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/smarthouse/vapid_public_key", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"push notifications are disabled"}`, w.Body.String())
}

func TestGetVAPIDPublicKey(t *testing.T) {
	r := gin.New()
	handler := NewHandler(nil, nil, &webpush.Options{VAPIDPublicKey: "BPub"}, nil, zap.NewNop())
	r.GET("/smarthouse/vapid_public_key", handler.GetVAPIDPublicKey)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/smarthouse/vapid_public_key", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"BPub"}`, w.Body.String())
}
