package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthouse-backend/internal/model"
)

func TestSubscriptions_Lifecycle(t *testing.T) {
	testDB, s := newDemoStore(t)
	ctx := context.Background()

	sub := &model.PushSubscription{Endpoint: "https://push.example.com/abc", P256DH: "key", Auth: "auth"}
	require.NoError(t, s.SaveSubscription(ctx, sub, []string{lockID, heatPumpID, "unknown-device"}))

	got, err := s.GetSubscription(ctx, sub.Endpoint)
	require.NoError(t, err)
	ids := make([]string, 0, len(got.Devices))
	for _, d := range got.Devices {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{lockID, heatPumpID}, ids)

	// Replacing keeps one row and swaps the followed devices.
	replacement := &model.PushSubscription{Endpoint: sub.Endpoint, P256DH: "key2", Auth: "auth2"}
	require.NoError(t, s.SaveSubscription(ctx, replacement, []string{ovenID}))
	got, err = s.GetSubscription(ctx, sub.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, "key2", got.P256DH)
	require.Len(t, got.Devices, 1)
	assert.Equal(t, ovenID, got.Devices[0].ID)

	require.NoError(t, s.DeleteSubscription(ctx, sub.Endpoint))
	_, err = s.GetSubscription(ctx, sub.Endpoint)
	assert.ErrorIs(t, err, ErrNotFound)

	var mappings int64
	testDB.Table("subscription_device_mapping").Count(&mappings)
	assert.Zero(t, mappings)
}
