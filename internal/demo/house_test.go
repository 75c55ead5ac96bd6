package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smarthouse-backend/internal/model"
)

func TestSeed_OnlyOnce(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:demo_seed?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, testDB.AutoMigrate(model.All()...))

	seeded, err := Seed(context.Background(), testDB)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = Seed(context.Background(), testDB)
	require.NoError(t, err)
	assert.False(t, seeded, "a populated database must not be seeded again")

	var rooms, devices, states int64
	testDB.Model(&model.Room{}).Count(&rooms)
	testDB.Model(&model.Device{}).Count(&devices)
	testDB.Model(&model.State{}).Count(&states)
	assert.Equal(t, int64(len(Rooms)), rooms)
	assert.Equal(t, int64(len(Devices)), devices)
	assert.Equal(t, int64(len(States)), states)

	var nullStates int64
	testDB.Model(&model.State{}).Where("state IS NULL").Count(&nullStates)
	assert.Equal(t, int64(6), nullStates)
}
