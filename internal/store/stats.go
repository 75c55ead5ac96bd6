package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"smarthouse-backend/internal/parse"
)

// humidityHourThreshold is the number of above-average readings an hour must
// exceed to be reported.
const humidityHourThreshold = 3

type timedValue struct {
	Value float64
	Ts    time.Time
}

// roomReadings selects readings with the given unit from devices in the named
// room.
func (s *gormStore) roomReadings(ctx context.Context, room, unit string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("measurements m").
		Joins("JOIN devices d ON d.id = m.device").
		Joins("JOIN rooms r ON r.id = d.room").
		Where("r.name = ? AND m.unit = ?", room, unit)
}

// CalcAvgTemperaturesInRoom averages the temperature readings of a room per
// calendar day (UTC). Both bounds are inclusive dates and either may be nil.
func (s *gormStore) CalcAvgTemperaturesInRoom(ctx context.Context, room string, from, until *time.Time) (map[string]float64, error) {
	q := s.roomReadings(ctx, room, UnitCelsius).Select("m.value AS value, m.ts AS ts")
	if from != nil {
		q = q.Where("m.ts >= ?", startOfDay(*from))
	}
	if until != nil {
		q = q.Where("m.ts < ?", startOfDay(*until).AddDate(0, 0, 1))
	}

	var rows []timedValue
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch temperatures for room %q: %w", room, err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range rows {
		day := r.Ts.UTC().Format(parse.DateLayout)
		sums[day] += r.Value
		counts[day]++
	}

	averages := make(map[string]float64, len(sums))
	for day, sum := range sums {
		averages[day] = sum / float64(counts[day])
	}
	return averages, nil
}

// CalcHoursWithHumidityAbove returns, in ascending order, the hours of the day
// in which more than three humidity readings of the room were above that
// day's average.
func (s *gormStore) CalcHoursWithHumidityAbove(ctx context.Context, room string, date time.Time) ([]int, error) {
	hours := []int{}

	var rooms int64
	if err := s.db.WithContext(ctx).Table("rooms").Where("name = ?", room).Count(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve room %q: %w", room, err)
	}
	if rooms == 0 {
		return hours, nil
	}

	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)
	sameDay := func() *gorm.DB {
		return s.roomReadings(ctx, room, UnitHumidity).Where("m.ts >= ? AND m.ts < ?", dayStart, dayEnd)
	}

	var avg sql.NullFloat64
	if err := sameDay().Select("AVG(m.value)").Row().Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to average humidity for room %q: %w", room, err)
	}
	if !avg.Valid {
		return hours, nil
	}

	var above []timedValue
	if err := sameDay().Select("m.value AS value, m.ts AS ts").Where("m.value > ?", avg.Float64).Scan(&above).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch humidity readings for room %q: %w", room, err)
	}

	perHour := make(map[int]int)
	for _, r := range above {
		perHour[r.Ts.UTC().Hour()]++
	}
	for hour, n := range perHour {
		if n > humidityHourThreshold {
			hours = append(hours, hour)
		}
	}
	sort.Ints(hours)
	return hours, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
