// Package collector polls an upstream sensor gateway and records the readings
// it reports.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smarthouse-backend/config"
	"smarthouse-backend/internal/domain"
	"smarthouse-backend/internal/parse"
	"smarthouse-backend/internal/store"
)

// Service periodically fetches readings and stores them.
type Service struct {
	cfg    *config.CollectorConfig
	store  store.Store
	house  *domain.SmartHouse
	client *http.Client
	loc    *time.Location
	log    *zap.Logger
}

// NewService creates a collector. Readings for devices that are not sensors
// of the given house are skipped.
func NewService(cfg *config.CollectorConfig, s store.Store, house *domain.SmartHouse, log *zap.Logger) *Service {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("invalid collector timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}
	return &Service{
		cfg:    cfg,
		store:  s,
		house:  house,
		client: &http.Client{Timeout: 30 * time.Second},
		loc:    loc,
		log:    log,
	}
}

// Run collects once immediately and then on every interval until ctx ends.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.log.Info("collector is disabled")
		return
	}
	s.log.Info("starting collector", zap.Duration("interval", s.cfg.Interval))

	s.CollectOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("collector shutting down")
			return
		case <-timer.C:
			s.CollectOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// CollectOnce fetches every page from the gateway and returns the number of
// readings stored.
func (s *Service) CollectOnce(ctx context.Context) int {
	var items []Reading
	total := 1
	pageSize := s.cfg.Request.PageSize
	for page := 1; (page-1)*pageSize < total; page++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			s.log.Error("fetching page failed", zap.Int("page", page), zap.Error(err))
			break
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		items = append(items, resp.Data.Items...)
	}

	stored := 0
	for _, item := range items {
		if s.record(ctx, item) {
			stored++
		}
	}
	s.log.Info("collect cycle finished", zap.Int("received", len(items)), zap.Int("stored", stored))
	return stored
}

func (s *Service) record(ctx context.Context, item Reading) bool {
	log := s.log.With(zap.String("device", item.Device))

	device, ok := s.house.Device(item.Device)
	if !ok {
		log.Warn("skipping reading for unknown device")
		return false
	}
	sensor, ok := device.AsSensor()
	if !ok {
		log.Warn("skipping reading for device without a sensor")
		return false
	}

	ts, err := parse.ParseTimestamp(item.Timestamp, s.loc)
	if err != nil {
		log.Warn("skipping reading with bad timestamp", zap.Error(err))
		return false
	}

	unit := item.Unit
	if unit == "" {
		unit = sensor.Unit
	}
	if err := s.store.AddMeasurement(ctx, device.ID, ts, item.Value, unit); err != nil {
		return false
	}
	return true
}

// fetchPage fetches a single page of readings from the gateway.
func (s *Service) fetchPage(ctx context.Context, page int) (*ApiResponse, error) {
	jsonBody, err := json.Marshal(map[string]int{
		"page":     page,
		"pageSize": s.cfg.Request.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Request.URL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for key, value := range s.cfg.Request.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp ApiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal api response: %w", err)
	}
	if apiResp.Code != 0 {
		return nil, fmt.Errorf("gateway returned non-zero application code: %d", apiResp.Code)
	}
	return &apiResp, nil
}
