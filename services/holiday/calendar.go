// File: services/holiday/calendar.go
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clinicbook/config"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Calendar provides read-only holiday reference data.
type Calendar interface {
	HolidaysFor(ctx context.Context, year int, region string) ([]models.Holiday, error)
}

// APICalendar fetches public holidays from the configured API and caches the
// result in Redis per (year, region).
type APICalendar struct {
	Cache   *redis.Client
	HTTP    *http.Client
	BaseURL string
	TTL     time.Duration
}

// NewAPICalendar constructs a calendar client from the app config.
func NewAPICalendar(cache *redis.Client) *APICalendar {
	return &APICalendar{
		Cache:   cache,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: config.AppConfig.HolidayAPIURL,
		TTL:     time.Duration(config.AppConfig.HolidayCacheTTLHours) * time.Hour,
	}
}

// apiHoliday matches the wire shape of the public-holidays API.
type apiHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

func (c *APICalendar) HolidaysFor(ctx context.Context, year int, region string) ([]models.Holiday, error) {
	logger := utils.GetLogger()
	key := fmt.Sprintf("holidays:%d:%s", year, region)

	if c.Cache != nil {
		cached, err := c.Cache.Get(ctx, key).Result()
		if err == nil {
			var holidays []models.Holiday
			if err := json.Unmarshal([]byte(cached), &holidays); err == nil {
				return holidays, nil
			}
			logger.Warn("discarding corrupt holiday cache entry", zap.String("key", key))
		}
	}

	url := fmt.Sprintf("%s/%d/%s", c.BaseURL, year, region)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday calendar fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday calendar fetch failed: status %d", resp.StatusCode)
	}

	var raw []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("holiday calendar decode failed: %w", err)
	}

	holidays := make([]models.Holiday, 0, len(raw))
	for _, h := range raw {
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		holidays = append(holidays, models.Holiday{Date: h.Date, Region: region, Name: name})
	}

	if c.Cache != nil {
		data, err := json.Marshal(holidays)
		if err == nil {
			if err := c.Cache.Set(ctx, key, data, c.TTL).Err(); err != nil {
				logger.Warn("failed to cache holidays", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return holidays, nil
}
