package services

import (
	"strings"
	"sync"
	"time"

	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

// CityWeather is the last payload served for a city.
type CityWeather struct {
	City      string
	Current   *client.OpenWeatherCurrentResponse
	Forecast  *client.OpenWeatherForecastResponse
	DemoMode  bool
	FetchedAt time.Time
}

type storeItem struct {
	data     *CityWeather
	lastUsed time.Time
}

// WeatherStore keeps the last fetched weather per city so the chatbot can
// answer questions about whatever the dashboard displays. Entries never
// expire; once maxSize cities are held the least recently used one is
// evicted.
type WeatherStore struct {
	mu      sync.Mutex
	items   map[string]storeItem
	logger  *zap.Logger
	maxSize int
	now     func() time.Time
}

func NewWeatherStore(maxSize int, logger *zap.Logger) *WeatherStore {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &WeatherStore{
		items:   make(map[string]storeItem),
		logger:  logger,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func storeKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func (s *WeatherStore) Set(data *CityWeather) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storeKey(data.City)
	if _, exists := s.items[key]; !exists && len(s.items) >= s.maxSize {
		s.evictLeastRecent()
	}

	s.items[key] = storeItem{data: data, lastUsed: s.now()}

	s.logger.Debug("City weather stored", zap.String("city", data.City))
}

func (s *WeatherStore) Get(city string) (*CityWeather, bool) {
	key := storeKey(city)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[key]
	if !exists {
		return nil, false
	}

	item.lastUsed = s.now()
	s.items[key] = item

	return item.data, true
}

func (s *WeatherStore) evictLeastRecent() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range s.items {
		if oldestKey == "" || item.lastUsed.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.lastUsed
		}
	}

	if oldestKey != "" {
		delete(s.items, oldestKey)
		s.logger.Debug("Evicted least recently used city from store",
			zap.String("city", oldestKey))
	}
}

func (s *WeatherStore) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"cities":   len(s.items),
		"max_size": s.maxSize,
	}
}
