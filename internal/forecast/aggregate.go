package forecast

import (
	"errors"
	"math"
	"time"

	"weather-dashboard/internal/models"
)

// ErrEmptyForecast is returned when statistics are requested for no samples.
var ErrEmptyForecast = errors.New("forecast has no samples")

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// GroupByDay keeps the first sample of every calendar day, in order of first
// occurrence. Days are taken in loc; a nil loc means the local zone.
func GroupByDay(samples models.ForecastList, loc *time.Location) []models.ForecastSample {
	days := make([]models.ForecastSample, 0, len(samples)/8+1)
	seen := make(map[dayKey]struct{})

	for _, sample := range samples {
		y, m, d := sample.Time(loc).Date()
		key := dayKey{year: y, month: m, day: d}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, sample)
	}

	return days
}

// ComputeStatistics summarises temperature and humidity over every sample.
func ComputeStatistics(samples models.ForecastList) (models.Statistics, error) {
	if len(samples) == 0 {
		return models.Statistics{}, ErrEmptyForecast
	}

	maxTemp := math.Inf(-1)
	minTemp := math.Inf(1)
	var totalTemp, totalHumidity float64

	for _, sample := range samples {
		temp := sample.Temperature
		totalTemp += temp
		totalHumidity += float64(sample.Humidity)

		if temp > maxTemp {
			maxTemp = temp
		}
		if temp < minTemp {
			minTemp = temp
		}
	}

	count := float64(len(samples))

	return models.Statistics{
		MaxTemp:     Round(maxTemp),
		MinTemp:     Round(minTemp),
		AvgTemp:     Round(totalTemp / count),
		AvgHumidity: Round(totalHumidity / count),
	}, nil
}

// Round rounds to the nearest integer with halves going up, so -2.5 becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
