package models

import (
	"time"
)

type CurrentWeather struct {
	LocationName string  `json:"location_name"`
	CountryCode  string  `json:"country_code"`
	Temperature  float64 `json:"temperature"`
	FeelsLike    float64 `json:"feels_like"`
	Humidity     int     `json:"humidity"`
	WindSpeed    float64 `json:"wind_speed"` // m/s
	Visibility   int     `json:"visibility"` // meters
	Pressure     int     `json:"pressure"`   // hPa
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
}

// ForecastSample is one point of the provider's forecast time series.
type ForecastSample struct {
	Timestamp   int64   `json:"dt"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Time returns the sample timestamp in loc, or in the local zone when loc is nil.
func (s ForecastSample) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(s.Timestamp, 0).In(loc)
}

type ForecastList []ForecastSample

type Statistics struct {
	MaxTemp     int `json:"max_temp"`
	MinTemp     int `json:"min_temp"`
	AvgTemp     int `json:"avg_temp"`
	AvgHumidity int `json:"avg_humidity"`
}

// WeatherReport pairs the current conditions with the forecast of the same
// fetch. Both are always set on a report handed to the session.
type WeatherReport struct {
	Current  *CurrentWeather
	Forecast ForecastList
	DemoMode bool
}
