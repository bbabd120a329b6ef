package client

import (
	"context"
	"fmt"
	"net/url"

	"weather-dashboard/internal/models"
	"go.uber.org/zap"
)

const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type OpenWeatherCurrentResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather []WeatherCondition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Cod      int    `json:"cod"`
}

type ForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		SeaLevel  int     `json:"sea_level"`
		GrndLevel int     `json:"grnd_level"`
		Humidity  int     `json:"humidity"`
		TempKf    float64 `json:"temp_kf"`
	} `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Clouds  struct {
		All int `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Visibility int     `json:"visibility"`
	Pop        float64 `json:"pop"`
	Sys        struct {
		Pod string `json:"pod"`
	} `json:"sys"`
	DtTxt string `json:"dt_txt"`
}

type OpenWeatherForecastResponse struct {
	Cod     string         `json:"cod"`
	Message int            `json:"message"`
	Cnt     int            `json:"cnt"`
	List    []ForecastItem `json:"list"`
	City    struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Country    string `json:"country"`
		Population int    `json:"population"`
		Timezone   int    `json:"timezone"`
		Sunrise    int64  `json:"sunrise"`
		Sunset     int64  `json:"sunset"`
	} `json:"city"`
}

func NewOpenWeatherClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherClient{
		BaseClient: NewBaseClient("openweather", config, logger),
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

func (c *OpenWeatherClient) query(city string) string {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	return params.Encode()
}

func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, city string) (*OpenWeatherCurrentResponse, error) {
	var response OpenWeatherCurrentResponse
	if err := c.GetJSON(ctx, c.baseURL+"/weather?"+c.query(city), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	if response.Cod != 0 && response.Cod != 200 {
		return nil, fmt.Errorf("API error: %d", response.Cod)
	}
	if len(response.Weather) == 0 {
		return nil, fmt.Errorf("current weather for %s has no conditions", city)
	}

	return &response, nil
}

// GetForecast returns the 5-day forecast in 3-hour steps.
func (c *OpenWeatherClient) GetForecast(ctx context.Context, city string) (*OpenWeatherForecastResponse, error) {
	var response OpenWeatherForecastResponse
	if err := c.GetJSON(ctx, c.baseURL+"/forecast?"+c.query(city), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	if response.Cod != "" && response.Cod != "200" {
		return nil, fmt.Errorf("API error: %s", response.Cod)
	}

	return &response, nil
}

func firstCondition(conditions []WeatherCondition) WeatherCondition {
	if len(conditions) == 0 {
		return WeatherCondition{}
	}
	return conditions[0]
}

func (r *OpenWeatherCurrentResponse) ToModel() *models.CurrentWeather {
	condition := firstCondition(r.Weather)
	return &models.CurrentWeather{
		LocationName: r.Name,
		CountryCode:  r.Sys.Country,
		Temperature:  r.Main.Temp,
		FeelsLike:    r.Main.FeelsLike,
		Humidity:     r.Main.Humidity,
		WindSpeed:    r.Wind.Speed,
		Visibility:   r.Visibility,
		Pressure:     r.Main.Pressure,
		Description:  condition.Description,
		Icon:         condition.Icon,
	}
}

func (r *OpenWeatherForecastResponse) ToModel() models.ForecastList {
	samples := make(models.ForecastList, 0, len(r.List))
	for _, item := range r.List {
		condition := firstCondition(item.Weather)
		samples = append(samples, models.ForecastSample{
			Timestamp:   item.Dt,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			Description: condition.Description,
			Icon:        condition.Icon,
		})
	}
	return samples
}
