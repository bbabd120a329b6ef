package services

import (
	"time"

	"weather-dashboard/pkg/client"
)

const demoSamples = 40 // 5 days of 3-hour steps

func demoCurrentWeather(city string, now time.Time) *client.OpenWeatherCurrentResponse {
	current := &client.OpenWeatherCurrentResponse{
		Weather:    []client.WeatherCondition{{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}},
		Visibility: 10000,
		Dt:         now.Unix(),
		Timezone:   0,
		ID:         2643743,
		Name:       city,
		Cod:        200,
	}
	current.Coord.Lon = -0.13
	current.Coord.Lat = 51.51
	current.Main.Temp = 22.5
	current.Main.FeelsLike = 21.8
	current.Main.TempMin = 18.2
	current.Main.TempMax = 26.1
	current.Main.Pressure = 1013
	current.Main.Humidity = 65
	current.Wind.Speed = 3.6
	current.Wind.Deg = 280
	current.Sys.Country = "GB"
	current.Sys.Sunrise = now.Add(-6 * time.Hour).Unix()
	current.Sys.Sunset = now.Add(6 * time.Hour).Unix()
	return current
}

func demoForecast(city string, now time.Time) *client.OpenWeatherForecastResponse {
	forecast := &client.OpenWeatherForecastResponse{
		Cod:  "200",
		Cnt:  demoSamples,
		List: make([]client.ForecastItem, 0, demoSamples),
	}

	for i := 0; i < demoSamples; i++ {
		at := now.Add(time.Duration(3*i) * time.Hour)
		temp := float64(20 + i%10 - 5)
		clear := i%3 == 0

		var item client.ForecastItem
		item.Dt = at.Unix()
		item.Main.Temp = temp
		item.Main.FeelsLike = temp - 1
		item.Main.TempMin = temp - 3
		item.Main.TempMax = temp + 3
		item.Main.Pressure = 1013
		item.Main.SeaLevel = 1013
		item.Main.GrndLevel = 1010
		item.Main.Humidity = 60 + i%20
		item.Wind.Speed = 2.5 + float64(i%3)
		item.Wind.Deg = float64(280 + i%40)
		item.Visibility = 10000
		item.DtTxt = at.Format("2006-01-02 15:04:05")

		if clear {
			item.Weather = []client.WeatherCondition{{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}}
		} else {
			item.Weather = []client.WeatherCondition{{ID: 300, Main: "Drizzle", Description: "light intensity drizzle", Icon: "09d"}}
			item.Clouds.All = 40
			item.Pop = 0.1
		}

		if hour := at.Hour(); hour >= 6 && hour <= 18 {
			item.Sys.Pod = "d"
		} else {
			item.Sys.Pod = "n"
		}

		forecast.List = append(forecast.List, item)
	}

	forecast.City.ID = 2643743
	forecast.City.Name = city
	forecast.City.Coord.Lat = 51.51
	forecast.City.Coord.Lon = -0.13
	forecast.City.Country = "GB"
	forecast.City.Population = 1000000
	forecast.City.Sunrise = now.Add(-6 * time.Hour).Unix()
	forecast.City.Sunset = now.Add(6 * time.Hour).Unix()

	return forecast
}
