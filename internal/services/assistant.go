package services

import (
	"errors"
	"fmt"
	"strings"

	"weather-dashboard/internal/forecast"
)

var ErrNoConditions = errors.New("current weather has no conditions")

const (
	assistantHelp = "I can help you with weather information! Ask me about temperature (current, highest, lowest, average), humidity, wind speed, weather conditions, visibility, rain, or request a weather summary."

	assistantDefault = "I'm here to help with weather information! You can ask me about temperature, humidity, wind, weather conditions, or request a summary. What would you like to know?"
)

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// Answer matches message against keyword rules and replies from the stored
// weather. Rules are checked in order and the first match wins.
func Answer(message string, data *CityWeather) (string, error) {
	message = strings.ToLower(message)

	current := data.Current.ToModel()
	samples := data.Forecast.ToModel()

	if containsAny(message, "temperature", "temp") {
		if containsAny(message, "current", "now") {
			return fmt.Sprintf("The current temperature is %d°C.", forecast.Round(current.Temperature)), nil
		}

		stats, err := forecast.ComputeStatistics(samples)
		if err != nil {
			return "", err
		}

		switch {
		case containsAny(message, "highest", "max"):
			return fmt.Sprintf("The highest temperature in the forecast is %d°C.", stats.MaxTemp), nil
		case containsAny(message, "lowest", "min"):
			return fmt.Sprintf("The lowest temperature in the forecast is %d°C.", stats.MinTemp), nil
		case containsAny(message, "average", "avg"):
			return fmt.Sprintf("The average temperature is %d°C.", stats.AvgTemp), nil
		default:
			return fmt.Sprintf("The current temperature is %d°C. The forecast shows temperatures ranging from %d°C to %d°C.",
				forecast.Round(current.Temperature), stats.MinTemp, stats.MaxTemp), nil
		}
	}

	if strings.Contains(message, "humidity") {
		if containsAny(message, "current", "now") {
			return fmt.Sprintf("The current humidity is %d%%.", current.Humidity), nil
		}

		stats, err := forecast.ComputeStatistics(samples)
		if err != nil {
			return "", err
		}

		if containsAny(message, "average", "avg") {
			return fmt.Sprintf("The average humidity is %d%%.", stats.AvgHumidity), nil
		}
		return fmt.Sprintf("The current humidity is %d%% and the average humidity is %d%%.",
			current.Humidity, stats.AvgHumidity), nil
	}

	if strings.Contains(message, "wind") {
		return fmt.Sprintf("The current wind speed is %d km/h.", forecast.Round(current.WindSpeed*3.6)), nil
	}

	if len(data.Current.Weather) == 0 {
		if containsAny(message, "weather", "condition", "rain", "precipitation", "summary", "overview") {
			return "", ErrNoConditions
		}
	}

	if containsAny(message, "weather", "condition") {
		return fmt.Sprintf("The current weather is %s.", current.Description), nil
	}

	if strings.Contains(message, "visibility") {
		return fmt.Sprintf("The current visibility is %.1f km.", float64(current.Visibility)/1000), nil
	}

	if containsAny(message, "rain", "precipitation") {
		if strings.Contains(strings.ToLower(current.Description), "rain") {
			return fmt.Sprintf("Yes, there is rain in the forecast. The current conditions show %s.", current.Description), nil
		}
		return fmt.Sprintf("No rain is currently forecasted. The weather is %s.", current.Description), nil
	}

	if containsAny(message, "summary", "overview") {
		return fmt.Sprintf("Here's a weather summary for %s, %s: Current temperature is %d°C with %s. Humidity is %d%% and wind speed is %d km/h.",
			current.LocationName, current.CountryCode, forecast.Round(current.Temperature),
			current.Description, current.Humidity, forecast.Round(current.WindSpeed*3.6)), nil
	}

	if containsAny(message, "help", "what can you do") {
		return assistantHelp, nil
	}

	return assistantDefault, nil
}
