package chat

import (
	"fmt"
	"strings"
	"time"

	"weather-dashboard/internal/forecast"
	"weather-dashboard/internal/session"
)

const NoDataSummary = "No weather data available."

// BuildSummary renders the session as the plain-text context sent to the
// language model. The layout is also parsed by the backend's rule-based
// advisor, so line prefixes must stay stable.
func BuildSummary(snap session.Snapshot, loc *time.Location) (string, error) {
	if !snap.HasData() {
		return NoDataSummary, nil
	}

	stats, err := forecast.ComputeStatistics(snap.Forecast)
	if err != nil {
		return "", fmt.Errorf("summarise forecast: %w", err)
	}

	current := snap.Current
	var b strings.Builder

	fmt.Fprintf(&b, "Current Weather in %s, %s:\n", current.LocationName, current.CountryCode)
	fmt.Fprintf(&b, "- Temperature: %d°C (feels like %d°C)\n", forecast.Round(current.Temperature), forecast.Round(current.FeelsLike))
	fmt.Fprintf(&b, "- Weather: %s\n", current.Description)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", current.Humidity)
	fmt.Fprintf(&b, "- Wind Speed: %d km/h\n", forecast.Round(current.WindSpeed*3.6))
	fmt.Fprintf(&b, "- Visibility: %d km\n", forecast.Round(float64(current.Visibility)/1000))
	fmt.Fprintf(&b, "- Pressure: %d hPa\n\n", current.Pressure)

	b.WriteString("5-Day Forecast:\n")
	for _, day := range forecast.GroupByDay(snap.Forecast, loc) {
		date := day.Time(loc)
		fmt.Fprintf(&b, "%s (%s): %d°C, %s, %d%% humidity\n",
			date.Format("Mon"), date.Format("Jan 2"),
			forecast.Round(day.Temperature), day.Description, day.Humidity)
	}

	b.WriteString("\nTemperature Statistics:\n")
	fmt.Fprintf(&b, "- Highest: %d°C\n", stats.MaxTemp)
	fmt.Fprintf(&b, "- Lowest: %d°C\n", stats.MinTemp)
	fmt.Fprintf(&b, "- Average: %d°C\n", stats.AvgTemp)

	return b.String(), nil
}
