package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	degreesPattern      = regexp.MustCompile(`(-?\d+)°C`)
	conditionPattern    = regexp.MustCompile(`Weather: (.+)`)
	percentPattern      = regexp.MustCompile(`(\d+)%`)
	dayConditionPattern = regexp.MustCompile(`, (.+?),`)
	dayHumidityPattern  = regexp.MustCompile(`(\d+)% humidity`)
	moreThanPattern     = regexp.MustCompile(`more than (\d+)`)
)

type digestDay struct {
	label     string
	temp      int
	condition string
	humidity  int
}

func (d digestDay) rainy() bool {
	return containsAny(strings.ToLower(d.condition), "rain", "drizzle", "shower")
}

// weatherDigest is what can be recovered from the dashboard's plain-text
// weather summary.
type weatherDigest struct {
	temp        int
	hasTemp     bool
	condition   string
	humidity    int
	hasHumidity bool

	days []digestDay

	highest, lowest, average          int
	hasHighest, hasLowest, hasAverage bool
}

func (w *weatherDigest) hasCurrent() bool {
	return w.hasTemp || w.condition != "" || w.hasHumidity
}

func (w *weatherDigest) hasStats() bool {
	return w.hasHighest || w.hasLowest || w.hasAverage
}

func (w *weatherDigest) rainyDays() []digestDay {
	var rainy []digestDay
	for _, day := range w.days {
		if day.rainy() {
			rainy = append(rainy, day)
		}
	}
	return rainy
}

func firstInt(pattern *regexp.Regexp, text string) (int, bool) {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseDigest(summary string) *weatherDigest {
	digest := &weatherDigest{}
	lines := strings.Split(summary, "\n")

	for _, line := range lines {
		switch {
		case strings.Contains(line, "Current Weather in"):
		case strings.Contains(line, "Temperature:"):
			if temp, ok := firstInt(degreesPattern, line); ok {
				digest.temp, digest.hasTemp = temp, true
			}
		case strings.Contains(line, "Weather:"):
			if match := conditionPattern.FindStringSubmatch(line); match != nil {
				digest.condition = strings.TrimSpace(match[1])
			}
		case strings.Contains(line, "Humidity:"):
			if humidity, ok := firstInt(percentPattern, line); ok {
				digest.humidity, digest.hasHumidity = humidity, true
			}
		}
	}

	inForecast := false
	for _, line := range lines {
		if strings.Contains(line, "5-Day Forecast:") {
			inForecast = true
			continue
		}
		if !inForecast {
			continue
		}
		// The day list ends at the first blank line after its header.
		if strings.TrimSpace(line) == "" {
			if len(digest.days) > 0 {
				break
			}
			continue
		}
		if !strings.Contains(line, ":") || !strings.Contains(line, "°C") {
			continue
		}

		parts := strings.Split(line, ": ")
		if len(parts) != 2 {
			continue
		}

		temp, ok := firstInt(degreesPattern, parts[1])
		if !ok {
			continue
		}

		day := digestDay{label: parts[0], temp: temp, condition: "unknown"}
		if match := dayConditionPattern.FindStringSubmatch(parts[1]); match != nil {
			day.condition = match[1]
		}
		day.humidity, _ = firstInt(dayHumidityPattern, parts[1])
		digest.days = append(digest.days, day)
	}

	for _, line := range lines {
		switch {
		case strings.Contains(line, "Highest:"):
			digest.highest, digest.hasHighest = firstInt(degreesPattern, line)
		case strings.Contains(line, "Lowest:"):
			digest.lowest, digest.hasLowest = firstInt(degreesPattern, line)
		case strings.Contains(line, "Average:"):
			digest.average, digest.hasAverage = firstInt(degreesPattern, line)
		}
	}

	return digest
}

func orUnknown(value int, ok bool) string {
	if !ok {
		return "unknown"
	}
	return strconv.Itoa(value)
}

// Advise answers query from a weather summary without a language model.
func Advise(query, summary string) string {
	if strings.TrimSpace(summary) == "" {
		return "I don't have weather data available. Please search for a city first."
	}

	query = strings.ToLower(query)
	digest := parseDigest(summary)

	switch {
	// Counting rainy days is checked before the umbrella rule, which would
	// otherwise swallow every query mentioning rain.
	case strings.Contains(query, "rain more than") || strings.Contains(query, "rainy days"):
		return adviseRainCount(query, digest)

	case containsAny(query, "umbrella", "rain", "precipitation"):
		rainy := digest.rainyDays()
		if len(rainy) == 0 {
			return "No, you probably don't need an umbrella this week. The forecast shows clear or partly cloudy conditions with no significant rain expected."
		}
		labels := make([]string, 0, len(rainy))
		for _, day := range rainy {
			labels = append(labels, day.label)
		}
		return fmt.Sprintf("Yes, you might need an umbrella! I see rain in the forecast for: %s. The weather shows %d rainy days this week.",
			strings.Join(labels, ", "), len(rainy))

	case containsAny(query, "summarize", "summary"):
		if len(digest.days) == 0 {
			return "I can't provide a detailed summary without forecast data. Please search for a city first."
		}
		var b strings.Builder
		b.WriteString("Here's a 5-day weather summary: ")
		for _, day := range digest.days {
			fmt.Fprintf(&b, "%s: %d°C, %s. ", day.label, day.temp, day.condition)
		}
		return b.String()

	case containsAny(query, "outdoor", "activities", "best day"):
		best, ok := bestOutdoorDay(digest.days)
		if !ok {
			return "I can't determine the best day without detailed forecast data. Please search for a city first."
		}
		return fmt.Sprintf("The best day for outdoor activities looks like %s with %d°C and %s. It has comfortable conditions for outdoor activities.",
			best.label, best.temp, best.condition)

	case containsAny(query, "average", "highest", "temperature"):
		if !digest.hasStats() {
			return "I can't provide temperature statistics without forecast data. Please search for a city first."
		}
		var b strings.Builder
		b.WriteString("Temperature statistics: ")
		if digest.hasHighest {
			fmt.Fprintf(&b, "Highest: %d°C. ", digest.highest)
		}
		if digest.hasAverage {
			fmt.Fprintf(&b, "Average: %d°C. ", digest.average)
		}
		if digest.hasLowest {
			fmt.Fprintf(&b, "Lowest: %d°C. ", digest.lowest)
		}
		return b.String()

	case containsAny(query, "pack", "trip"):
		return advisePacking(digest)

	case strings.Contains(query, "compare") && strings.Contains(query, "last week"):
		return "I can't compare to last week's weather as I only have current forecast data. This feature would require historical weather data integration."
	}

	if !digest.hasCurrent() {
		return "I can help with weather information! Try asking about temperature, rain, outdoor activities, or packing suggestions."
	}

	condition := digest.condition
	if condition == "" {
		condition = "unknown conditions"
	}
	return fmt.Sprintf("Current weather: %s°C, %s. Humidity: %s%%.",
		orUnknown(digest.temp, digest.hasTemp), condition, orUnknown(digest.humidity, digest.hasHumidity))
}

func adviseRainCount(query string, digest *weatherDigest) string {
	count := len(digest.rainyDays())

	threshold, ok := firstInt(moreThanPattern, query)
	if !ok {
		return fmt.Sprintf("There are %d rainy days in the forecast this week.", count)
	}
	if count > threshold {
		return fmt.Sprintf("Yes, it will rain more than %d times this week. I count %d rainy days in the forecast.", threshold, count)
	}
	return fmt.Sprintf("No, it won't rain more than %d times this week. I count %d rainy days in the forecast.", threshold, count)
}

// bestOutdoorDay scores clear skies, 15-25°C and humidity under 70%.
// The earliest day wins ties.
func bestOutdoorDay(days []digestDay) (digestDay, bool) {
	var best digestDay
	bestScore := -1

	for _, day := range days {
		score := 0
		condition := strings.ToLower(day.condition)
		if strings.Contains(condition, "clear") || strings.Contains(condition, "sunny") {
			score += 3
		}
		if day.temp >= 15 && day.temp <= 25 {
			score += 2
		}
		if day.humidity < 70 {
			score++
		}

		if score > bestScore {
			best, bestScore = day, score
		}
	}

	return best, bestScore >= 0
}

func advisePacking(digest *weatherDigest) string {
	if !digest.hasStats() || !digest.hasCurrent() {
		return "I can't provide packing suggestions without detailed weather data. Please search for a city first."
	}

	var suggestions []string
	if digest.highest > 25 {
		suggestions = append(suggestions, "light clothing")
	}
	if digest.hasLowest && digest.lowest < 15 {
		suggestions = append(suggestions, "a jacket or sweater")
	}
	for _, day := range digest.days {
		if strings.Contains(strings.ToLower(day.condition), "rain") {
			suggestions = append(suggestions, "an umbrella or raincoat")
			break
		}
	}
	if digest.humidity > 70 {
		suggestions = append(suggestions, "moisture-wicking clothes")
	}

	if len(suggestions) == 0 {
		return "The weather looks mild and comfortable. Pack regular clothing suitable for the current season."
	}

	return fmt.Sprintf("Based on the weather forecast, you should pack: %s. The temperature will range from %s°C to %s°C.",
		strings.Join(suggestions, ", "),
		orUnknown(digest.lowest, digest.hasLowest), orUnknown(digest.highest, digest.hasHighest))
}
