package services

import (
	"strings"
	"testing"
)

const rainySummary = `Current Weather in London, GB:
- Temperature: 18°C (feels like 17°C)
- Weather: light rain
- Humidity: 82%
- Wind Speed: 13 km/h
- Visibility: 10 km
- Pressure: 1012 hPa

5-Day Forecast:
Mon (Aug 5): 18°C, light rain, 82% humidity
Tue (Aug 6): 21°C, clear sky, 55% humidity
Wed (Aug 7): 27°C, broken clouds, 60% humidity
Thu (Aug 8): 12°C, shower rain, 90% humidity
Fri (Aug 9): 16°C, few clouds, 72% humidity

Temperature Statistics:
- Highest: 28°C
- Lowest: 11°C
- Average: 19°C
`

const coldSummary = `Current Weather in Oslo, NO:
- Temperature: -4°C (feels like -9°C)
- Weather: snow
- Humidity: 60%

5-Day Forecast:
Mon (Jan 6): -4°C, snow, 60% humidity

Temperature Statistics:
- Highest: -1°C
- Lowest: -8°C
- Average: -4°C
`

func TestParseDigest(t *testing.T) {
	digest := parseDigest(rainySummary)

	if !digest.hasTemp || digest.temp != 18 || digest.condition != "light rain" || digest.humidity != 82 {
		t.Errorf("unexpected current %+v", digest)
	}
	if len(digest.days) != 5 {
		t.Fatalf("expected 5 days, got %d: %+v", len(digest.days), digest.days)
	}
	if day := digest.days[3]; day.label != "Thu (Aug 8)" || day.temp != 12 || day.condition != "shower rain" || day.humidity != 90 {
		t.Errorf("unexpected day %+v", day)
	}
	if digest.highest != 28 || digest.lowest != 11 || digest.average != 19 {
		t.Errorf("unexpected stats %+v", digest)
	}
}

func TestParseDigest_NegativeTemperatures(t *testing.T) {
	digest := parseDigest(coldSummary)

	if digest.temp != -4 || digest.lowest != -8 || digest.highest != -1 {
		t.Errorf("negative values lost: %+v", digest)
	}
	if len(digest.days) != 1 || digest.days[0].temp != -4 {
		t.Errorf("unexpected days %+v", digest.days)
	}
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		summary string
		want    string
	}{
		{
			name:    "umbrella",
			query:   "Do I need an umbrella?",
			summary: rainySummary,
			want:    "Yes, you might need an umbrella! I see rain in the forecast for: Mon (Aug 5), Thu (Aug 8). The weather shows 2 rainy days this week.",
		},
		{
			name:    "no umbrella",
			query:   "umbrella?",
			summary: coldSummary,
			want:    "No, you probably don't need an umbrella this week.",
		},
		{
			name:    "summary",
			query:   "Summarize the week",
			summary: rainySummary,
			want:    "Here's a 5-day weather summary: Mon (Aug 5): 18°C, light rain. Tue (Aug 6): 21°C, clear sky.",
		},
		{
			name:    "best day",
			query:   "best day for outdoor activities",
			summary: rainySummary,
			want:    "The best day for outdoor activities looks like Tue (Aug 6) with 21°C and clear sky.",
		},
		{
			name:    "stats",
			query:   "what's the highest?",
			summary: rainySummary,
			want:    "Temperature statistics: Highest: 28°C. Average: 19°C. Lowest: 11°C. ",
		},
		{
			name:    "packing",
			query:   "what should I pack for my trip",
			summary: rainySummary,
			want:    "Based on the weather forecast, you should pack: light clothing, a jacket or sweater, an umbrella or raincoat, moisture-wicking clothes. The temperature will range from 11°C to 28°C.",
		},
		{
			name:    "rain threshold",
			query:   "will it rain more than 1 times?",
			summary: rainySummary,
			want:    "Yes, it will rain more than 1 times this week. I count 2 rainy days in the forecast.",
		},
		{
			name:    "rainy days count",
			query:   "how many rainy days",
			summary: rainySummary,
			want:    "There are 2 rainy days in the forecast this week.",
		},
		{
			name:    "compare",
			query:   "compare with last week",
			summary: rainySummary,
			want:    "I can't compare to last week's weather",
		},
		{
			name:    "default",
			query:   "hello",
			summary: coldSummary,
			want:    "Current weather: -4°C, snow. Humidity: 60%.",
		},
		{
			name:    "no parsable data",
			query:   "hello",
			summary: "No weather data available.",
			want:    "I can help with weather information!",
		},
		{
			name:    "empty summary",
			query:   "hello",
			summary: "",
			want:    "I don't have weather data available.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advise(tt.query, tt.summary)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Advise(%q)\n got: %s\nwant prefix: %s", tt.query, got, tt.want)
			}
		})
	}
}
