package render

import (
	"fmt"
	"strconv"
	"time"

	"weather-dashboard/internal/forecast"
	"weather-dashboard/internal/session"
)

// Placeholder stands in for values that are loading or unknown.
const Placeholder = "--"

const (
	dateTimeLayout = "1/2/2006, 3:04:05 PM"
	weekdayLayout  = "Mon"
)

type CurrentView struct {
	Location    string
	DateTime    string
	Temperature string
	Description string
	Humidity    string
	WindSpeed   string // km/h
	Visibility  string // km
	IconClass   string
}

type ForecastCard struct {
	Day         string
	Temperature string
	Description string
	IconClass   string
}

type StatsView struct {
	MaxTemp     string
	MinTemp     string
	AvgTemp     string
	AvgHumidity string
}

// View is everything the dashboard shows, already formatted.
type View struct {
	City     string
	Current  CurrentView
	Forecast []ForecastCard
	Stats    StatsView
	DemoMode bool
	Loading  bool
}

func emptyView(city string) View {
	return View{
		City: city,
		Current: CurrentView{
			Location:    city,
			Temperature: Placeholder,
			Humidity:    Placeholder,
			WindSpeed:   Placeholder,
			Visibility:  Placeholder,
			IconClass:   DefaultIconClass,
		},
		Stats: StatsView{
			MaxTemp:     Placeholder,
			MinTemp:     Placeholder,
			AvgTemp:     Placeholder,
			AvgHumidity: Placeholder,
		},
	}
}

// Project builds the view for snap. Dates are rendered in loc.
func Project(snap session.Snapshot, now time.Time, loc *time.Location) View {
	if loc == nil {
		loc = time.Local
	}

	view := emptyView(snap.City)
	if !snap.HasData() {
		return view
	}

	current := snap.Current
	view.DemoMode = snap.DemoMode
	view.Current = CurrentView{
		Location:    current.LocationName + ", " + current.CountryCode,
		DateTime:    now.In(loc).Format(dateTimeLayout),
		Temperature: strconv.Itoa(forecast.Round(current.Temperature)),
		Description: current.Description,
		Humidity:    strconv.Itoa(current.Humidity),
		WindSpeed:   strconv.Itoa(forecast.Round(current.WindSpeed * 3.6)),
		Visibility:  fmt.Sprintf("%.1f", float64(current.Visibility)/1000),
		IconClass:   IconClass(current.Icon),
	}

	days := forecast.GroupByDay(snap.Forecast, loc)
	view.Forecast = make([]ForecastCard, 0, len(days))
	for _, day := range days {
		view.Forecast = append(view.Forecast, ForecastCard{
			Day:         day.Time(loc).Format(weekdayLayout),
			Temperature: fmt.Sprintf("%d°C", forecast.Round(day.Temperature)),
			Description: day.Description,
			IconClass:   IconClass(day.Icon),
		})
	}

	if stats, err := forecast.ComputeStatistics(snap.Forecast); err == nil {
		view.Stats = StatsView{
			MaxTemp:     strconv.Itoa(stats.MaxTemp),
			MinTemp:     strconv.Itoa(stats.MinTemp),
			AvgTemp:     strconv.Itoa(stats.AvgTemp),
			AvgHumidity: strconv.Itoa(stats.AvgHumidity),
		}
	}

	return view
}

// Loading marks v as waiting for a fetch. Only the live readings are blanked;
// the forecast and statistics keep their previous values.
func Loading(v View) View {
	v.Loading = true
	v.Current.Temperature = Placeholder
	v.Current.Humidity = Placeholder
	v.Current.WindSpeed = Placeholder
	v.Current.Visibility = Placeholder
	return v
}
