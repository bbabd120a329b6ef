package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	glyphWidth = 2
	tempWidth  = 6
	dayWidth   = 4
	lineWidth  = 56
)

// WriteText renders v for a terminal.
func WriteText(w io.Writer, v View) error {
	out := bufio.NewWriter(w)

	header := v.Current.Location
	if v.Current.DateTime != "" {
		header = runewidth.FillRight(header, lineWidth-runewidth.StringWidth(v.Current.DateTime)-1) + " " + v.Current.DateTime
	}
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, strings.Repeat("─", lineWidth))

	temperature := v.Current.Temperature
	if temperature != Placeholder {
		temperature += "°C"
	}
	fmt.Fprintf(out, "%s %s %s\n",
		runewidth.FillRight(Glyph(v.Current.IconClass), glyphWidth),
		runewidth.FillRight(temperature, tempWidth),
		v.Current.Description)
	fmt.Fprintf(out, "Humidity %s%%   Wind %s km/h   Visibility %s km\n",
		v.Current.Humidity, v.Current.WindSpeed, v.Current.Visibility)

	if len(v.Forecast) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Forecast")
		for _, card := range v.Forecast {
			fmt.Fprintf(out, "%s %s %s %s\n",
				runewidth.FillRight(card.Day, dayWidth),
				runewidth.FillRight(Glyph(card.IconClass), glyphWidth),
				runewidth.FillRight(card.Temperature, tempWidth),
				card.Description)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Statistics")
	fmt.Fprintf(out, "Max %s°C   Min %s°C   Avg %s°C   Avg humidity %s%%\n",
		v.Stats.MaxTemp, v.Stats.MinTemp, v.Stats.AvgTemp, v.Stats.AvgHumidity)

	if v.DemoMode {
		fmt.Fprintln(out, "(demo data)")
	}
	if v.Loading {
		fmt.Fprintln(out, "Loading…")
	}

	return out.Flush()
}
