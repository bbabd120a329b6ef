package render

// DefaultIconClass is used for provider codes missing from the table.
const DefaultIconClass = "fas fa-cloud"

var iconClasses = map[string]string{
	"01d": "fas fa-sun",
	"01n": "fas fa-moon",
	"02d": "fas fa-cloud-sun",
	"02n": "fas fa-cloud-moon",
	"03d": "fas fa-cloud",
	"03n": "fas fa-cloud",
	"04d": "fas fa-cloud",
	"04n": "fas fa-cloud",
	"09d": "fas fa-cloud-rain",
	"09n": "fas fa-cloud-rain",
	"10d": "fas fa-cloud-sun-rain",
	"10n": "fas fa-cloud-moon-rain",
	"11d": "fas fa-bolt",
	"11n": "fas fa-bolt",
	"13d": "fas fa-snowflake",
	"13n": "fas fa-snowflake",
	"50d": "fas fa-smog",
	"50n": "fas fa-smog",
}

var glyphs = map[string]string{
	"fas fa-sun":             "🌞",
	"fas fa-moon":            "🌙",
	"fas fa-cloud-sun":       "⛅",
	"fas fa-cloud-moon":      "🌥",
	"fas fa-cloud":           "☁",
	"fas fa-cloud-rain":      "🌧",
	"fas fa-cloud-sun-rain":  "🌦",
	"fas fa-cloud-moon-rain": "🌧",
	"fas fa-bolt":            "⚡",
	"fas fa-snowflake":       "❄",
	"fas fa-smog":            "🌫",
}

// IconClass maps an OpenWeatherMap icon code to its display class.
func IconClass(code string) string {
	if class, ok := iconClasses[code]; ok {
		return class
	}
	return DefaultIconClass
}

// Glyph returns the terminal symbol for an icon class.
func Glyph(class string) string {
	if glyph, ok := glyphs[class]; ok {
		return glyph
	}
	return glyphs[DefaultIconClass]
}
