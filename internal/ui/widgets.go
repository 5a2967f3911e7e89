package ui

import (
	"fmt"
	"strings"
	"time"

	"griddeck/internal/dashboard"
	"griddeck/internal/jsonutil"
	"griddeck/internal/ui/textutil"
)

// renderWidgetContent renders the inner body of a widget for the given type
// as plain text, fitted to w columns by h rows. Styling is applied by the
// deck renderer per widget region; returning styled text here would break
// canvas composition. Unknown types get an orphan placeholder.
func renderWidgetContent(wd dashboard.Widget, w, h int, now time.Time, known bool) []string {
	if !known {
		return fitLines([]string{
			"unknown widget: " + wd.Type,
			"press x to remove",
		}, w, h)
	}
	if wd.Collapsed {
		return fitLines([]string{"(collapsed)"}, w, h)
	}

	var lines []string
	switch wd.Type {
	case "clock":
		lines = renderClock(wd, now)
	case "status":
		lines = renderStatus(wd)
	case "notes":
		lines = renderNotes(wd)
	case "gauge":
		lines = renderGauge(wd, w)
	case "worldmap":
		lines = renderWorldMap()
	case "weather":
		lines = renderWeather(wd)
	default:
		lines = []string{"(empty)"}
	}
	return fitLines(lines, w, h)
}

func renderClock(wd dashboard.Widget, now time.Time) []string {
	format := jsonutil.GetStringOr(wd.Settings, "format", "15:04:05")
	if tz := jsonutil.GetString(wd.Settings, "timezone"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			now = now.In(loc)
		}
	}
	return []string{
		now.Format(format),
		now.Format("Mon Jan 2"),
	}
}

func renderStatus(wd dashboard.Widget) []string {
	source := jsonutil.GetStringOr(wd.Settings, "source", "(no source)")
	interval := jsonutil.GetInt(wd.Settings, "interval_seconds", 30)
	state := jsonutil.GetStringOr(wd.Settings, "state", "unknown")
	return []string{source, "● " + state, fmt.Sprintf("every %ds", interval)}
}

func renderNotes(wd dashboard.Widget) []string {
	body := jsonutil.GetStringOr(wd.Settings, "body", "")
	if body == "" {
		return []string{"(no notes)"}
	}
	return strings.Split(body, "\n")
}

func renderGauge(wd dashboard.Widget, w int) []string {
	metric := jsonutil.GetStringOr(wd.Settings, "metric", "(no metric)")
	min := jsonutil.GetInt(wd.Settings, "min", 0)
	max := jsonutil.GetInt(wd.Settings, "max", 100)
	value := jsonutil.GetInt(wd.Settings, "value", 0)
	if max <= min {
		max = min + 100
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	barWidth := w
	if barWidth < 4 {
		barWidth = 4
	}
	filled := barWidth * (value - min) / (max - min)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return []string{metric, bar, fmt.Sprintf("%d / %d", value, max)}
}

// renderWorldMap draws a tiny fixed ascii map; fitLines clips it to the
// widget's footprint.
func renderWorldMap() []string {
	return []string{
		` .  _..::__:  ,-"-"._`,
		`:,-' ,  \  \  |  _  \ '-._,-`,
		` \ '-.__  /   \/ \_/ /__.-'`,
		`  '-._  '--._ /\_/ _.--'`,
		`      '--.__ '\_/_.-'`,
	}
}

func renderWeather(wd dashboard.Widget) []string {
	location := jsonutil.GetStringOr(wd.Settings, "location", "nowhere")
	units := jsonutil.GetStringOr(wd.Settings, "units", "metric")
	unit := "°C"
	if units == "imperial" {
		unit = "°F"
	}
	return []string{location, "-- " + unit + " (offline)"}
}

// fitLines clips content to at most h lines of at most w cells each.
func fitLines(lines []string, w, h int) []string {
	if len(lines) > h {
		lines = lines[:h]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = textutil.Truncate(line, w)
	}
	return out
}
