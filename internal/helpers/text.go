// Package helpers holds small parsing utilities shared by the request layer.
package helpers

import (
	"strconv"
	"strings"
	"time"

	"github.com/mohammad-safakhou/dayplan/models"
)

// SplitList splits comma or newline separated text into a cleaned list.
// Empty items are dropped.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(strings.ReplaceAll(value, "\r", "\n"), "\n") {
		for _, part := range strings.Split(line, ",") {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// ParseEnergyPattern parses free-form energy entries, one per line, in the
// "HH:MM LEVEL" format. "=" and "-" also work as separators. Malformed lines
// and out-of-range levels are skipped rather than rejected; the clock time is
// anchored on the given day.
func ParseEnergyPattern(raw string, day time.Time) []models.EnergySample {
	var entries []models.EnergySample
	if raw == "" {
		return entries
	}
	base := models.Day(day)
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r", "\n"), "\n") {
		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			continue
		}
		cleaned = strings.NewReplacer("=", " ", "-", " ").Replace(cleaned)
		parts := strings.Fields(cleaned)
		if len(parts) < 2 {
			continue
		}
		clock, err := time.Parse("15:04", parts[0])
		if err != nil {
			continue
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		sample := models.EnergySample{
			At:    base.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute),
			Level: level,
		}
		if sample.Valid() {
			entries = append(entries, sample)
		}
	}
	return entries
}
