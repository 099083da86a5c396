package faceit

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Payload is a decoded upstream JSON object. Fields are read through the
// tolerant helpers below and never trusted to have a fixed shape.
type Payload = map[string]any

const secondsCutoff = 1e12

var (
	digitsRegex   = regexp.MustCompile(`\d+`)
	timeLayouts   = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
	percentSuffix = "%"
)

// num coerces an upstream statistic. Strings may carry a trailing percent sign.
// Anything that does not produce a finite number yields fallback.
func num(value any, fallback float64) float64 {
	var out float64
	switch typed := value.(type) {
	case float64:
		out = typed
	case float32:
		out = float64(typed)
	case int:
		out = float64(typed)
	case int32:
		out = float64(typed)
	case int64:
		out = float64(typed)
	case uint64:
		out = float64(typed)
	case string:
		text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(typed), percentSuffix))
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fallback
		}
		out = parsed
	default:
		return fallback
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return fallback
	}
	return out
}

func numInt(value any) int {
	return int(num(value, 0))
}

// toMillis normalizes ISO-8601 strings, epoch seconds and epoch milliseconds
// to epoch milliseconds. Values below 10^12 are read as seconds. Missing or
// unparsable input yields now.
func toMillis(raw any, now time.Time) int64 {
	if text, ok := raw.(string); ok {
		text = strings.TrimSpace(text)
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			for _, layout := range timeLayouts {
				if parsed, err := time.Parse(layout, text); err == nil {
					return scaleToMillis(float64(parsed.UnixMilli()))
				}
			}
			return now.UnixMilli()
		}
	}

	value := num(raw, math.NaN())
	if math.IsNaN(value) {
		return now.UnixMilli()
	}
	return scaleToMillis(value)
}

func scaleToMillis(value float64) int64 {
	if value < secondsCutoff {
		value *= 1000
	}
	return int64(value)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func kdRatio(kills, deaths int) float64 {
	if deaths > 0 {
		return round2(float64(kills) / float64(deaths))
	}
	return float64(kills)
}

// firstDigits reads a score-like value: numbers as-is, strings by their first digit run.
func firstDigits(value any) int {
	switch typed := value.(type) {
	case string:
		match := digitsRegex.FindString(typed)
		if match == "" {
			return 0
		}
		out, err := strconv.Atoi(match)
		if err != nil {
			return 0
		}
		return out
	default:
		return numInt(value)
	}
}

func asMap(value any) map[string]any {
	out, _ := value.(map[string]any)
	return out
}

func asSlice(value any) []any {
	out, _ := value.([]any)
	return out
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	return asMap(src[key])
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	return asSlice(src[key])
}

// lookup returns the first present, non-null value among keys.
func lookup(src map[string]any, keys ...string) any {
	if src == nil {
		return nil
	}
	for _, key := range keys {
		if value, ok := src[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

// lookupFold is lookup with case-insensitive key matching.
func lookupFold(src map[string]any, keys ...string) any {
	if value := lookup(src, keys...); value != nil {
		return value
	}
	for _, key := range keys {
		for candidate, value := range src {
			if value != nil && strings.EqualFold(candidate, key) {
				return value
			}
		}
	}
	return nil
}

// getString returns the first non-empty string among keys.
func getString(src map[string]any, keys ...string) string {
	if src == nil {
		return ""
	}
	for _, key := range keys {
		if value, ok := src[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

// mapName reads the played map from voting, a flat field or the maps list.
func mapName(doc map[string]any) string {
	pick := lookup(getMap(getMap(doc, "voting"), "map"), "pick")
	switch typed := pick.(type) {
	case string:
		if strings.TrimSpace(typed) != "" {
			return strings.TrimSpace(typed)
		}
	case []any:
		for _, item := range typed {
			if name, ok := item.(string); ok && strings.TrimSpace(name) != "" {
				return strings.TrimSpace(name)
			}
		}
	}
	if name := getString(doc, "map"); name != "" {
		return name
	}
	if maps := getSlice(doc, "maps"); len(maps) > 0 {
		return getString(asMap(maps[0]), "name")
	}
	return ""
}
