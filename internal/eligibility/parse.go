package eligibility

import (
	"math"
	"strconv"
	"strings"
)

// ParseMinutes parses a whole, non-negative number of minutes from a form field.
func ParseMinutes(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalidField(field, raw, "is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalidField(field, raw, "must be a whole number of minutes")
	}
	if n < 0 {
		return 0, invalidField(field, raw, "must not be negative")
	}
	return n, nil
}

// ParseHours parses a non-negative decimal amount from a form field.
func ParseHours(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalidField(field, raw, "is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidField(field, raw, "must be a number")
	}
	if v < 0 {
		return 0, invalidField(field, raw, "must not be negative")
	}
	return v, nil
}

// ParseOptionalHours is ParseHours with an empty field meaning zero.
func ParseOptionalHours(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ParseHours(field, raw)
}
