package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a value is not a positive integer id.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive integer id. Surrounding spaces are ignored.
func ParseID(s string) (uint, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return uint(n), nil
}

// ParseIDList parses a comma separated list of ids. Empty items are skipped,
// so "" and "1,,2," are valid.
func ParseIDList(s string) ([]uint, error) {
	ids := []uint{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := ParseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ToUint converts various types to a positive id using explicit type switching.
// It handles integer types, integral floats, strings, and byte slices.
func ToUint(val any) (uint, error) {
	switch v := val.(type) {
	case uint:
		if v > 0 {
			return v, nil
		}
	case uint64:
		if v > 0 && v <= math.MaxUint {
			return uint(v), nil
		}
	case uint32:
		if v > 0 {
			return uint(v), nil
		}
	case int:
		if v > 0 {
			return uint(v), nil
		}
	case int64:
		if v > 0 {
			return uint(v), nil
		}
	case int32:
		if v > 0 {
			return uint(v), nil
		}
	case float64:
		if v > 0 && v == math.Trunc(v) && v <= math.MaxUint32 {
			return uint(v), nil
		}
	case string:
		return parseNumeric(v)
	case []byte:
		return parseNumeric(string(v))
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidID, val)
}

// parseNumeric accepts integral spreadsheet values such as "12" or "12.0".
func parseNumeric(s string) (uint, error) {
	if id, err := ParseID(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ToUint(f)
}

// JoinIDs renders ids as a comma separated list.
func JoinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
