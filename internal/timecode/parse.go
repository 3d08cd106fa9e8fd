// Package timecode normalizes submitted timestamps into whole seconds.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var ErrInvalid = errors.New("invalid timestamp")

// MaxSeconds bounds every parsed value.
const MaxSeconds = math.MaxInt32

// Parse accepts a plain number of seconds ("90", "90.5") or clock text
// ("1:30", "0:01:30") and returns the whole number of seconds.
// Fractional seconds are truncated toward negative infinity.
func Parse(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalid)
	}
	if !strings.Contains(text, ":") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		return FromSeconds(f)
	}

	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q has too many fields", ErrInvalid, text)
	}
	total := 0
	for _, part := range parts {
		n, err := clockField(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		if total > (MaxSeconds-n)/60 {
			return 0, fmt.Errorf("%w: %q is out of range", ErrInvalid, text)
		}
		total = total*60 + n
	}
	return total, nil
}

// FromSeconds converts a numeric seconds value.
func FromSeconds(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: not a finite number", ErrInvalid)
	}
	if f > MaxSeconds || f < -MaxSeconds {
		return 0, fmt.Errorf("%w: %v is out of range", ErrInvalid, f)
	}
	return int(math.Floor(f)), nil
}

func clockField(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalid
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxSeconds {
		return 0, ErrInvalid
	}
	return n, nil
}

// Value is a boundary exactly as a client sent it: a JSON number of
// seconds or a JSON string in any form Parse understands.
type Value struct {
	raw     string
	numeric bool
	present bool
}

func Seconds(n float64) Value {
	return Value{raw: strconv.FormatFloat(n, 'f', -1, 64), numeric: true, present: true}
}

func Text(s string) Value {
	return Value{raw: s, present: true}
}

func (v Value) IsZero() bool { return !v.present }

// Seconds resolves the value through Parse.
func (v Value) Seconds() (int, error) {
	if !v.present {
		return 0, fmt.Errorf("%w: missing value", ErrInvalid)
	}
	if v.numeric {
		f, err := strconv.ParseFloat(v.raw, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, v.raw)
		}
		return FromSeconds(f)
	}
	return Parse(v.raw)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*v = Value{}
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		// Anything else (numbers, booleans, objects) is kept verbatim and
		// rejected later by Seconds, so the caller can report which field failed.
		*v = Value{raw: trimmed, numeric: true, present: true}
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	if v.numeric {
		return []byte(v.raw), nil
	}
	return json.Marshal(v.raw)
}
