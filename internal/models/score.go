package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Score is an optional numeric entry. The zero value is absent.
type Score struct {
	value   float64
	present bool
}

// Present wraps an entered value.
func Present(v float64) Score {
	return Score{value: v, present: true}
}

// Absent returns an empty score slot.
func Absent() Score {
	return Score{}
}

// ScoreFromPtr maps a nil pointer to Absent.
func ScoreFromPtr(v *float64) Score {
	if v == nil {
		return Absent()
	}
	return Present(*v)
}

// Value returns the underlying value and whether it was entered.
func (s Score) Value() (float64, bool) {
	return s.value, s.present
}

// IsPresent reports whether a value was entered.
func (s Score) IsPresent() bool {
	return s.present
}

// Or returns the value, or fallback when absent.
func (s Score) Or(fallback float64) float64 {
	if !s.present {
		return fallback
	}
	return s.value
}

// String prints the value or N/A.
func (s Score) String() string {
	if !s.present {
		return "N/A"
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// MarshalJSON encodes absent scores as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as absent.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Absent()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Present(v)
	return nil
}
