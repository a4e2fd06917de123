// Package quantity normalizes free-form food quantity input. Clients
// send quantities as either a bare number or a string like "3 pieces";
// everything past this package works with a (number, unit) pair.
package quantity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Raw is a food quantity exactly as submitted by a client: a JSON
// number, a JSON string, or absent.
type Raw struct {
	Number   float64
	Text     string
	IsNumber bool
}

// UnmarshalJSON accepts either shape. Anything unparseable is kept as
// text so that ingestion never fails on a quantity field.
func (r *Raw) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		r.Number = n
		r.IsNumber = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Text = s
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	r.Text = strings.Trim(string(data), `"`)
	return nil
}

// MarshalJSON echoes the original shape back.
func (r Raw) MarshalJSON() ([]byte, error) {
	if r.IsNumber {
		return json.Marshal(r.Number)
	}
	return json.Marshal(r.Text)
}

// Normalize reduces a raw quantity to a numeric amount and a unit
// descriptor. It never fails; quantities are informational.
func Normalize(r Raw) (float64, string) {
	if r.IsNumber {
		return r.Number, ""
	}
	return NormalizeString(r.Text)
}

// NormalizeString extracts the leading numeric run of s as the amount
// and the trimmed remainder as the unit. "3 pieces" becomes (3,
// "pieces"), "150g" becomes (150, "g"). Input with no leading number,
// like "a pinch", defaults the amount to 1 and keeps the whole text as
// the unit.
func NormalizeString(s string) (float64, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, ""
	}

	i := 0
	sawDigit := false
	sawDot := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			sawDigit = true
			i++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			i++
			continue
		}
		break
	}

	if !sawDigit {
		return 1, s
	}

	amount, err := strconv.ParseFloat(strings.TrimSuffix(s[:i], "."), 64)
	if err != nil {
		return 1, s
	}
	return amount, strings.TrimSpace(s[i:])
}

// Format renders a normalized pair back into the canonical text form.
// Normalizing the result reproduces the same pair.
func Format(amount float64, unit string) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}
