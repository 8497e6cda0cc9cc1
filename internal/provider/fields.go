package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fields is a flat, untyped mapping as returned by a provider. Providers omit
// fields unpredictably, so values are validated field-by-field at the point of
// use instead of being deserialized into a rigid schema. An empty Fields is
// the soft-failure result of any adapter.
type Fields map[string]any

// Decimal extracts a decimal value, or nil if the field is absent or not
// numeric.
func (f Fields) Decimal(key string) *decimal.Decimal {
	v, ok := f[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		d := decimal.NewFromFloat(t)
		return &d
	case int64:
		d := decimal.NewFromInt(t)
		return &d
	case int:
		d := decimal.NewFromInt(int64(t))
		return &d
	case decimal.Decimal:
		return &t
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}

// Int64 extracts an integer value, truncating floats, or nil if the field is
// absent or not numeric.
func (f Fields) Int64(key string) *int64 {
	v, ok := f[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		n := int64(t)
		return &n
	case int64:
		return &t
	case int:
		n := int64(t)
		return &n
	}
	return nil
}

// Time extracts a date value, or nil if the field is absent or unparseable.
func (f Fields) Time(key string) *time.Time {
	v, ok := f[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case string:
		if t == "" {
			return nil
		}
		formats := []string{
			"2006-01-02",
			"2006-01-02T15:04:05.000Z",
			"2006-01-02 15:04:05",
		}
		for _, format := range formats {
			if parsed, err := time.Parse(format, t); err == nil {
				return &parsed
			}
		}
	}
	return nil
}
