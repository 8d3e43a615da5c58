package request

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CoercionError names the offending field and the raw value that could
// not be read as a number, so clients see exactly what to fix.
type CoercionError struct {
	Field string
	Value string
}

func (e CoercionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %q: numeric value required", e.Field)
	}
	return fmt.Sprintf("field %q: cannot coerce %q to a number", e.Field, e.Value)
}

// FlexibleDecimal accepts a JSON number or a numeric string and keeps the
// raw text until the handler asks for the parsed value with a field name.
type FlexibleDecimal struct {
	raw string
	set bool
}

func (f *FlexibleDecimal) UnmarshalJSON(data []byte) error {
	raw, set, err := unquoteNumeric(data)
	if err != nil {
		return err
	}
	f.raw, f.set = raw, set
	return nil
}

func (f FlexibleDecimal) IsSet() bool {
	return f.set
}

func (f FlexibleDecimal) Decimal(field string) (decimal.Decimal, error) {
	if !f.set {
		return decimal.Decimal{}, CoercionError{Field: field}
	}
	d, err := decimal.NewFromString(f.raw)
	if err != nil {
		return decimal.Decimal{}, CoercionError{Field: field, Value: f.raw}
	}
	return d, nil
}

func (f FlexibleDecimal) DecimalPtr(field string) (*decimal.Decimal, error) {
	if !f.set {
		return nil, nil
	}
	d, err := f.Decimal(field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FlexibleInt is the integer counterpart of FlexibleDecimal.
type FlexibleInt struct {
	raw string
	set bool
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	raw, set, err := unquoteNumeric(data)
	if err != nil {
		return err
	}
	f.raw, f.set = raw, set
	return nil
}

func (f FlexibleInt) IsSet() bool {
	return f.set
}

func (f FlexibleInt) Int(field string) (int, error) {
	if !f.set {
		return 0, CoercionError{Field: field}
	}
	v, err := strconv.Atoi(f.raw)
	if err != nil {
		return 0, CoercionError{Field: field, Value: f.raw}
	}
	return v, nil
}

func (f FlexibleInt) IntPtr(field string) (*int, error) {
	if !f.set {
		return nil, nil
	}
	v, err := f.Int(field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func unquoteNumeric(data []byte) (raw string, set bool, err error) {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return "", false, nil
	}
	if s[0] == '"' {
		var unquoted string
		if uerr := json.Unmarshal(data, &unquoted); uerr != nil {
			return "", false, uerr
		}
		s = strings.TrimSpace(unquoted)
	}
	return s, true, nil
}
