package apartment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The original web client submits numeric apartment fields as strings
// ("120000.50") or numbers interchangeably, and an empty string means
// "not set". OptionalFloat and OptionalInt accept both spellings and
// keep track of whether the field appeared in the payload at all, so
// partial updates can leave absent fields untouched.

type OptionalFloat struct {
	Present bool
	Valid   bool
	Value   float64
}

func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	f.Present = true
	f.Valid = false
	if string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", raw)
		}
		f.Value = value
		f.Valid = true
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	f.Value = value
	f.Valid = true
	return nil
}

func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f OptionalFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	value := f.Value
	return &value
}

type OptionalInt struct {
	Present bool
	Valid   bool
	Value   int64
}

func (i *OptionalInt) UnmarshalJSON(data []byte) error {
	i.Present = true
	i.Valid = false
	if string(data) == "null" {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an integer", raw)
	}
	i.Value = value
	i.Valid = true
	return nil
}

func (i OptionalInt) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

func (i OptionalInt) Ptr() *int64 {
	if !i.Valid {
		return nil
	}
	value := i.Value
	return &value
}
