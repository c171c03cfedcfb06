package entity

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// RefID is the canonical form of a catalog identifier. Backends hand out ids
// both as JSON numbers and as strings, so every id is normalized once here and
// compared with plain equality afterwards.
type RefID string

// NewRefID trims raw and rewrites anything that reads as a finite number in
// its shortest decimal form, so "5", " 5 ", "5.0" and 5 all become "5".
func NewRefID(raw string) RefID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return RefID(d.String())
	}
	return RefID(s)
}

func (id RefID) String() string {
	return string(id)
}

func (id RefID) IsZero() bool {
	return id == ""
}

func (id *RefID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NewRefID(s)
		return nil
	}
	*id = NewRefID(string(data))
	return nil
}

// UnmarshalText lets yaml fixtures write ids either quoted or bare.
func (id *RefID) UnmarshalText(text []byte) error {
	*id = NewRefID(string(text))
	return nil
}
