// internal/store/transcode.go
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/multierr"
)

var ErrUnknownField = errors.New("UNKNOWN_FIELD")

// Fields is an entity keyed by external (camelCase) names.
type Fields map[string]interface{}

// Row is an entity keyed by internal (snake_case) column names.
type Row map[string]interface{}

type ColumnType int

const (
	Integer ColumnType = iota
	Text
	TextArray
	JSON
	Timestamp
)

// Column maps one exportable field to its storage column.
type Column struct {
	External string
	Internal string
	Type     ColumnType
}

// timestampSuffix marks external fields that carry Unix seconds.
const timestampSuffix = "Ts"

// Rule is the bijective field mapping of one entity. Columns absent from the rule
// are internal only and never exported.
type Rule struct {
	entity     string
	columns    []Column
	byExternal map[string]Column
	byInternal map[string]Column
}

func NewRule(entity string, columns ...Column) (*Rule, error) {
	r := &Rule{
		entity:     entity,
		columns:    columns,
		byExternal: make(map[string]Column, len(columns)),
		byInternal: make(map[string]Column, len(columns)),
	}

	var errs error
	for _, c := range columns {
		if c.External == "" || c.Internal == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: column %+v has an empty name", entity, c))
			continue
		}
		if _, dup := r.byExternal[c.External]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: external name %q mapped twice", entity, c.External))
		}
		if _, dup := r.byInternal[c.Internal]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: column %q mapped twice", entity, c.Internal))
		}
		if c.Type == Timestamp && !strings.HasSuffix(c.External, timestampSuffix) {
			errs = multierr.Append(errs, fmt.Errorf("%s: timestamp field %q must end in %s", entity, c.External, timestampSuffix))
		}
		if c.Type != Timestamp && strings.HasSuffix(c.External, timestampSuffix) {
			errs = multierr.Append(errs, fmt.Errorf("%s: field %q ends in %s but is not a timestamp", entity, c.External, timestampSuffix))
		}
		r.byExternal[c.External] = c
		r.byInternal[c.Internal] = c
	}
	if errs != nil {
		return nil, errs
	}

	return r, nil
}

func MustRule(entity string, columns ...Column) *Rule {
	r, err := NewRule(entity, columns...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rule) Entity() string {
	return r.entity
}

// Columns lists the internal names in declaration order.
func (r *Rule) Columns() []string {
	names := make([]string, len(r.columns))
	for i, c := range r.columns {
		names[i] = c.Internal
	}
	return names
}

// ToInternal renames external keys to columns. Epoch-second timestamps are turned
// back into UTC times. An unknown key is a programming error.
func (r *Rule) ToInternal(fields Fields) (Row, error) {
	row := make(Row, len(fields))
	for name, value := range fields {
		c, ok := r.byExternal[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, r.entity, name)
		}
		if c.Type == Timestamp && value != nil {
			t, err := fromEpoch(value)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", r.entity, name, err)
			}
			value = t
		}
		row[c.Internal] = value
	}
	return row, nil
}

// ToExternal emits every exportable column present in row. Timestamps become
// integer Unix seconds.
func (r *Rule) ToExternal(row Row) Fields {
	fields := make(Fields, len(r.columns))
	for _, c := range r.columns {
		value, ok := row[c.Internal]
		if !ok {
			continue
		}
		if t, isTime := value.(time.Time); isTime && c.Type == Timestamp {
			value = t.Unix()
		}
		fields[c.External] = value
	}
	return fields
}

// DecodeRow converts raw driver values into the Go values ToExternal expects.
func (r *Rule) DecodeRow(row Row) (Row, error) {
	out := make(Row, len(row))
	for name, value := range row {
		c, ok := r.byInternal[name]
		if !ok || value == nil {
			out[name] = value
			continue
		}

		switch c.Type {
		case Text:
			if b, isBytes := value.([]byte); isBytes {
				value = string(b)
			}
		case TextArray:
			var arr pq.StringArray
			if err := arr.Scan(value); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", r.entity, name, err)
			}
			if arr == nil {
				arr = pq.StringArray{}
			}
			value = []string(arr)
		case JSON:
			switch v := value.(type) {
			case []byte:
				value = json.RawMessage(append([]byte(nil), v...))
			case string:
				value = json.RawMessage(v)
			}
		}
		out[name] = value
	}
	return out, nil
}

// EncodeRow converts Go values into driver parameters.
func (r *Rule) EncodeRow(row Row) (Row, error) {
	out := make(Row, len(row))
	for name, value := range row {
		c, ok := r.byInternal[name]
		if !ok {
			out[name] = value
			continue
		}

		switch c.Type {
		case TextArray:
			items, isList := value.([]string)
			if !isList {
				return nil, fmt.Errorf("%s.%s: expected a list of strings, got %T", r.entity, name, value)
			}
			value = pq.StringArray(items)
		case JSON:
			b, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", r.entity, name, err)
			}
			value = string(b)
		}
		out[name] = value
	}
	return out, nil
}

func fromEpoch(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(n, 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("cannot read %T as epoch seconds", value)
	}
}
