package store

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// EncodeJSONField serializes structured sub-fields for a TEXT column. Empty
// maps are stored as NULL.
func EncodeJSONField(v map[string]any) (sql.NullString, error) {
	if len(v) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, errors.Wrap(err, "encode json field")
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// DecodeJSONField is the inverse of EncodeJSONField. Numbers come back as
// json.Number so integers beyond 2^53 keep every digit.
func DecodeJSONField(ns sql.NullString) (map[string]any, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var out map[string]any
	dec := json.NewDecoder(strings.NewReader(ns.String))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode json field")
	}
	return out, nil
}
