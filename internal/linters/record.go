package linters

import (
	"bytes"
	"encoding/json"

	"github.com/scan-io-git/lintmux/pkg/shared/errors"
)

// record is one decoded JSON object from a linter's output.
type record struct {
	tool   string
	fields map[string]any
}

func decodeJSON(tool string, out []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.NewMalformedRecordError(tool, "output", "invalid JSON: "+err.Error())
	}
	return v, nil
}

func asRecord(tool string, v any) (record, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return record{}, errors.NewMalformedRecordError(tool, "record", jsonType(v))
	}
	return record{tool: tool, fields: fields}, nil
}

func (r record) str(name string) (string, error) {
	v, ok := r.fields[name]
	s, isStr := v.(string)
	if !ok || !isStr {
		return "", r.mismatch(name, v, ok)
	}
	return s, nil
}

func (r record) integer(name string) (int, error) {
	v, ok := r.fields[name]
	if n, isNum := v.(json.Number); ok && isNum {
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, r.mismatch(name, v, ok)
}

// optionalInt accepts an integer or null. A missing field is treated as null.
func (r record) optionalInt(name string) (*int, error) {
	v, ok := r.fields[name]
	if !ok || v == nil {
		return nil, nil
	}
	i, err := r.integer(name)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r record) mismatch(name string, v any, present bool) error {
	got := jsonType(v)
	if !present {
		got = "missing"
	}
	return errors.NewMalformedRecordError(r.tool, name, got)
}

func jsonType(v any) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number:
		if _, err := vv.Int64(); err == nil {
			return "int"
		}
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
