package collection

import (
	"bytes"
	"encoding/json"
)

// MarshalList serialises a record list as an indented JSON array.
func MarshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// UnmarshalList deserialises a JSON array produced by MarshalList. Empty
// input and a JSON null both decode to an empty list.
func UnmarshalList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
