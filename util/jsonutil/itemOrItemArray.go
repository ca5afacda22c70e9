package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemOrItemArray decodes either a single JSON value or an array of values of the same type.
// A single value becomes a one-element slice.
type ItemOrItemArray[T any] []T

func (t *ItemOrItemArray[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return t.typeError()
		}
		*t = items
		return nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return t.typeError()
	}
	*t = ItemOrItemArray[T]{item}
	return nil
}

func (t *ItemOrItemArray[T]) typeError() error {
	var zero T
	return fmt.Errorf("value should be of type %T or []%T", zero, zero)
}
