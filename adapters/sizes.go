package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Size is a [width, height] pair.
type Size struct {
	W int64
	H int64
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var pair []int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("size must be a [width, height] pair, found %d values", len(pair))
	}
	s.W, s.H = pair[0], pair[1]
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int64{s.W, s.H})
}

// Sizes decodes both a list of sizes and a single [width, height] pair.
type Sizes []Size

func (s *Sizes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	inner := bytes.TrimSpace(bytes.TrimPrefix(trimmed, []byte("[")))
	if len(inner) > 0 && inner[0] != '[' && inner[0] != ']' {
		var size Size
		if err := json.Unmarshal(trimmed, &size); err != nil {
			return err
		}
		*s = Sizes{size}
		return nil
	}

	var sizes []Size
	if err := json.Unmarshal(trimmed, &sizes); err != nil {
		return err
	}
	*s = sizes
	return nil
}
