package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalKeepsMarkupUnescaped(t *testing.T) {
	result, err := Marshal(map[string]string{"adm": "<div>&</div>"})

	assert.NoError(t, err)
	assert.Equal(t, `{"adm":"<div>&</div>"}`, string(result))
}

func TestUnmarshal(t *testing.T) {
	type params struct {
		ID int64 `json:"id"`
	}

	testCases := []struct {
		description   string
		input         string
		expected      params
		expectedError string
	}{
		{
			description: "valid",
			input:       `{"id":7}`,
			expected:    params{ID: 7},
		},
		{
			description:   "type-mismatch",
			input:         `{"id":"7"}`,
			expectedError: "cannot unmarshal id: expected int64 but found string",
		},
		{
			description:   "malformed",
			input:         `{`,
			expectedError: "unexpected end of JSON input",
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			var actual params
			err := Unmarshal([]byte(test.input), &actual)
			if test.expectedError != "" {
				assert.EqualError(t, err, test.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestUnmarshalValidRejectsEmpty(t *testing.T) {
	var v map[string]interface{}
	assert.Error(t, UnmarshalValid([]byte("  "), &v))
}

func TestItemOrItemArrayUnmarshalJSON_String(t *testing.T) {
	type Data struct {
		Item ItemOrItemArray[string] `json:"item"`
	}

	t.Run("string", func(t *testing.T) {
		var data Data
		assert.NoError(t, UnmarshalValid([]byte(`{"item":"*"}`), &data))
		assert.Equal(t, ItemOrItemArray[string]{"*"}, data.Item)
	})

	t.Run("string_array", func(t *testing.T) {
		var data Data
		assert.NoError(t, UnmarshalValid([]byte(`{"item":["hello","world"]}`), &data))
		assert.Equal(t, ItemOrItemArray[string]{"hello", "world"}, data.Item)
	})

	t.Run("null", func(t *testing.T) {
		var data Data
		assert.NoError(t, UnmarshalValid([]byte(`{"item":null}`), &data))
		assert.Nil(t, data.Item)
	})

	t.Run("invalid_input", func(t *testing.T) {
		var data Data
		err := UnmarshalValid([]byte(`{"item":true}`), &data)
		assert.ErrorContains(t, err, "value should be of type string or []string")
	})
}
