package openrtb_ext

import (
	"testing"

	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdUnitID(t *testing.T) {
	testCases := []struct {
		description string
		value       string
		expected    AdUnitID
		expectError bool
	}{
		{description: "Integer", value: `42`, expected: 42},
		{description: "Negative integer", value: `-7`, expected: -7},
		{description: "Integral float", value: `1.0`, expected: 1},
		{description: "Exponent", value: `1e2`, expected: 100},
		{description: "Fraction", value: `1.5`, expectError: true},
		{description: "Quoted", value: `"1"`, expectError: true},
		{description: "Out of range", value: `1e19`, expectError: true},
		{description: "Not a number", value: `NaN`, expectError: true},
		{description: "Empty", value: ``, expectError: true},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			id, err := ParseAdUnitID([]byte(test.value))

			if test.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, id)
		})
	}
}

func TestExtImpAdverxoUnmarshal(t *testing.T) {
	var imp ExtImpAdverxo
	require.NoError(t, jsonutil.Unmarshal([]byte(`{"host":"h","adUnitId":1e2,"auth":"a"}`), &imp))
	assert.Equal(t, ExtImpAdverxo{Host: "h", AdUnitID: 100, Auth: "a"}, imp)

	err := jsonutil.Unmarshal([]byte(`{"host":"h","adUnitId":"1","auth":"a"}`), &imp)
	assert.EqualError(t, err, "adUnitId must be an integral number")
}
