package macros

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
)

const validEndpointTemplate = "https://{{.Host}}/auction?id={{.AdUnit}}&auth={{.AccountID}}"

func TestResolveMacros(t *testing.T) {
	endpointTemplate := template.Must(template.New("endpointTemplate").Parse(validEndpointTemplate))

	type unrelatedParams struct {
		Other string
	}

	testCases := []struct {
		description string
		params      interface{}
		result      string
		hasError    bool
	}{
		{
			description: "all-params",
			params:      EndpointTemplateParams{Host: "bid.example.com", AdUnit: "1", AccountID: "authExample"},
			result:      "https://bid.example.com/auction?id=1&auth=authExample",
		},
		{
			description: "values-are-not-escaped",
			params:      EndpointTemplateParams{Host: "bid.example.com", AdUnit: "1", AccountID: "a b&c"},
			result:      "https://bid.example.com/auction?id=1&auth=a b&c",
		},
		{
			description: "unknown-fields",
			params:      unrelatedParams{Other: "x"},
			hasError:    true,
		},
	}

	for _, test := range testCases {
		res, err := ResolveMacros(endpointTemplate, test.params)

		if test.hasError {
			assert.Error(t, err, test.description)
			assert.Empty(t, res, test.description)
		} else {
			assert.NoError(t, err, test.description)
			assert.Equal(t, test.result, res, test.description)
		}
	}
}
