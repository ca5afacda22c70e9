package adapters

import (
	"net/http"
	"testing"

	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/stretchr/testify/assert"
)

func TestCheckResponseStatusCodeForErrors(t *testing.T) {
	testCases := []struct {
		description  string
		statusCode   int
		expectedCode int
	}{
		{description: "OK", statusCode: http.StatusOK},
		{description: "Created", statusCode: http.StatusCreated},
		{description: "Bad request", statusCode: http.StatusBadRequest, expectedCode: errortypes.BadInputErrorCode},
		{description: "Not found", statusCode: http.StatusNotFound, expectedCode: errortypes.BadServerResponseErrorCode},
		{description: "Server error", statusCode: http.StatusInternalServerError, expectedCode: errortypes.BadServerResponseErrorCode},
		{description: "Redirect", statusCode: http.StatusFound, expectedCode: errortypes.BadServerResponseErrorCode},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			err := CheckResponseStatusCodeForErrors(&ResponseData{StatusCode: test.statusCode})

			if test.expectedCode == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, test.expectedCode, errortypes.ReadCode(err))
		})
	}
}

func TestIsResponseStatusCodeNoContent(t *testing.T) {
	assert.True(t, IsResponseStatusCodeNoContent(&ResponseData{StatusCode: http.StatusNoContent}))
	assert.False(t, IsResponseStatusCodeNoContent(&ResponseData{StatusCode: http.StatusOK}))
}
