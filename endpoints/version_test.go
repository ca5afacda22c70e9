package endpoints

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionEndpoint(t *testing.T) {
	testCases := []struct {
		description  string
		version      string
		revision     string
		expectedBody string
	}{
		{
			description:  "Empty",
			version:      "",
			revision:     "",
			expectedBody: `{"bidder":"adverxo","revision":"not-set","version":"not-set"}`,
		},
		{
			description:  "Populated",
			version:      "1.2.3",
			revision:     "abc123",
			expectedBody: `{"bidder":"adverxo","revision":"abc123","version":"1.2.3"}`,
		},
		{
			description:  "Revision only",
			version:      "",
			revision:     "abc123",
			expectedBody: `{"bidder":"adverxo","revision":"abc123","version":"not-set"}`,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			handler := NewVersionEndpoint(test.version, test.revision)
			w := httptest.NewRecorder()

			handler(w, httptest.NewRequest(http.MethodGet, "/version", nil))

			response, err := io.ReadAll(w.Result().Body)
			assert.NoError(t, err)
			assert.Equal(t, test.expectedBody, string(response))
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestStatusEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	NewStatusEndpoint("")(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	NewStatusEndpoint("ready")(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())
}
