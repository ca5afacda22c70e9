package adapterstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// RunJSONBidderTest is a helper method intended to unit test Bidders' adapters.
// It requires that:
//
//  1. Bidders communicate with external servers over HTTP.
//  2. The HTTP request bodies are legal JSON.
//
// Although the project does not require it, we *strongly* recommend that all Bidders write tests using this.
//
// Every file in {rootDir}/exemplary and {rootDir}/supplemental is a test case. Exemplary files show
// the bidder working as intended; supplemental files cover errors and edge cases. The files have
// the following shape:
//
//	{
//	  "mockBidRequests": [ ... bid requests as supplied by the host ... ],
//	  "mockBidderRequest": { ... auction level context ... },
//	  "expectedInvalidBidIds": [ ... bid ids IsBidRequestValid must reject ... ],
//	  "expectedMakeRequestsErrors": [ ... ],
//	  "httpCalls": [
//	    {
//	      "expectedRequest": { "method": "POST", "uri": "...", "body": {...}, "headers": {...}, "impIDs": [...], "bidIds": [...] },
//	      "mockResponse": { "status": 200, "body": {...}, "headers": {...} }
//	    }
//	  ],
//	  "expectedBids": [ ... bids from every call, in call order ... ],
//	  "expectedMakeBidsErrors": [ ... ],
//	  "syncOptions": { "iframeEnabled": true, "pixelEnabled": false },
//	  "expectedUserSyncs": [ ... ]
//	}
//
// httpCalls must list the calls in the order BuildRequests returns them.
func RunJSONBidderTest(t *testing.T, rootDir string, bidder adapters.Bidder) {
	t.Helper()
	runTests(t, filepath.Join(rootDir, "exemplary"), bidder, false)
	runTests(t, filepath.Join(rootDir, "supplemental"), bidder, true)
}

// runTests runs all the *.json files in a directory. If allowErrors is false, and one of the test files
// expects errors from the bidder, then the test will fail.
func runTests(t *testing.T, directory string, bidder adapters.Bidder, allowErrors bool) {
	t.Helper()
	if specFiles, err := os.ReadDir(directory); err == nil {
		for _, specFile := range specFiles {
			if specFile.IsDir() || !strings.HasSuffix(specFile.Name(), ".json") {
				continue
			}
			fileName := filepath.Join(directory, specFile.Name())
			specData, err := loadFile(fileName)
			if err != nil {
				t.Fatalf("Failed to load contents of file %s: %v", fileName, err)
			}

			if !allowErrors && specData.expectsErrors() {
				t.Fatalf("Exemplary spec %s must not expect errors.", fileName)
			}
			t.Run(specFile.Name(), func(t *testing.T) {
				runSpec(t, fileName, specData, bidder)
			})
		}
	}
}

// loadFile reads and parses a file as a test case. If something goes wrong, it returns an error.
func loadFile(filename string) (*testSpec, error) {
	specData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Failed to read file %s: %v", filename, err)
	}

	var spec testSpec
	if err := jsonutil.UnmarshalValid(specData, &spec); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal JSON from file: %v", err)
	}

	return &spec, nil
}

// runSpec runs a single test case. It will make sure:
//
//   - That the bid requests are accepted or rejected by IsBidRequestValid as expected
//   - That the Bidder's HTTP calls match the spec's expectations
//   - That the Bidder's Bids match the spec's expectations
//   - That the user syncs match the spec's expectations
//   - That the Bidder's errors match the spec's expectations
func runSpec(t *testing.T, filename string, spec *testSpec, bidder adapters.Bidder) {
	validBids := make([]*adapters.BidRequest, 0, len(spec.BidRequests))
	var invalidBidIDs []string
	for _, bidRequest := range spec.BidRequests {
		if bidder.IsBidRequestValid(bidRequest) {
			validBids = append(validBids, bidRequest)
		} else {
			invalidBidIDs = append(invalidBidIDs, bidRequest.BidID)
		}
	}
	assertStrings(t, fmt.Sprintf("%s: invalid bid ids", filename), spec.InvalidBidIDs, invalidBidIDs)

	bidderRequest := spec.BidderRequest
	if bidderRequest == nil {
		bidderRequest = &adapters.BidderRequest{}
	}
	if bidderRequest.Bids == nil {
		bidderRequest.Bids = spec.BidRequests
	}

	requests, errs := bidder.BuildRequests(validBids, bidderRequest)
	assertErrorList(t, fmt.Sprintf("%s: BuildRequests", filename), errs, spec.MakeRequestErrors)
	assertRequestsMatch(t, filename, requests, spec.HttpCalls)

	var bids []*adapters.Bid
	var bidErrs []error
	responses := make([]*adapters.ResponseData, 0, len(spec.HttpCalls))
	for i := 0; i < len(spec.HttpCalls) && i < len(requests); i++ {
		response := spec.HttpCalls[i].Response.ToResponseData(t)
		responses = append(responses, response)

		callBids, callErrs := bidder.InterpretResponse(response, requests[i])
		bids = append(bids, callBids...)
		bidErrs = append(bidErrs, callErrs...)
	}
	assertErrorList(t, fmt.Sprintf("%s: InterpretResponse", filename), bidErrs, spec.MakeBidsErrors)
	assertBids(t, filename, bids, spec.Bids)

	if spec.SyncOptions != nil {
		syncs := bidder.GetUserSyncs(*spec.SyncOptions, responses)
		actual, err := jsonutil.Marshal(syncs)
		if err != nil {
			t.Fatalf("%s: failed to marshal user syncs: %v", filename, err)
		}
		expected := spec.UserSyncs
		if len(expected) == 0 {
			expected = json.RawMessage(`[]`)
		}
		diffJson(t, fmt.Sprintf("%s: user syncs", filename), normalizeEmptyArray(actual), expected)
	}
}

type testSpec struct {
	BidRequests       []*adapters.BidRequest  `json:"mockBidRequests"`
	BidderRequest     *adapters.BidderRequest `json:"mockBidderRequest"`
	InvalidBidIDs     []string                `json:"expectedInvalidBidIds"`
	HttpCalls         []httpCall              `json:"httpCalls"`
	Bids              []json.RawMessage       `json:"expectedBids"`
	MakeRequestErrors []testSpecExpectedError `json:"expectedMakeRequestsErrors"`
	MakeBidsErrors    []testSpecExpectedError `json:"expectedMakeBidsErrors"`
	SyncOptions       *adapters.SyncOptions   `json:"syncOptions"`
	UserSyncs         json.RawMessage         `json:"expectedUserSyncs"`
}

type testSpecExpectedError struct {
	Comparison string `json:"comparison"`
	Value      string `json:"value"`
}

func (spec *testSpec) expectsErrors() bool {
	return len(spec.MakeRequestErrors) > 0 || len(spec.MakeBidsErrors) > 0
}

type httpCall struct {
	Request  httpRequest  `json:"expectedRequest"`
	Response httpResponse `json:"mockResponse"`
}

type httpRequest struct {
	Method  string          `json:"method"`
	Uri     string          `json:"uri"`
	Body    json.RawMessage `json:"body"`
	Headers http.Header     `json:"headers"`
	ImpIDs  []string        `json:"impIDs"`
	BidIDs  []string        `json:"bidIds"`
}

type httpResponse struct {
	Status  int             `json:"status"`
	Body    json.RawMessage `json:"body"`
	Headers http.Header     `json:"headers"`
}

// ToResponseData converts the mock response. A JSON string body is passed on as raw text,
// so fixtures can describe bodies which are not JSON.
func (resp httpResponse) ToResponseData(t *testing.T) *adapters.ResponseData {
	body := []byte(resp.Body)
	var text string
	if len(body) > 0 && body[0] == '"' {
		if err := json.Unmarshal(body, &text); err != nil {
			t.Fatalf("failed to decode string response body: %v", err)
		}
		body = []byte(text)
	}
	return &adapters.ResponseData{
		StatusCode: resp.Status,
		Body:       body,
		Headers:    resp.Headers,
	}
}

func assertRequestsMatch(t *testing.T, filename string, actual []*adapters.RequestData, expected []httpCall) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("%s: BuildRequests had wrong request count. Expected %d, got %d", filename, len(expected), len(actual))
	}
	for i := range actual {
		description := fmt.Sprintf("%s: httpCalls[%d]", filename, i)
		want := expected[i].Request
		got := actual[i]

		if want.Method != "" && want.Method != got.Method {
			t.Errorf("%s: method mismatch. Expected %s, got %s", description, want.Method, got.Method)
		}
		if want.Uri != got.Uri {
			t.Errorf("%s: uri mismatch.\nExpected: %s\nActual:   %s", description, want.Uri, got.Uri)
		}
		if want.Headers != nil {
			for name := range want.Headers {
				if want.Headers.Get(name) != got.Headers.Get(name) {
					t.Errorf("%s: header %s mismatch. Expected %q, got %q", description, name, want.Headers.Get(name), got.Headers.Get(name))
				}
			}
			if len(want.Headers) != len(got.Headers) {
				t.Errorf("%s: header count mismatch. Expected %d, got %d", description, len(want.Headers), len(got.Headers))
			}
		}
		if want.ImpIDs != nil {
			assertStrings(t, description+": impIDs", want.ImpIDs, got.ImpIDs)
		}
		if want.BidIDs != nil {
			gotBidIDs := make([]string, 0, len(got.Bids))
			for _, bid := range got.Bids {
				gotBidIDs = append(gotBidIDs, bid.BidID)
			}
			assertStrings(t, description+": bidIds", want.BidIDs, gotBidIDs)
		}
		diffJson(t, description+": body", got.Body, want.Body)
	}
}

func assertBids(t *testing.T, filename string, actual []*adapters.Bid, expected []json.RawMessage) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Errorf("%s: wrong bid count. Expected %d, got %d", filename, len(expected), len(actual))
		return
	}
	for i, bid := range actual {
		bidJSON, err := jsonutil.Marshal(bid)
		if err != nil {
			t.Fatalf("%s: failed to marshal bid %d: %v", filename, i, err)
		}
		diffJson(t, fmt.Sprintf("%s: expectedBids[%d]", filename, i), bidJSON, expected[i])
	}
}

func assertErrorList(t *testing.T, description string, actual []error, expected []testSpecExpectedError) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("%s had wrong error count. Expected %d, got %d (%v)", description, len(expected), len(actual), actual)
		return
	}
	for i := 0; i < len(actual); i++ {
		if expected[i].Comparison == "literal" {
			if expected[i].Value != actual[i].Error() {
				t.Errorf(`%s error[%d] had wrong message. Expected "%s", got "%s"`, description, i, expected[i].Value, actual[i].Error())
			}
		} else if expected[i].Comparison == "regex" {
			if matched, _ := regexp.MatchString(expected[i].Value, actual[i].Error()); !matched {
				t.Errorf(`%s error[%d] had wrong message. Expected match with regex "%s", got "%s"`, description, i, expected[i].Value, actual[i].Error())
			}
		} else {
			t.Fatalf(`invalid comparison type "%s"`, expected[i].Comparison)
		}
	}
}

func assertStrings(t *testing.T, description string, expected, actual []string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("%s mismatch. Expected %v, got %v", description, expected, actual)
		return
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("%s mismatch. Expected %v, got %v", description, expected, actual)
			return
		}
	}
}

func normalizeEmptyArray(data []byte) []byte {
	if string(data) == "null" {
		return []byte(`[]`)
	}
	return data
}

// diffJson compares two JSON documents. Both are wrapped in an object since the
// differ only compares objects at the top level.
func diffJson(t *testing.T, description string, actual []byte, expected []byte) {
	t.Helper()
	if len(actual) == 0 && len(expected) == 0 {
		return
	}
	if len(actual) == 0 || len(expected) == 0 {
		t.Fatalf("%s json diff failed. Expected %d bytes in body, but got %d.", description, len(expected), len(actual))
	}

	left := wrap(actual)
	right := wrap(expected)

	diff, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		t.Fatalf("%s json diff failed. %v", description, err)
	}

	if diff.Modified() {
		var leftJSON map[string]interface{}
		if err := json.Unmarshal(left, &leftJSON); err != nil {
			t.Fatalf("%s json did not match, but unmarshalling failed. %v", description, err)
		}
		printer := formatter.NewAsciiFormatter(leftJSON, formatter.AsciiFormatterConfig{
			ShowArrayIndex: true,
		})
		output, err := printer.Format(diff)
		if err != nil {
			t.Errorf("%s did not match, but diff formatting failed. %v", description, err)
		} else {
			t.Errorf("%s json did not match expected.\n\n%s", description, output)
		}
	}
}

func wrap(data []byte) []byte {
	return append(append([]byte(`{"value":`), data...), '}')
}
