package config

import (
	"testing"

	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInfoFilesPath = "./test/bidder-info"
const testInvalidInfoFilesPath = "./test/bidder-info-invalid"

func TestLoadBidderInfoFromDisk(t *testing.T) {
	info, err := LoadBidderInfoFromDisk(testInfoFilesPath, "someBidder")
	require.NoError(t, err)

	expected := BidderInfo{
		Maintainer:  &MaintainerInfo{Email: "some-email@domain.com"},
		GVLVendorID: 42,
		Aliases:     []string{"someAlias"},
		Capabilities: &CapabilitiesInfo{
			Site: &PlatformInfo{
				MediaTypes: []openrtb_ext.BidType{openrtb_ext.BidTypeBanner, openrtb_ext.BidTypeVideo},
			},
		},
	}
	assert.Equal(t, expected, info)
}

func TestLoadBidderInfoInvalid(t *testing.T) {
	_, err := LoadBidderInfoFromDisk(testInvalidInfoFilesPath, "someBidder")
	assert.EqualError(t, err, "error parsing yaml for bidder someBidder: yaml: unmarshal errors:\n  line 3: cannot unmarshal !!str `42` into uint16")
}

func TestLoadBidderInfoMissingFile(t *testing.T) {
	_, err := LoadBidderInfoFromDisk(testInfoFilesPath, "otherBidder")
	assert.Error(t, err)
}

func TestParseBidderInfoValidation(t *testing.T) {
	testCases := []struct {
		description   string
		yaml          string
		expectedError string
	}{
		{
			description:   "No capabilities",
			yaml:          "maintainer:\n  email: a@b.com\n",
			expectedError: "invalid bidder info for x: at least one site media type must be declared",
		},
		{
			description:   "Unknown media type",
			yaml:          "capabilities:\n  site:\n    mediaTypes:\n      - banner\n      - outstream\n",
			expectedError: `invalid bidder info for x: unrecognized media type "outstream"`,
		},
		{
			description:   "Unknown key",
			yaml:          "gvlid: 1\ncapabilities:\n  site:\n    mediaTypes:\n      - banner\n",
			expectedError: "error parsing yaml for bidder x: yaml: unmarshal errors:\n  line 1: field gvlid not found in type config.BidderInfo",
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			_, err := parseBidderInfo("x", []byte(test.yaml))
			assert.EqualError(t, err, test.expectedError)
		})
	}
}

func TestBidderInfoFeatures(t *testing.T) {
	bannerVideo := BidderInfo{Capabilities: &CapabilitiesInfo{Site: &PlatformInfo{
		MediaTypes: []openrtb_ext.BidType{openrtb_ext.BidTypeBanner, openrtb_ext.BidTypeVideo},
	}}}

	assert.Equal(t, Features{Video: true}, bannerVideo.Features(Features{Native: true, Video: true}))
	assert.Equal(t, Features{}, bannerVideo.Features(Features{Native: true}))
	assert.Equal(t, Features{}, BidderInfo{}.Features(Features{Native: true, Video: true}))

	assert.True(t, bannerVideo.SupportsMediaType(openrtb_ext.BidTypeBanner))
	assert.False(t, bannerVideo.SupportsMediaType(openrtb_ext.BidTypeNative))
}

// TestBidderInfoFiles ensures the shipped bidder-info file parses and declares every media type
// the adapter handles.
func TestBidderInfoFiles(t *testing.T) {
	info, err := LoadBidderInfoFromDisk("../static/bidder-info", openrtb_ext.BidderAdverxo)
	require.NoError(t, err)

	assert.Equal(t, Features{Native: true, Video: true}, info.Features(Features{Native: true, Video: true}))
	assert.True(t, info.SupportsMediaType(openrtb_ext.BidTypeBanner))
	assert.Equal(t, uint16(0), info.GVLVendorID)
}
